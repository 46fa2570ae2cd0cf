package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appDto "habitat/internal/application/notification/dto"
	"habitat/internal/shared/errors"
)

type SendNotificationRequest struct {
	MessageType  string            `json:"message_type" binding:"required" validate:"required"`
	RecipientIDs []uint            `json:"recipient_ids" binding:"required" validate:"required,min=1"`
	Channels     []string          `json:"channels,omitempty"`
	Title        string            `json:"title" validate:"max=255"`
	Body         string            `json:"body"`
	Data         map[string]string `json:"data,omitempty"`
}

func (r *SendNotificationRequest) ToApplicationDTO() *appDto.SendRequest {
	return &appDto.SendRequest{
		MessageType:  r.MessageType,
		RecipientIDs: r.RecipientIDs,
		Channels:     r.Channels,
		Title:        r.Title,
		Body:         r.Body,
		Data:         r.Data,
	}
}

type SendToScopeRequest struct {
	MessageType string            `json:"message_type" binding:"required" validate:"required"`
	ScopeID     uint              `json:"scope_id" binding:"required" validate:"required"`
	Channels    []string          `json:"channels,omitempty"`
	Title       string            `json:"title" validate:"max=255"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
}

func (r *SendToScopeRequest) ToApplicationDTO() *appDto.SendToScopeRequest {
	return &appDto.SendToScopeRequest{
		MessageType: r.MessageType,
		ScopeID:     r.ScopeID,
		Channels:    r.Channels,
		Title:       r.Title,
		Body:        r.Body,
		Data:        r.Data,
	}
}

type SetPreferenceRequest struct {
	Channel     string `json:"channel" binding:"required" validate:"required"`
	MessageType string `json:"message_type" binding:"required" validate:"required"`
	Enabled     *bool  `json:"enabled" binding:"required" validate:"required"`
}

func (r *SetPreferenceRequest) ToApplicationDTO(recipientID uint) *appDto.SetPreferenceRequest {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return &appDto.SetPreferenceRequest{
		RecipientID: recipientID,
		Channel:     r.Channel,
		MessageType: r.MessageType,
		Enabled:     enabled,
	}
}

type CreateTemplateRequest struct {
	MessageType string  `json:"message_type" binding:"required" validate:"required"`
	Channel     *string `json:"channel,omitempty"`
	ScopeID     *uint   `json:"scope_id,omitempty"`
	Subject     string  `json:"subject" validate:"max=255"`
	Body        string  `json:"body" binding:"required" validate:"required"`
}

func (r *CreateTemplateRequest) ToApplicationDTO() *appDto.CreateTemplateRequest {
	return &appDto.CreateTemplateRequest{
		MessageType: r.MessageType,
		Channel:     r.Channel,
		ScopeID:     r.ScopeID,
		Subject:     r.Subject,
		Body:        r.Body,
	}
}

type UpdateTemplateRequest struct {
	Subject string `json:"subject" validate:"max=255"`
	Body    string `json:"body" binding:"required" validate:"required"`
	Active  *bool  `json:"active,omitempty"`
}

func (r *UpdateTemplateRequest) ToApplicationDTO() *appDto.UpdateTemplateRequest {
	return &appDto.UpdateTemplateRequest{
		Subject: r.Subject,
		Body:    r.Body,
		Active:  r.Active,
	}
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return uint(id), nil
}

// ParsePagination reads limit/offset query parameters with defaults.
func ParsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
