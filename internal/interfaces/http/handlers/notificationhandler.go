package handlers

import (
	"github.com/gin-gonic/gin"

	appDto "habitat/internal/application/notification/dto"
	"habitat/internal/interfaces/dto"
	"habitat/internal/interfaces/http/middleware"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// Send fans a notification out to an explicit recipient list.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	receipt, err := h.service.Send(c.Request.Context(), req.ToApplicationDTO())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, receipt, "Notification accepted")
}

// SendToScope fans a notification out to every active resident of a scope.
func (h *NotificationHandler) SendToScope(c *gin.Context) {
	var req dto.SendToScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for scope send", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	receipt, err := h.service.SendToScope(c.Request.Context(), req.ToApplicationDTO())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, receipt, "Notification accepted")
}

// ListDeliveries returns the caller's deliveries, newest first.
func (h *NotificationHandler) ListDeliveries(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	limit, offset := dto.ParsePagination(c)
	result, err := h.service.ListDeliveries(c.Request.Context(), &appDto.ListDeliveriesRequest{
		RecipientID: callerID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// GetUnreadCount returns how many deliveries the caller has not read yet.
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	result, err := h.service.UnreadCount(c.Request.Context(), callerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// MarkRead marks one of the caller's deliveries as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	deliveryID, err := dto.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), deliveryID, callerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Notification marked as read")
}

// MarkAllRead marks every readable delivery of the caller as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), callerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "All notifications marked as read")
}

// SetPreference stores an opt-in or opt-out for the caller.
func (h *NotificationHandler) SetPreference(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	var req dto.SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set preference", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.SetPreference(c.Request.Context(), req.ToApplicationDTO(callerID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Preference saved")
}

// ListPreferences returns the caller's stored preference rows.
func (h *NotificationHandler) ListPreferences(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	result, err := h.service.ListPreferences(c.Request.Context(), callerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// CreateTemplate registers a new notification template.
func (h *NotificationHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create template", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.CreateTemplate(c.Request.Context(), req.ToApplicationDTO())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Template created")
}

// UpdateTemplate edits a template's text or toggles it active.
func (h *NotificationHandler) UpdateTemplate(c *gin.Context) {
	templateID, err := dto.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update template", "template_id", templateID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateTemplate(c.Request.Context(), templateID, req.ToApplicationDTO())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Template updated")
}

// ListTemplates pages through the tenant's templates.
func (h *NotificationHandler) ListTemplates(c *gin.Context) {
	limit, offset := dto.ParsePagination(c)

	result, err := h.service.ListTemplates(c.Request.Context(), limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
