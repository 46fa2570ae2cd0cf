package constants

const (
	TableDeliveries       = "notification_deliveries"
	TablePreferences      = "notification_preferences"
	TableTemplates        = "notification_templates"
	TableResidents        = "residents"
	TableScopeMemberships = "scope_memberships"
)
