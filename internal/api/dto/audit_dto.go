package dto

// AuditQuery limits how many recent audit entries are returned.
type AuditQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}
