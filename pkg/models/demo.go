// Package models holds the persisted entities and their filter
// descriptor tables.
package models

import "time"

// Demo lifecycle states. Rows never leave the table; "deleted" marks
// them invisible to every read path.
const (
	StatusCreated  = "created"
	StatusUpdating = "updating"
	StatusUpdated  = "updated"
	StatusDeleting = "deleting"
	StatusDeleted  = "deleted"
)

var demoStatuses = map[string]struct{}{
	StatusCreated:  {},
	StatusUpdating: {},
	StatusUpdated:  {},
	StatusDeleting: {},
	StatusDeleted:  {},
}

// IsValidStatus reports whether s is a known demo lifecycle state.
func IsValidStatus(s string) bool {
	_, ok := demoStatuses[s]
	return ok
}

// Demo is the managed entity. Identifiers are UUID strings assigned by
// the service, never by the client.
type Demo struct {
	DemoID string `gorm:"column:demo_id;primaryKey" bun:"demo_id,pk" json:"demo_id"`
	Name   string `gorm:"column:name;size:200;not null" bun:"name,notnull" json:"name"`
	Logo   string `gorm:"column:logo" bun:"logo" json:"logo"`

	Status string `gorm:"column:status;size:50;default:created" bun:"status" json:"status"`

	// No column default: a zero value here would be silently replaced
	// by it on insert. The service sets the flag explicitly.
	IsActive bool `gorm:"column:is_active" bun:"is_active" json:"is_active"`

	ErrorMessage     string `gorm:"column:error_message" bun:"error_message" json:"error_message"`
	ErrorUserMessage string `gorm:"column:error_user_message" bun:"error_user_message" json:"error_user_message"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" bun:"created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" bun:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" bun:"deleted_at" json:"deleted_at"`

	CreatedBy string `gorm:"column:created_by" bun:"created_by" json:"created_by"`
	UpdatedBy string `gorm:"column:updated_by" bun:"updated_by" json:"updated_by"`
	DeletedBy string `gorm:"column:deleted_by" bun:"deleted_by" json:"deleted_by"`
}

func (Demo) TableName() string {
	return "demos"
}
