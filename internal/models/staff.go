package models

import "time"

// StaffMember is a roster entry used purely for action attribution.
type StaffMember struct {
	Name          string     `db:"name" json:"name"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	AddedAt       time.Time  `db:"added_at" json:"added_at"`
	DeactivatedAt *time.Time `db:"deactivated_at" json:"deactivated_at"`
}
