package models

import "time"

// Gym statuses
const (
	GymStatusActive    = "active"
	GymStatusInactive  = "inactive"
	GymStatusSuspended = "suspended"
)

// Gym is the top-level tenant. Every location, group, package and most
// users belong to exactly one gym.
type Gym struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:20" json:"phone"`
	Website     string `gorm:"size:255" json:"website"`
	Status      string `gorm:"size:50;default:active;index" json:"status"` // active, inactive, suspended

	Locations []Location `gorm:"foreignKey:GymID" json:"locations,omitempty"`
	Users     []User     `gorm:"foreignKey:GymID" json:"users,omitempty"`
	Groups    []Group    `gorm:"foreignKey:GymID" json:"groups,omitempty"`
	Packages  []Package  `gorm:"foreignKey:GymID" json:"packages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Gym) TableName() string { return "gyms" }
