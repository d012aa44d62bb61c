package models

import "time"

// Location statuses
const (
	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"
)

// Location is a physical site belonging to a gym.
type Location struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	GymID   uint   `gorm:"index;not null" json:"gym_id"`
	Gym     *Gym   `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:255" json:"city"`
	State   string `gorm:"size:255" json:"state"`
	Zip     string `gorm:"size:20" json:"zip"`
	Country string `gorm:"size:255" json:"country"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`
	Status  string `gorm:"size:50;default:active" json:"status"` // active, inactive

	Users  []User  `gorm:"many2many:location_user" json:"users,omitempty"`
	Groups []Group `gorm:"many2many:group_location" json:"groups,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Location) TableName() string { return "locations" }
