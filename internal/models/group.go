package models

import "time"

// Group statuses
const (
	GroupStatusActive    = "active"
	GroupStatusInactive  = "inactive"
	GroupStatusCancelled = "cancelled"
	GroupStatusCompleted = "completed"
)

// Group member pivot statuses
const (
	MemberStatusEnrolled  = "enrolled"
	MemberStatusWaitlist  = "waitlist"
	MemberStatusCancelled = "cancelled"
)

// Group is a recurring class or cohort offered at one or more locations.
type Group struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	GymID           uint       `gorm:"index;not null" json:"gym_id"`
	Gym             *Gym       `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Description     string     `gorm:"type:text" json:"description"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	MaxParticipants *int       `json:"max_participants"`
	Status          string     `gorm:"size:50;default:active" json:"status"` // active, inactive, cancelled, completed

	Locations []Location  `gorm:"many2many:group_location" json:"locations,omitempty"`
	Members   []GroupUser `gorm:"foreignKey:GroupID" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Group) TableName() string { return "groups" }

// EnrolledCount counts loaded members with enrolled status.
// Members must have been preloaded for the count to be meaningful.
func (g *Group) EnrolledCount() int {
	count := 0
	for _, m := range g.Members {
		if m.Status == MemberStatusEnrolled {
			count++
		}
	}
	return count
}

// IsFull reports whether the group reached max_participants.
// A group without a participant cap is never full.
func (g *Group) IsFull() bool {
	if g.MaxParticipants == nil || *g.MaxParticipants <= 0 {
		return false
	}
	return g.EnrolledCount() >= *g.MaxParticipants
}
