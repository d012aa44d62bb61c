package models

import (
	"encoding/json"
	"time"
)

// Package statuses
const (
	PackageStatusActive   = "active"
	PackageStatusInactive = "inactive"
)

// Package is a purchasable membership plan with a validity window and
// group access rules.
type Package struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	GymID            uint    `gorm:"index;not null" json:"gym_id"`
	Gym              *Gym    `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	Name             string  `gorm:"size:255;not null" json:"name"`
	Description      string  `gorm:"type:text" json:"description"`
	Price            float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays     int     `gorm:"not null" json:"duration_days"`
	Benefits         string  `gorm:"type:text" json:"benefits"` // JSON array of benefit strings
	GroupAccessLimit *int    `json:"group_access_limit"`        // nil = unlimited
	UnlimitedAccess  bool    `gorm:"default:false" json:"unlimited_access"`
	Status           string  `gorm:"size:50;default:active" json:"status"` // active, inactive

	Subscriptions []PackageUser `gorm:"foreignKey:PackageID" json:"subscriptions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Package) TableName() string { return "packages" }

// BenefitsList decodes the stored benefits JSON. Invalid or empty
// content yields an empty list.
func (p *Package) BenefitsList() []string {
	if p.Benefits == "" {
		return []string{}
	}
	var benefits []string
	if err := json.Unmarshal([]byte(p.Benefits), &benefits); err != nil {
		return []string{}
	}
	return benefits
}

// SetBenefits encodes the benefit list into the stored JSON column.
func (p *Package) SetBenefits(benefits []string) error {
	if benefits == nil {
		benefits = []string{}
	}
	data, err := json.Marshal(benefits)
	if err != nil {
		return err
	}
	p.Benefits = string(data)
	return nil
}
