package models

import "time"

// LocationUser assigns a user to a location.
type LocationUser struct {
	LocationID uint      `gorm:"primaryKey" json:"location_id"`
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (LocationUser) TableName() string { return "location_user" }

// GroupLocation offers a group at a location.
type GroupLocation struct {
	GroupID    uint      `gorm:"primaryKey" json:"group_id"`
	LocationID uint      `gorm:"primaryKey" json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (GroupLocation) TableName() string { return "group_location" }

// GroupUser is a group membership row carrying enrollment state.
type GroupUser struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	GroupID    uint       `gorm:"index:idx_group_user,unique;not null" json:"group_id"`
	UserID     uint       `gorm:"index:idx_group_user,unique;not null" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status     string     `gorm:"size:50;default:enrolled" json:"status"` // enrolled, waitlist, cancelled
	EnrolledAt *time.Time `json:"enrolled_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (GroupUser) TableName() string { return "group_user" }

// Subscription pivot statuses
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusSuspended = "suspended"
)

// Payment statuses
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

// PackageUser is a package purchase row: the subscription state of a
// user for one package.
type PackageUser struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index:idx_package_user_status;not null" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PackageID     uint       `gorm:"index;not null" json:"package_id"`
	Package       *Package   `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	PricePaid     float64    `gorm:"type:decimal(10,2);not null" json:"price_paid"`
	PurchasedAt   time.Time  `gorm:"not null" json:"purchased_at"`
	StartsAt      *time.Time `json:"starts_at"`
	ExpiresAt     *time.Time `gorm:"index" json:"expires_at"`
	Status        string     `gorm:"size:50;default:active;index:idx_package_user_status" json:"status"` // active, expired, cancelled, suspended
	PaymentStatus string     `gorm:"size:50;default:pending" json:"payment_status"`                      // pending, paid, refunded, failed
	PaymentMethod string     `gorm:"size:50" json:"payment_method"`
	TransactionID string     `gorm:"size:255" json:"transaction_id"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (PackageUser) TableName() string { return "package_user" }

// IsActive reports whether the subscription is active at the given time:
// status is active and the expiry lies strictly in the future.
func (s *PackageUser) IsActive(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.ExpiresAt != nil && s.ExpiresAt.After(now)
}
