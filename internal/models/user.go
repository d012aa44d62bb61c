package models

import "time"

// User roles
const (
	RoleSuperAdmin = "super_admin"
	RoleGymAdmin   = "gym_admin"
	RoleTrainer    = "trainer"
	RoleTrainee    = "trainee"
)

// RoleNames maps role keys to display names.
var RoleNames = map[string]string{
	RoleSuperAdmin: "Super Admin",
	RoleGymAdmin:   "Gym Admin",
	RoleTrainer:    "Trainer",
	RoleTrainee:    "Trainee",
}

// User represents an account: gym staff or a trainee. gym_id and
// primary_location_id are optional and nulled when the referenced row
// is deleted.
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	GymID             *uint      `gorm:"index" json:"gym_id"`
	Gym               *Gym       `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	PrimaryLocationID *uint      `gorm:"index" json:"primary_location_id"`
	PrimaryLocation   *Location  `gorm:"foreignKey:PrimaryLocationID" json:"primary_location,omitempty"`
	FirstName         string     `gorm:"size:255;not null" json:"first_name"`
	LastName          string     `gorm:"size:255;not null" json:"last_name"`
	Email             string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Mobile            string     `gorm:"size:20" json:"mobile"`
	Phone             string     `gorm:"size:20" json:"phone"`
	Status            string     `gorm:"size:50;default:active" json:"status"`
	Birthdate         *time.Time `json:"birthdate"`
	Gender            string     `gorm:"size:20" json:"gender"` // male, female, other
	Password          string     `gorm:"size:255;not null" json:"-"`
	Role              string     `gorm:"size:50;default:trainee" json:"role"` // super_admin, gym_admin, trainer, trainee
	EmailVerifiedAt   *time.Time `json:"email_verified_at"`
	LastLogin         *time.Time `json:"last_login"`

	Locations     []Location    `gorm:"many2many:location_user" json:"locations,omitempty"`
	Memberships   []GroupUser   `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Subscriptions []PackageUser `gorm:"foreignKey:UserID" json:"subscriptions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Name returns the user's full name.
func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) HasVerifiedEmail() bool {
	return u.EmailVerifiedAt != nil
}

func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }
func (u *User) IsGymAdmin() bool   { return u.Role == RoleGymAdmin }
func (u *User) IsTrainer() bool    { return u.Role == RoleTrainer }
func (u *User) IsTrainee() bool    { return u.Role == RoleTrainee }

// HasActivePackage reports whether any loaded subscription is currently
// active. Subscriptions must have been preloaded.
func (u *User) HasActivePackage(now time.Time) bool {
	for _, s := range u.Subscriptions {
		if s.IsActive(now) {
			return true
		}
	}
	return false
}
