package resources

import "github.com/gymsuite/backend/internal/models"

type User struct {
	ID                uint            `json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Mobile            string          `json:"mobile"`
	Phone             string          `json:"phone"`
	Status            string          `json:"status"`
	Birthdate         *string         `json:"birthdate"`
	Gender            string          `json:"gender"`
	Role              string          `json:"role"`
	RoleName          string          `json:"role_name"`
	GymID             *uint           `json:"gym_id"`
	Gym               *GymRef         `json:"gym,omitempty"`
	PrimaryLocationID *uint           `json:"primary_location_id"`
	PrimaryLocation   *LocationRef    `json:"primary_location,omitempty"`
	Locations         []LocationRef   `json:"locations,omitempty"`
	Subscriptions     []*Subscription `json:"subscriptions,omitempty"`
	EmailVerifiedAt   *string         `json:"email_verified_at"`
	LastLogin         *string         `json:"last_login"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func NewUser(u *models.User, loaded Loaded) *User {
	roleName := u.Role
	if display, ok := models.RoleNames[u.Role]; ok {
		roleName = display
	}

	resource := &User{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Name:              u.Name(),
		Email:             u.Email,
		Mobile:            u.Mobile,
		Phone:             u.Phone,
		Status:            u.Status,
		Birthdate:         FormatDate(u.Birthdate),
		Gender:            u.Gender,
		Role:              u.Role,
		RoleName:          roleName,
		GymID:             u.GymID,
		PrimaryLocationID: u.PrimaryLocationID,
		EmailVerifiedAt:   FormatTime(u.EmailVerifiedAt),
		LastLogin:         FormatTime(u.LastLogin),
		CreatedAt:         formatTimeValue(u.CreatedAt),
		UpdatedAt:         formatTimeValue(u.UpdatedAt),
	}
	if loaded.Has("gym") {
		resource.Gym = NewGymRef(u.Gym)
	}
	if loaded.Has("primary_location") && u.PrimaryLocation != nil {
		resource.PrimaryLocation = &LocationRef{
			ID:   u.PrimaryLocation.ID,
			Name: u.PrimaryLocation.Name,
			City: u.PrimaryLocation.City,
		}
	}
	if loaded.Has("locations") {
		refs := make([]LocationRef, len(u.Locations))
		for i, l := range u.Locations {
			refs[i] = LocationRef{ID: l.ID, Name: l.Name, City: l.City}
		}
		resource.Locations = refs
	}
	if loaded.Has("subscriptions") {
		subs := make([]*Subscription, len(u.Subscriptions))
		for i := range u.Subscriptions {
			subs[i] = NewSubscription(&u.Subscriptions[i])
		}
		resource.Subscriptions = subs
	}
	return resource
}

func NewUserList(users []models.User, loaded Loaded) []*User {
	list := make([]*User, len(users))
	for i := range users {
		list[i] = NewUser(&users[i], loaded)
	}
	return list
}
