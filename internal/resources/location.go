package resources

import "github.com/gymsuite/backend/internal/models"

// LocationRef is the short location shape embedded in other resources.
type LocationRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Location struct {
	ID          uint    `json:"id"`
	GymID       uint    `json:"gym_id"`
	Gym         *GymRef `json:"gym,omitempty"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Country     string  `json:"country"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
	UsersCount  *int64  `json:"users_count,omitempty"`
	GroupsCount *int64  `json:"groups_count,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewLocation(l *models.Location, loaded Loaded, counts Counts) *Location {
	resource := &Location{
		ID:          l.ID,
		GymID:       l.GymID,
		Name:        l.Name,
		Address:     l.Address,
		City:        l.City,
		State:       l.State,
		Zip:         l.Zip,
		Country:     l.Country,
		Phone:       l.Phone,
		Email:       l.Email,
		Status:      l.Status,
		UsersCount:  counts.get("users_count"),
		GroupsCount: counts.get("groups_count"),
		CreatedAt:   formatTimeValue(l.CreatedAt),
		UpdatedAt:   formatTimeValue(l.UpdatedAt),
	}
	if loaded.Has("gym") {
		resource.Gym = NewGymRef(l.Gym)
	}
	return resource
}

func NewLocationList(locations []models.Location, loaded Loaded, counts []Counts) []*Location {
	list := make([]*Location, len(locations))
	for i := range locations {
		var c Counts
		if counts != nil {
			c = counts[i]
		}
		list[i] = NewLocation(&locations[i], loaded, c)
	}
	return list
}
