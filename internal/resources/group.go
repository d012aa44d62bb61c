package resources

import "github.com/gymsuite/backend/internal/models"

type Group struct {
	ID              uint          `json:"id"`
	GymID           uint          `json:"gym_id"`
	Gym             *GymRef       `json:"gym,omitempty"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	StartDate       *string       `json:"start_date"`
	EndDate         *string       `json:"end_date"`
	MaxParticipants *int          `json:"max_participants"`
	Status          string        `json:"status"`
	Locations       []LocationRef `json:"locations,omitempty"`
	LocationsCount  *int64        `json:"locations_count,omitempty"`
	UsersCount      *int64        `json:"users_count,omitempty"`
	EnrolledCount   *int          `json:"enrolled_count,omitempty"`
	IsFull          *bool         `json:"is_full,omitempty"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

func NewGroup(g *models.Group, loaded Loaded, counts Counts) *Group {
	resource := &Group{
		ID:              g.ID,
		GymID:           g.GymID,
		Name:            g.Name,
		Description:     g.Description,
		StartDate:       FormatDate(g.StartDate),
		EndDate:         FormatDate(g.EndDate),
		MaxParticipants: g.MaxParticipants,
		Status:          g.Status,
		LocationsCount:  counts.get("locations_count"),
		UsersCount:      counts.get("users_count"),
		CreatedAt:       formatTimeValue(g.CreatedAt),
		UpdatedAt:       formatTimeValue(g.UpdatedAt),
	}
	if loaded.Has("gym") {
		resource.Gym = NewGymRef(g.Gym)
	}
	if loaded.Has("locations") {
		refs := make([]LocationRef, len(g.Locations))
		for i, l := range g.Locations {
			refs[i] = LocationRef{ID: l.ID, Name: l.Name, City: l.City}
		}
		resource.Locations = refs
	}
	if loaded.Has("members") {
		enrolled := g.EnrolledCount()
		full := g.IsFull()
		resource.EnrolledCount = &enrolled
		resource.IsFull = &full
	}
	return resource
}

func NewGroupList(groups []models.Group, loaded Loaded, counts []Counts) []*Group {
	list := make([]*Group, len(groups))
	for i := range groups {
		var c Counts
		if counts != nil {
			c = counts[i]
		}
		list[i] = NewGroup(&groups[i], loaded, c)
	}
	return list
}
