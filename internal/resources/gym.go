package resources

import "github.com/gymsuite/backend/internal/models"

// GymRef is the short gym shape embedded in child resources.
type GymRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewGymRef(g *models.Gym) *GymRef {
	if g == nil {
		return nil
	}
	return &GymRef{ID: g.ID, Name: g.Name, Slug: g.Slug}
}

type Gym struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    string  `json:"description"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Website        string  `json:"website"`
	Status         string  `json:"status"`
	LocationsCount *int64  `json:"locations_count,omitempty"`
	UsersCount     *int64  `json:"users_count,omitempty"`
	GroupsCount    *int64  `json:"groups_count,omitempty"`
	PackagesCount  *int64  `json:"packages_count,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewGym(g *models.Gym, counts Counts) *Gym {
	return &Gym{
		ID:             g.ID,
		Name:           g.Name,
		Slug:           g.Slug,
		Description:    g.Description,
		Email:          g.Email,
		Phone:          g.Phone,
		Website:        g.Website,
		Status:         g.Status,
		LocationsCount: counts.get("locations_count"),
		UsersCount:     counts.get("users_count"),
		GroupsCount:    counts.get("groups_count"),
		PackagesCount:  counts.get("packages_count"),
		CreatedAt:      formatTimeValue(g.CreatedAt),
		UpdatedAt:      formatTimeValue(g.UpdatedAt),
	}
}

func NewGymList(gyms []models.Gym, counts []Counts) []*Gym {
	list := make([]*Gym, len(gyms))
	for i := range gyms {
		var c Counts
		if counts != nil {
			c = counts[i]
		}
		list[i] = NewGym(&gyms[i], c)
	}
	return list
}
