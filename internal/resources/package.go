package resources

import "github.com/gymsuite/backend/internal/models"

type Package struct {
	ID                       uint     `json:"id"`
	GymID                    uint     `json:"gym_id"`
	Gym                      *GymRef  `json:"gym,omitempty"`
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	Price                    float64  `json:"price"`
	DurationDays             int      `json:"duration_days"`
	Benefits                 []string `json:"benefits"`
	GroupAccessLimit         *int     `json:"group_access_limit"`
	UnlimitedAccess          bool     `json:"unlimited_access"`
	Status                   string   `json:"status"`
	UsersCount               *int64   `json:"users_count,omitempty"`
	ActiveSubscriptionsCount *int64   `json:"active_subscriptions_count,omitempty"`
	CreatedAt                string   `json:"created_at"`
	UpdatedAt                string   `json:"updated_at"`
}

func NewPackage(p *models.Package, loaded Loaded, counts Counts) *Package {
	resource := &Package{
		ID:                       p.ID,
		GymID:                    p.GymID,
		Name:                     p.Name,
		Description:              p.Description,
		Price:                    p.Price,
		DurationDays:             p.DurationDays,
		Benefits:                 p.BenefitsList(),
		GroupAccessLimit:         p.GroupAccessLimit,
		UnlimitedAccess:          p.UnlimitedAccess,
		Status:                   p.Status,
		UsersCount:               counts.get("users_count"),
		ActiveSubscriptionsCount: counts.get("active_subscriptions_count"),
		CreatedAt:                formatTimeValue(p.CreatedAt),
		UpdatedAt:                formatTimeValue(p.UpdatedAt),
	}
	if loaded.Has("gym") {
		resource.Gym = NewGymRef(p.Gym)
	}
	return resource
}

func NewPackageList(packages []models.Package, loaded Loaded, counts []Counts) []*Package {
	list := make([]*Package, len(packages))
	for i := range packages {
		var c Counts
		if counts != nil {
			c = counts[i]
		}
		list[i] = NewPackage(&packages[i], loaded, c)
	}
	return list
}

// Subscription is the wire shape of a package purchase row.
type Subscription struct {
	ID            uint    `json:"id"`
	UserID        uint    `json:"user_id"`
	PackageID     uint    `json:"package_id"`
	PricePaid     float64 `json:"price_paid"`
	PurchasedAt   string  `json:"purchased_at"`
	StartsAt      *string `json:"starts_at"`
	ExpiresAt     *string `json:"expires_at"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

func NewSubscription(s *models.PackageUser) *Subscription {
	return &Subscription{
		ID:            s.ID,
		UserID:        s.UserID,
		PackageID:     s.PackageID,
		PricePaid:     s.PricePaid,
		PurchasedAt:   formatTimeValue(s.PurchasedAt),
		StartsAt:      FormatTime(s.StartsAt),
		ExpiresAt:     FormatTime(s.ExpiresAt),
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		PaymentMethod: s.PaymentMethod,
		TransactionID: s.TransactionID,
		Notes:         s.Notes,
		CreatedAt:     formatTimeValue(s.CreatedAt),
	}
}
