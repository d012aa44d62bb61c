package services

import (
	"errors"
	"testing"
	"time"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/pkg/response"
)

func floatPtr(f float64) *float64 { return &f }

func TestPackageService_CreateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewPackageService(db)
	gym := makeGym(t, db, "iron-works")

	created, err := svc.Create(&CreatePackageRequest{
		GymID:        gym.ID,
		Name:         "Monthly",
		Price:        floatPtr(49.99),
		DurationDays: 30,
		Benefits:     []string{"pool", "sauna"},
		Status:       models.PackageStatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, _, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Price != 49.99 || got.DurationDays != 30 {
		t.Errorf("round-trip lost fields: price=%v duration=%d", got.Price, got.DurationDays)
	}
	benefits := got.BenefitsList()
	if len(benefits) != 2 || benefits[0] != "pool" {
		t.Errorf("benefits round-trip = %v", benefits)
	}
}

func TestPackageService_PermissiveUnlimitedAccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewPackageService(db)
	gym := makeGym(t, db, "iron-works")

	// unlimited_access together with a concrete limit is accepted as-is
	limit := 5
	created, err := svc.Create(&CreatePackageRequest{
		GymID:            gym.ID,
		Name:             "Odd Combo",
		Price:            floatPtr(10),
		DurationDays:     7,
		GroupAccessLimit: &limit,
		UnlimitedAccess:  true,
		Status:           models.PackageStatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !created.UnlimitedAccess || created.GroupAccessLimit == nil || *created.GroupAccessLimit != 5 {
		t.Errorf("both fields must be stored verbatim: unlimited=%v limit=%v",
			created.UnlimitedAccess, created.GroupAccessLimit)
	}
}

func TestPackageService_Purchase(t *testing.T) {
	db := newTestDB(t)
	svc := NewPackageService(db)
	gym := makeGym(t, db, "iron-works")
	user := makeUser(t, db, "buyer@test.dev", models.RoleTrainee, &gym.ID)

	pkg, err := svc.Create(&CreatePackageRequest{
		GymID:        gym.ID,
		Name:         "Monthly",
		Price:        floatPtr(49.99),
		DurationDays: 30,
		Status:       models.PackageStatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	sub, err := svc.Purchase(pkg.ID, &PurchaseRequest{UserID: user.ID, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if sub.PricePaid != 49.99 {
		t.Errorf("price_paid = %v, expected the package price", sub.PricePaid)
	}
	if sub.TransactionID == "" {
		t.Error("every purchase should get a transaction id")
	}
	if sub.StartsAt == nil || sub.ExpiresAt == nil {
		t.Fatal("starts_at and expires_at must be set")
	}
	wantExpiry := sub.StartsAt.AddDate(0, 0, 30)
	if !sub.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expires_at = %v, expected starts_at + 30d = %v", sub.ExpiresAt, wantExpiry)
	}
	if !sub.IsActive(time.Now()) {
		t.Error("a fresh purchase should be active")
	}
}

func TestPackageService_PurchaseInactivePackage(t *testing.T) {
	db := newTestDB(t)
	svc := NewPackageService(db)
	gym := makeGym(t, db, "iron-works")
	user := makeUser(t, db, "buyer@test.dev", models.RoleTrainee, &gym.ID)

	pkg, err := svc.Create(&CreatePackageRequest{
		GymID:        gym.ID,
		Name:         "Retired Plan",
		Price:        floatPtr(10),
		DurationDays: 7,
		Status:       models.PackageStatusInactive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Purchase(pkg.ID, &PurchaseRequest{UserID: user.ID})
	var vErr *response.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("buying an inactive package should return ValidationError, got %v", err)
	}
}

func TestPackageUser_ActiveBoundary(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name string
		sub  models.PackageUser
		want bool
	}{
		{"active future expiry", models.PackageUser{Status: models.SubscriptionStatusActive, ExpiresAt: &future}, true},
		{"active past expiry", models.PackageUser{Status: models.SubscriptionStatusActive, ExpiresAt: &past}, false},
		{"expiry exactly now", models.PackageUser{Status: models.SubscriptionStatusActive, ExpiresAt: &now}, false},
		{"cancelled future expiry", models.PackageUser{Status: models.SubscriptionStatusCancelled, ExpiresAt: &future}, false},
		{"no expiry", models.PackageUser{Status: models.SubscriptionStatusActive}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sub.IsActive(now); got != tc.want {
				t.Errorf("IsActive() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestPackageService_DeleteClearsSubscriptions(t *testing.T) {
	db := newTestDB(t)
	svc := NewPackageService(db)
	gym := makeGym(t, db, "iron-works")
	user := makeUser(t, db, "buyer@test.dev", models.RoleTrainee, &gym.ID)

	pkg, err := svc.Create(&CreatePackageRequest{
		GymID:        gym.ID,
		Name:         "Monthly",
		Price:        floatPtr(49.99),
		DurationDays: 30,
		Status:       models.PackageStatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Purchase(pkg.ID, &PurchaseRequest{UserID: user.ID}); err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}

	if err := svc.Delete(pkg.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var subs int64
	db.Model(&models.PackageUser{}).Count(&subs)
	if subs != 0 {
		t.Errorf("package_user rows = %d after delete, expected 0", subs)
	}
}

func TestPackageService_GymFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewPackageService(db)
	gymA := makeGym(t, db, "gym-a")
	gymB := makeGym(t, db, "gym-b")

	for _, p := range []models.Package{
		{GymID: gymA.ID, Name: "A1", Price: 1, DurationDays: 1, Status: models.PackageStatusActive},
		{GymID: gymB.ID, Name: "B1", Price: 1, DurationDays: 1, Status: models.PackageStatusActive},
	} {
		pkg := p
		if err := db.Create(&pkg).Error; err != nil {
			t.Fatalf("seed package: %v", err)
		}
	}

	result, err := svc.List(&PackageListRequest{GymID: &gymA.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 || result.Items[0].GymID != gymA.ID {
		t.Errorf("gym filter returned %d items (total %d)", len(result.Items), result.Total)
	}
}
