package services

import (
	"errors"
	"testing"
	"time"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/utils"
	"github.com/gymsuite/backend/pkg/response"
)

func TestUserService_CreateHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Create(&CreateUserRequest{
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@test.dev",
		Password:  "plain-password",
		Role:      models.RoleTrainer,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var stored models.User
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Password == "plain-password" {
		t.Fatal("password stored in plaintext")
	}
	if !utils.CheckPassword("plain-password", stored.Password) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestUserService_EmailUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	makeUser(t, db, "jamie@test.dev", models.RoleTrainee, nil)

	_, err := svc.Create(&CreateUserRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "jamie@test.dev",
		Password:  "some-password",
		Role:      models.RoleTrainee,
	})
	var vErr *response.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("duplicate email should return ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["email"]; !ok {
		t.Errorf("error should name the email field, got %v", vErr.Fields)
	}
}

func TestUserService_UpdateKeepsOwnEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := makeUser(t, db, "jamie@test.dev", models.RoleTrainee, nil)
	makeUser(t, db, "taken@test.dev", models.RoleTrainee, nil)

	own := "jamie@test.dev"
	if _, err := svc.Update(user.ID, &UpdateUserRequest{Email: &own}); err != nil {
		t.Fatalf("re-submitting own email should not conflict: %v", err)
	}

	taken := "taken@test.dev"
	_, err := svc.Update(user.ID, &UpdateUserRequest{Email: &taken})
	var vErr *response.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("taking another user's email should return ValidationError, got %v", err)
	}
}

func TestUserService_LocationSync(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	gym := makeGym(t, db, "iron-works")
	locA := makeLocation(t, db, gym.ID, "A")
	locB := makeLocation(t, db, gym.ID, "B")
	user := makeUser(t, db, "jamie@test.dev", models.RoleTrainee, &gym.ID)

	ids := []uint{locA.ID, locB.ID}
	updated, err := svc.Update(user.ID, &UpdateUserRequest{LocationIDs: &ids})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Locations) != 2 {
		t.Fatalf("attached locations = %d, expected 2", len(updated.Locations))
	}

	// omitted leaves attachments alone
	name := "Jamie2"
	updated, err = svc.Update(user.ID, &UpdateUserRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Locations) != 2 {
		t.Errorf("omitted location_ids changed attachments: %d", len(updated.Locations))
	}

	// empty clears
	empty := []uint{}
	updated, err = svc.Update(user.ID, &UpdateUserRequest{LocationIDs: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Locations) != 0 {
		t.Errorf("empty location_ids should clear attachments, got %d", len(updated.Locations))
	}
}

func TestUserService_DeleteClearsDependents(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	gym := makeGym(t, db, "iron-works")
	loc := makeLocation(t, db, gym.ID, "Downtown")
	user := makeUser(t, db, "jamie@test.dev", models.RoleTrainee, &gym.ID)

	if err := db.Create(&models.LocationUser{LocationID: loc.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("attach location: %v", err)
	}
	group := models.Group{GymID: gym.ID, Name: "Class", Status: models.GroupStatusActive}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	now := time.Now()
	if err := db.Create(&models.GroupUser{GroupID: group.ID, UserID: user.ID, Status: models.MemberStatusEnrolled, EnrolledAt: &now}).Error; err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := db.Create(&models.AccessToken{UserID: user.ID, TokenHash: "h1", ExpiresAt: now.Add(time.Hour)}).Error; err != nil {
		t.Fatalf("token: %v", err)
	}

	if err := svc.Delete(user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"location_user", &models.LocationUser{}},
		{"group_user", &models.GroupUser{}},
		{"access_tokens", &models.AccessToken{}},
	} {
		var count int64
		db.Model(check.model).Count(&count)
		if count != 0 {
			t.Errorf("%s rows = %d after user delete, expected 0", check.name, count)
		}
	}

	// the group itself survives
	var groups int64
	db.Model(&models.Group{}).Count(&groups)
	if groups != 1 {
		t.Error("group should survive member delete")
	}
}

func TestUserService_RoleAndGymFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	gymA := makeGym(t, db, "gym-a")
	gymB := makeGym(t, db, "gym-b")

	makeUser(t, db, "a1@test.dev", models.RoleTrainee, &gymA.ID)
	makeUser(t, db, "a2@test.dev", models.RoleTrainer, &gymA.ID)
	makeUser(t, db, "b1@test.dev", models.RoleTrainee, &gymB.ID)

	result, err := svc.List(&UserListRequest{GymID: &gymA.ID, Role: models.RoleTrainee})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].Email != "a1@test.dev" {
		t.Errorf("combined filter returned %d items", result.Total)
	}
}

func TestUserService_FindByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	makeUser(t, db, "jamie@test.dev", models.RoleTrainee, nil)

	user, err := svc.FindByEmail("jamie@test.dev")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if user.Email != "jamie@test.dev" {
		t.Errorf("FindByEmail() returned %q", user.Email)
	}

	_, err = svc.FindByEmail("missing@test.dev")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 404 {
		t.Fatalf("missing email should return 404, got %v", err)
	}
}

func TestUser_HasActivePackage(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	user := models.User{Subscriptions: []models.PackageUser{
		{Status: models.SubscriptionStatusExpired, ExpiresAt: &past},
		{Status: models.SubscriptionStatusActive, ExpiresAt: &future},
	}}
	if !user.HasActivePackage(now) {
		t.Error("user with one live subscription should have an active package")
	}

	lapsed := models.User{Subscriptions: []models.PackageUser{
		{Status: models.SubscriptionStatusActive, ExpiresAt: &past},
	}}
	if lapsed.HasActivePackage(now) {
		t.Error("expired subscription must not count as active")
	}
}

func TestUserService_HasActivePackage(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	gym := makeGym(t, db, "predicate-gym")
	member := makeUser(t, db, "member@test.dev", models.RoleTrainee, &gym.ID)
	lapsed := makeUser(t, db, "lapsed@test.dev", models.RoleTrainee, &gym.ID)

	pkg := models.Package{GymID: gym.ID, Name: "Monthly", Price: 49.90, DurationDays: 30, Status: "active"}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("create package: %v", err)
	}

	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	rows := []models.PackageUser{
		{UserID: member.ID, PackageID: pkg.ID, PricePaid: 49.90, PurchasedAt: now, ExpiresAt: &future, Status: models.SubscriptionStatusActive},
		{UserID: lapsed.ID, PackageID: pkg.ID, PricePaid: 49.90, PurchasedAt: past, ExpiresAt: &past, Status: models.SubscriptionStatusActive},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create subscription: %v", err)
		}
	}

	active, err := svc.HasActivePackage(member.ID, now)
	if err != nil {
		t.Fatalf("HasActivePackage() error = %v", err)
	}
	if !active {
		t.Error("unexpired active subscription should count")
	}

	active, err = svc.HasActivePackage(lapsed.ID, now)
	if err != nil {
		t.Fatalf("HasActivePackage() error = %v", err)
	}
	if active {
		t.Error("subscription expired in the past must not count")
	}
}
