package services

import (
	"errors"
	"testing"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/pkg/response"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestGroupService_CreateRejectsBackwardDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")

	_, err := svc.Create(&CreateGroupRequest{
		GymID:     gym.ID,
		Name:      "Backwards",
		StartDate: strPtr("2026-09-10"),
		EndDate:   strPtr("2026-09-01"),
		Status:    models.GroupStatusActive,
	})
	var vErr *response.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("end before start should return ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["end_date"]; !ok {
		t.Errorf("error should name end_date, got %v", vErr.Fields)
	}
}

func TestGroupService_EqualDatesAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")

	group, err := svc.Create(&CreateGroupRequest{
		GymID:     gym.ID,
		Name:      "One Day Camp",
		StartDate: strPtr("2026-09-10"),
		EndDate:   strPtr("2026-09-10"),
		Status:    models.GroupStatusActive,
	})
	if err != nil {
		t.Fatalf("equal start and end dates must be accepted, got %v", err)
	}
	if group.StartDate == nil || group.EndDate == nil || !group.StartDate.Equal(*group.EndDate) {
		t.Error("dates did not round-trip")
	}
}

func TestGroupService_UpdateDateOrderAgainstStored(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")

	group, err := svc.Create(&CreateGroupRequest{
		GymID:     gym.ID,
		Name:      "Bootcamp",
		StartDate: strPtr("2026-09-10"),
		Status:    models.GroupStatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// new end date must respect the stored start date
	_, err = svc.Update(group.ID, &UpdateGroupRequest{EndDate: strPtr("2026-09-01")})
	var vErr *response.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("end before stored start should return ValidationError, got %v", err)
	}
}

func TestGroupService_LocationSync(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")
	locA := makeLocation(t, db, gym.ID, "A")
	locB := makeLocation(t, db, gym.ID, "B")
	locC := makeLocation(t, db, gym.ID, "C")

	ids := []uint{locA.ID, locB.ID}
	group, err := svc.Create(&CreateGroupRequest{
		GymID:       gym.ID,
		Name:        "Bootcamp",
		Status:      models.GroupStatusActive,
		LocationIDs: &ids,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(group.Locations) != 2 {
		t.Fatalf("attached locations = %d, expected 2", len(group.Locations))
	}

	// omitting location_ids leaves attachments untouched
	updated, err := svc.Update(group.ID, &UpdateGroupRequest{Name: strPtr("Bootcamp 2")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Locations) != 2 {
		t.Errorf("omitted location_ids changed attachments: %d", len(updated.Locations))
	}

	// supplying ids replaces the full set
	replace := []uint{locC.ID}
	updated, err = svc.Update(group.ID, &UpdateGroupRequest{LocationIDs: &replace})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Locations) != 1 || updated.Locations[0].ID != locC.ID {
		t.Errorf("replace-sync failed, locations = %v", updated.Locations)
	}

	// an empty array clears everything
	empty := []uint{}
	updated, err = svc.Update(group.ID, &UpdateGroupRequest{LocationIDs: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Locations) != 0 {
		t.Errorf("empty location_ids should clear attachments, got %d", len(updated.Locations))
	}
}

func TestGroupService_UnknownLocationRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")

	ids := []uint{9999}
	_, err := svc.Create(&CreateGroupRequest{
		GymID:       gym.ID,
		Name:        "Bootcamp",
		Status:      models.GroupStatusActive,
		LocationIDs: &ids,
	})
	var vErr *response.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("unknown location id should return ValidationError, got %v", err)
	}
}

func TestGroupService_GymFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gymA := makeGym(t, db, "gym-a")
	gymB := makeGym(t, db, "gym-b")

	for _, g := range []models.Group{
		{GymID: gymA.ID, Name: "A1", Status: models.GroupStatusActive},
		{GymID: gymA.ID, Name: "A2", Status: models.GroupStatusActive},
		{GymID: gymB.ID, Name: "B1", Status: models.GroupStatusActive},
	} {
		group := g
		if err := db.Create(&group).Error; err != nil {
			t.Fatalf("seed group: %v", err)
		}
	}

	result, err := svc.List(&GroupListRequest{GymID: &gymA.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, expected 2", result.Total)
	}
	for _, g := range result.Items {
		if g.GymID != gymA.ID {
			t.Errorf("filter leaked group %q from gym %d", g.Name, g.GymID)
		}
	}
}

func TestGroupService_EnrollAndCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")

	group, err := svc.Create(&CreateGroupRequest{
		GymID:           gym.ID,
		Name:            "Small Class",
		MaxParticipants: intPtr(1),
		Status:          models.GroupStatusActive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	alice := makeUser(t, db, "alice@test.dev", models.RoleTrainee, &gym.ID)
	bob := makeUser(t, db, "bob@test.dev", models.RoleTrainee, &gym.ID)

	member, err := svc.Enroll(group.ID, alice.ID)
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if member.Status != models.MemberStatusEnrolled {
		t.Errorf("member status = %q, expected enrolled", member.Status)
	}
	if member.EnrolledAt == nil {
		t.Error("enrolled_at should be set")
	}

	// a second enrollment of the same user is rejected
	if _, err := svc.Enroll(group.ID, alice.ID); err == nil {
		t.Error("duplicate enrollment should fail")
	}

	// the class is full now
	_, err = svc.Enroll(group.ID, bob.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Fatalf("enrolling into a full group should return 409, got %v", err)
	}
}

func TestGroupService_Unenroll(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")

	group, err := svc.Create(&CreateGroupRequest{GymID: gym.ID, Name: "Class", Status: models.GroupStatusActive})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	alice := makeUser(t, db, "alice@test.dev", models.RoleTrainee, &gym.ID)

	if _, err := svc.Enroll(group.ID, alice.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if err := svc.Unenroll(group.ID, alice.ID); err != nil {
		t.Fatalf("Unenroll() error = %v", err)
	}

	// doing it again reports not enrolled
	err = svc.Unenroll(group.ID, alice.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 404 {
		t.Fatalf("unenrolling a non-member should return 404, got %v", err)
	}
}

func TestGroupService_DeleteClearsPivots(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)
	gym := makeGym(t, db, "iron-works")
	loc := makeLocation(t, db, gym.ID, "Downtown")

	ids := []uint{loc.ID}
	group, err := svc.Create(&CreateGroupRequest{
		GymID:       gym.ID,
		Name:        "Class",
		Status:      models.GroupStatusActive,
		LocationIDs: &ids,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	alice := makeUser(t, db, "alice@test.dev", models.RoleTrainee, &gym.ID)
	if _, err := svc.Enroll(group.ID, alice.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	if err := svc.Delete(group.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var pivots int64
	db.Model(&models.GroupLocation{}).Count(&pivots)
	if pivots != 0 {
		t.Errorf("group_location rows = %d after delete, expected 0", pivots)
	}
	db.Model(&models.GroupUser{}).Count(&pivots)
	if pivots != 0 {
		t.Errorf("group_user rows = %d after delete, expected 0", pivots)
	}

	// the location itself survives
	var locCount int64
	db.Model(&models.Location{}).Count(&locCount)
	if locCount != 1 {
		t.Errorf("location should survive group delete")
	}
}
