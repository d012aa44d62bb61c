package services

import (
	"errors"
	"time"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

type GroupListRequest struct {
	Page    int   `form:"page" binding:"omitempty,min=1"`
	PerPage int   `form:"per_page" binding:"omitempty,min=1,max=100"`
	GymID   *uint `form:"gym_id" binding:"omitempty,min=1"`
}

type GroupListResult struct {
	Items   []models.Group
	Page    int
	PerPage int
	Total   int64
}

type CreateGroupRequest struct {
	GymID           uint    `json:"gym_id" binding:"required,min=1"`
	Name            string  `json:"name" binding:"required,max=255"`
	Description     string  `json:"description"`
	StartDate       *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=1"`
	Status          string  `json:"status" binding:"required,oneof=active inactive cancelled completed"`
	LocationIDs     *[]uint `json:"location_ids"`
}

type UpdateGroupRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=255"`
	Description     *string `json:"description"`
	StartDate       *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=1"`
	Status          *string `json:"status" binding:"omitempty,oneof=active inactive cancelled completed"`
	LocationIDs     *[]uint `json:"location_ids"`
}

func (s *GroupService) List(req *GroupListRequest) (*GroupListResult, error) {
	page, perPage := normalizePage(req.Page, req.PerPage)

	query := s.db.Model(&models.Group{})
	if req.GymID != nil {
		query = query.Where("gym_id = ?", *req.GymID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var groups []models.Group
	offset := (page - 1) * perPage
	err := query.Preload("Gym").Preload("Locations").Preload("Members").
		Offset(offset).Limit(perPage).Order("id").Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return &GroupListResult{Items: groups, Page: page, PerPage: perPage, Total: total}, nil
}

func (s *GroupService) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	err := s.db.Preload("Gym").Preload("Locations").Preload("Members").First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Group not found")
		}
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) Create(req *CreateGroupRequest) (*models.Group, error) {
	if err := gymExists(s.db, req.GymID); err != nil {
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, response.NewValidationError("start_date", "The start date is not a valid date.")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, response.NewValidationError("end_date", "The end date is not a valid date.")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, response.NewValidationError("end_date", "The end date must be a date after or equal to start date.")
	}

	if req.LocationIDs != nil {
		if err := locationsExist(s.db, *req.LocationIDs); err != nil {
			return nil, err
		}
	}

	group := models.Group{
		GymID:           req.GymID,
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       startDate,
		EndDate:         endDate,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		if req.LocationIDs != nil {
			return syncGroupLocations(tx, &group, *req.LocationIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(group.ID)
}

// Update patches the supplied fields. location_ids follows sync
// semantics: absent leaves attachments untouched, an empty array
// detaches everything, values replace the full set.
func (s *GroupService) Update(id uint, req *UpdateGroupRequest) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Group not found")
		}
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, response.NewValidationError("start_date", "The start date is not a valid date.")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, response.NewValidationError("end_date", "The end date is not a valid date.")
	}

	effectiveStart := group.StartDate
	if startDate != nil {
		effectiveStart = startDate
	}
	effectiveEnd := group.EndDate
	if endDate != nil {
		effectiveEnd = endDate
	}
	if effectiveStart != nil && effectiveEnd != nil && effectiveEnd.Before(*effectiveStart) {
		return nil, response.NewValidationError("end_date", "The end date must be a date after or equal to start date.")
	}

	if req.LocationIDs != nil {
		if err := locationsExist(s.db, *req.LocationIDs); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if startDate != nil {
		updates["start_date"] = *startDate
	}
	if endDate != nil {
		updates["end_date"] = *endDate
	}
	if req.MaxParticipants != nil {
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&group).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.LocationIDs != nil {
			return syncGroupLocations(tx, &group, *req.LocationIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

func (s *GroupService) Delete(id uint) error {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Group not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

// Enroll adds a user to the group unless it is at capacity or the user
// is already enrolled.
func (s *GroupService) Enroll(groupID, userID uint) (*models.GroupUser, error) {
	group, err := s.GetByID(groupID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	if group.IsFull() {
		return nil, response.NewConflict("The group is full")
	}

	var existing int64
	err = s.db.Model(&models.GroupUser{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("User is already enrolled in this group")
	}

	now := time.Now()
	member := models.GroupUser{
		GroupID:    groupID,
		UserID:     userID,
		Status:     models.MemberStatusEnrolled,
		EnrolledAt: &now,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *GroupService) Unenroll(groupID, userID uint) error {
	if _, err := s.GetByID(groupID); err != nil {
		return err
	}

	result := s.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("User is not enrolled in this group")
	}
	return nil
}

func syncGroupLocations(tx *gorm.DB, group *models.Group, locationIDs []uint) error {
	if len(locationIDs) == 0 {
		return tx.Model(group).Association("Locations").Clear()
	}
	locations := make([]models.Location, len(locationIDs))
	for i, id := range locationIDs {
		locations[i] = models.Location{ID: id}
	}
	return tx.Model(group).Association("Locations").Replace(locations)
}

func locationsExist(db *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := db.Model(&models.Location{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return response.NewValidationError("location_ids", "The selected location ids are invalid.")
	}
	return nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
