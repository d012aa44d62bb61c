package services

import (
	"errors"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

type LocationListRequest struct {
	Page    int   `form:"page" binding:"omitempty,min=1"`
	PerPage int   `form:"per_page" binding:"omitempty,min=1,max=100"`
	GymID   *uint `form:"gym_id" binding:"omitempty,min=1"`
}

type LocationListResult struct {
	Items   []models.Location
	Counts  []resources.Counts
	Page    int
	PerPage int
	Total   int64
}

type CreateLocationRequest struct {
	GymID      uint   `json:"gym_id" binding:"required,min=1"`
	Name       string `json:"name" binding:"required,max=255"`
	Address    string `json:"address" binding:"omitempty,max=255"`
	City       string `json:"city" binding:"omitempty,max=100"`
	State      string `json:"state" binding:"omitempty,max=100"`
	Country    string `json:"country" binding:"omitempty,max=100"`
	Zip        string `json:"zip" binding:"omitempty,max=20"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
	Email      string `json:"email" binding:"omitempty,email,max=255"`
	Status     string `json:"status" binding:"required,oneof=active inactive"`
}

type UpdateLocationRequest struct {
	GymID      *uint   `json:"gym_id" binding:"omitempty,min=1"`
	Name       *string `json:"name" binding:"omitempty,max=255"`
	Address    *string `json:"address" binding:"omitempty,max=255"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	State      *string `json:"state" binding:"omitempty,max=100"`
	Country    *string `json:"country" binding:"omitempty,max=100"`
	Zip        *string `json:"zip" binding:"omitempty,max=20"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	Email      *string `json:"email" binding:"omitempty,email,max=255"`
	Status     *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (s *LocationService) List(req *LocationListRequest) (*LocationListResult, error) {
	page, perPage := normalizePage(req.Page, req.PerPage)

	query := s.db.Model(&models.Location{})
	if req.GymID != nil {
		query = query.Where("gym_id = ?", *req.GymID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var locations []models.Location
	offset := (page - 1) * perPage
	if err := query.Preload("Gym").Offset(offset).Limit(perPage).Order("id").Find(&locations).Error; err != nil {
		return nil, err
	}

	counts := make([]resources.Counts, len(locations))
	ids := make([]uint, len(locations))
	for i, l := range locations {
		ids[i] = l.ID
		counts[i] = resources.Counts{}
	}
	if len(ids) > 0 {
		userCounts, err := countPivot(s.db, "location_user", "location_id", ids, "")
		if err != nil {
			return nil, err
		}
		groupCounts, err := countPivot(s.db, "group_location", "location_id", ids, "")
		if err != nil {
			return nil, err
		}
		for i, l := range locations {
			counts[i]["users_count"] = userCounts[l.ID]
			counts[i]["groups_count"] = groupCounts[l.ID]
		}
	}

	return &LocationListResult{Items: locations, Counts: counts, Page: page, PerPage: perPage, Total: total}, nil
}

func (s *LocationService) GetByID(id uint) (*models.Location, resources.Counts, error) {
	var location models.Location
	if err := s.db.Preload("Gym").First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFound("Location not found")
		}
		return nil, nil, err
	}

	counts := resources.Counts{}
	userCounts, err := countPivot(s.db, "location_user", "location_id", []uint{id}, "")
	if err != nil {
		return nil, nil, err
	}
	groupCounts, err := countPivot(s.db, "group_location", "location_id", []uint{id}, "")
	if err != nil {
		return nil, nil, err
	}
	counts["users_count"] = userCounts[id]
	counts["groups_count"] = groupCounts[id]

	return &location, counts, nil
}

func (s *LocationService) Create(req *CreateLocationRequest) (*models.Location, error) {
	if err := gymExists(s.db, req.GymID); err != nil {
		return nil, err
	}

	location := models.Location{
		GymID:      req.GymID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		Zip:        req.Zip,
		Phone:      req.Phone,
		Email:      req.Email,
		Status:     req.Status,
	}

	if err := s.db.Create(&location).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Gym").First(&location, location.ID).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

func (s *LocationService) Update(id uint, req *UpdateLocationRequest) (*models.Location, error) {
	var location models.Location
	if err := s.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Location not found")
		}
		return nil, err
	}

	if req.GymID != nil {
		if err := gymExists(s.db, *req.GymID); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.GymID != nil {
		updates["gym_id"] = *req.GymID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&location).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Preload("Gym").First(&location, id).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

// Delete removes a location, detaches its users and groups, and nulls
// primary_location_id on users that pointed at it.
func (s *LocationService) Delete(id uint) error {
	var location models.Location
	if err := s.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Location not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&models.LocationUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", id).Delete(&models.GroupLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("primary_location_id = ?", id).
			Update("primary_location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
}

func gymExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Gym{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return response.NewValidationError("gym_id", "The selected gym id is invalid.")
	}
	return nil
}
