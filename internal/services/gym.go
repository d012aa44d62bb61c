package services

import (
	"errors"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type GymService struct {
	db *gorm.DB
}

func NewGymService(db *gorm.DB) *GymService {
	return &GymService{db: db}
}

type GymListRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

type GymListResult struct {
	Items   []models.Gym
	Counts  []resources.Counts
	Page    int
	PerPage int
	Total   int64
}

type CreateGymRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=255"`
	Description string `json:"description"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
	Website     string `json:"website" binding:"omitempty,url,max=255"`
	Status      string `json:"status" binding:"required,oneof=active inactive suspended"`
}

type UpdateGymRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Slug        *string `json:"slug" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Website     *string `json:"website" binding:"omitempty,url,max=255"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive suspended"`
}

// List returns a page of gyms with location and user counts.
func (s *GymService) List(req *GymListRequest) (*GymListResult, error) {
	page, perPage := normalizePage(req.Page, req.PerPage)

	var gyms []models.Gym
	var total int64

	if err := s.db.Model(&models.Gym{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	if err := s.db.Offset(offset).Limit(perPage).Order("id").Find(&gyms).Error; err != nil {
		return nil, err
	}

	counts := make([]resources.Counts, len(gyms))
	ids := make([]uint, len(gyms))
	for i, g := range gyms {
		ids[i] = g.ID
		counts[i] = resources.Counts{}
	}
	if len(ids) > 0 {
		locCounts, err := countByParent(s.db, &models.Location{}, "gym_id", ids)
		if err != nil {
			return nil, err
		}
		userCounts, err := countByParent(s.db, &models.User{}, "gym_id", ids)
		if err != nil {
			return nil, err
		}
		for i, g := range gyms {
			counts[i]["locations_count"] = locCounts[g.ID]
			counts[i]["users_count"] = userCounts[g.ID]
		}
	}

	return &GymListResult{Items: gyms, Counts: counts, Page: page, PerPage: perPage, Total: total}, nil
}

// GetByID returns a gym with all child counts.
func (s *GymService) GetByID(id uint) (*models.Gym, resources.Counts, error) {
	var gym models.Gym
	if err := s.db.First(&gym, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFound("Gym not found")
		}
		return nil, nil, err
	}

	counts := resources.Counts{}
	pairs := []struct {
		model interface{}
		key   string
	}{
		{&models.Location{}, "locations_count"},
		{&models.User{}, "users_count"},
		{&models.Group{}, "groups_count"},
		{&models.Package{}, "packages_count"},
	}
	for _, p := range pairs {
		var count int64
		if err := s.db.Model(p.model).Where("gym_id = ?", id).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		counts[p.key] = count
	}

	return &gym, counts, nil
}

// Create creates a new gym. The slug must be globally unique.
func (s *GymService) Create(req *CreateGymRequest) (*models.Gym, error) {
	if taken, err := s.slugTaken(req.Slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, response.NewValidationError("slug", "The slug has already been taken.")
	}

	gym := models.Gym{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		Status:      req.Status,
	}

	if err := s.db.Create(&gym).Error; err != nil {
		return nil, err
	}

	return &gym, nil
}

// Update patches the supplied fields only. Slug uniqueness excludes the
// gym being updated.
func (s *GymService) Update(id uint, req *UpdateGymRequest) (*models.Gym, error) {
	var gym models.Gym
	if err := s.db.First(&gym, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Gym not found")
		}
		return nil, err
	}

	if req.Slug != nil {
		if taken, err := s.slugTaken(*req.Slug, id); err != nil {
			return nil, err
		} else if taken {
			return nil, response.NewValidationError("slug", "The slug has already been taken.")
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&gym).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &gym, nil
}

// Delete removes a gym and cascades: child locations, groups and
// packages go away with their pivot rows, users keep their accounts
// with gym_id nulled. Everything runs in one transaction.
func (s *GymService) Delete(id uint) error {
	var gym models.Gym
	if err := s.db.First(&gym, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Gym not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var locationIDs []uint
		if err := tx.Model(&models.Location{}).Where("gym_id = ?", id).Pluck("id", &locationIDs).Error; err != nil {
			return err
		}
		if len(locationIDs) > 0 {
			if err := tx.Where("location_id IN ?", locationIDs).Delete(&models.LocationUser{}).Error; err != nil {
				return err
			}
			if err := tx.Where("location_id IN ?", locationIDs).Delete(&models.GroupLocation{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("primary_location_id IN ?", locationIDs).
				Update("primary_location_id", nil).Error; err != nil {
				return err
			}
		}

		var groupIDs []uint
		if err := tx.Model(&models.Group{}).Where("gym_id = ?", id).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&models.GroupLocation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&models.GroupUser{}).Error; err != nil {
				return err
			}
		}

		var packageIDs []uint
		if err := tx.Model(&models.Package{}).Where("gym_id = ?", id).Pluck("id", &packageIDs).Error; err != nil {
			return err
		}
		if len(packageIDs) > 0 {
			if err := tx.Where("package_id IN ?", packageIDs).Delete(&models.PackageUser{}).Error; err != nil {
				return err
			}
		}

		for _, child := range []interface{}{&models.Location{}, &models.Group{}, &models.Package{}} {
			if err := tx.Where("gym_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).Where("gym_id = ?", id).Update("gym_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Gym{}, id).Error
	})
}

func (s *GymService) slugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Gym{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
