package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/resources"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type PackageService struct {
	db *gorm.DB
}

func NewPackageService(db *gorm.DB) *PackageService {
	return &PackageService{db: db}
}

type PackageListRequest struct {
	Page    int   `form:"page" binding:"omitempty,min=1"`
	PerPage int   `form:"per_page" binding:"omitempty,min=1,max=100"`
	GymID   *uint `form:"gym_id" binding:"omitempty,min=1"`
}

type PackageListResult struct {
	Items   []models.Package
	Counts  []resources.Counts
	Page    int
	PerPage int
	Total   int64
}

type CreatePackageRequest struct {
	GymID            uint     `json:"gym_id" binding:"required,min=1"`
	Name             string   `json:"name" binding:"required,max=255"`
	Description      string   `json:"description"`
	Price            *float64 `json:"price" binding:"required,min=0"`
	DurationDays     int      `json:"duration_days" binding:"required,min=1"`
	Benefits         []string `json:"benefits"`
	GroupAccessLimit *int     `json:"group_access_limit" binding:"omitempty,min=0"`
	UnlimitedAccess  bool     `json:"unlimited_access"`
	Status           string   `json:"status" binding:"required,oneof=active inactive"`
}

type UpdatePackageRequest struct {
	Name             *string   `json:"name" binding:"omitempty,max=255"`
	Description      *string   `json:"description"`
	Price            *float64  `json:"price" binding:"omitempty,min=0"`
	DurationDays     *int      `json:"duration_days" binding:"omitempty,min=1"`
	Benefits         *[]string `json:"benefits"`
	GroupAccessLimit *int      `json:"group_access_limit" binding:"omitempty,min=0"`
	UnlimitedAccess  *bool     `json:"unlimited_access"`
	Status           *string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

type PurchaseRequest struct {
	UserID        uint    `json:"user_id" binding:"required,min=1"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,max=50"`
	StartsAt      *string `json:"starts_at" binding:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes"`
}

func (s *PackageService) List(req *PackageListRequest) (*PackageListResult, error) {
	page, perPage := normalizePage(req.Page, req.PerPage)

	query := s.db.Model(&models.Package{})
	if req.GymID != nil {
		query = query.Where("gym_id = ?", *req.GymID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var packages []models.Package
	offset := (page - 1) * perPage
	if err := query.Preload("Gym").Offset(offset).Limit(perPage).Order("id").Find(&packages).Error; err != nil {
		return nil, err
	}

	counts := make([]resources.Counts, len(packages))
	ids := make([]uint, len(packages))
	for i, p := range packages {
		ids[i] = p.ID
		counts[i] = resources.Counts{}
	}
	if len(ids) > 0 {
		subCounts, err := countByParent(s.db, &models.PackageUser{}, "package_id", ids)
		if err != nil {
			return nil, err
		}
		activeCounts, err := countPivot(s.db, "package_user", "package_id", ids,
			"status = ? AND expires_at > ?", models.SubscriptionStatusActive, time.Now())
		if err != nil {
			return nil, err
		}
		for i, p := range packages {
			counts[i]["users_count"] = subCounts[p.ID]
			counts[i]["active_subscriptions_count"] = activeCounts[p.ID]
		}
	}

	return &PackageListResult{Items: packages, Counts: counts, Page: page, PerPage: perPage, Total: total}, nil
}

func (s *PackageService) GetByID(id uint) (*models.Package, resources.Counts, error) {
	var pkg models.Package
	if err := s.db.Preload("Gym").First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFound("Package not found")
		}
		return nil, nil, err
	}

	counts := resources.Counts{}
	subCounts, err := countByParent(s.db, &models.PackageUser{}, "package_id", []uint{id})
	if err != nil {
		return nil, nil, err
	}
	activeCounts, err := countPivot(s.db, "package_user", "package_id", []uint{id},
		"status = ? AND expires_at > ?", models.SubscriptionStatusActive, time.Now())
	if err != nil {
		return nil, nil, err
	}
	counts["users_count"] = subCounts[id]
	counts["active_subscriptions_count"] = activeCounts[id]

	return &pkg, counts, nil
}

func (s *PackageService) Create(req *CreatePackageRequest) (*models.Package, error) {
	if err := gymExists(s.db, req.GymID); err != nil {
		return nil, err
	}

	pkg := models.Package{
		GymID:            req.GymID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            *req.Price,
		DurationDays:     req.DurationDays,
		GroupAccessLimit: req.GroupAccessLimit,
		UnlimitedAccess:  req.UnlimitedAccess,
		Status:           req.Status,
	}
	if err := pkg.SetBenefits(req.Benefits); err != nil {
		return nil, err
	}

	if err := s.db.Create(&pkg).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Gym").First(&pkg, pkg.ID).Error; err != nil {
		return nil, err
	}

	return &pkg, nil
}

func (s *PackageService) Update(id uint, req *UpdatePackageRequest) (*models.Package, error) {
	var pkg models.Package
	if err := s.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Package not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.Benefits != nil {
		encoded := models.Package{}
		if err := encoded.SetBenefits(*req.Benefits); err != nil {
			return nil, err
		}
		updates["benefits"] = encoded.Benefits
	}
	if req.GroupAccessLimit != nil {
		updates["group_access_limit"] = *req.GroupAccessLimit
	}
	if req.UnlimitedAccess != nil {
		updates["unlimited_access"] = *req.UnlimitedAccess
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&pkg).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Preload("Gym").First(&pkg, id).Error; err != nil {
		return nil, err
	}

	return &pkg, nil
}

func (s *PackageService) Delete(id uint) error {
	var pkg models.Package
	if err := s.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Package not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&models.PackageUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Package{}, id).Error
	})
}

// Purchase creates a subscription for a user. The expiry is the start
// plus the package duration, and each purchase gets its own
// transaction id.
func (s *PackageService) Purchase(packageID uint, req *PurchaseRequest) (*models.PackageUser, error) {
	var pkg models.Package
	if err := s.db.First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Package not found")
		}
		return nil, err
	}
	if pkg.Status != models.PackageStatusActive {
		return nil, response.NewValidationError("package_id", "The package is not available for purchase.")
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	now := time.Now()
	startsAt := now
	if parsed, err := parseDate(req.StartsAt); err != nil {
		return nil, response.NewValidationError("starts_at", "The starts at is not a valid date.")
	} else if parsed != nil {
		startsAt = *parsed
	}
	expiresAt := startsAt.AddDate(0, 0, pkg.DurationDays)

	subscription := models.PackageUser{
		UserID:        req.UserID,
		PackageID:     packageID,
		PricePaid:     pkg.Price,
		PurchasedAt:   now,
		StartsAt:      &startsAt,
		ExpiresAt:     &expiresAt,
		Status:        models.SubscriptionStatusActive,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		TransactionID: uuid.NewString(),
		Notes:         req.Notes,
	}

	if err := s.db.Create(&subscription).Error; err != nil {
		return nil, err
	}

	return &subscription, nil
}
