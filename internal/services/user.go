package services

import (
	"errors"
	"time"

	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/utils"
	"github.com/gymsuite/backend/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	GymID   *uint  `form:"gym_id" binding:"omitempty,min=1"`
	Role    string `form:"role" binding:"omitempty,oneof=super_admin gym_admin trainer trainee"`
}

type UserListResult struct {
	Items   []models.User
	Page    int
	PerPage int
	Total   int64
}

type CreateUserRequest struct {
	FirstName         string  `json:"first_name" binding:"required,max=255"`
	LastName          string  `json:"last_name" binding:"required,max=255"`
	Email             string  `json:"email" binding:"required,email,max=255"`
	Password          string  `json:"password" binding:"required,min=8"`
	Role              string  `json:"role" binding:"required,oneof=super_admin gym_admin trainer trainee"`
	GymID             *uint   `json:"gym_id" binding:"omitempty,min=1"`
	PrimaryLocationID *uint   `json:"primary_location_id" binding:"omitempty,min=1"`
	Mobile            string  `json:"mobile" binding:"omitempty,max=20"`
	Phone             string  `json:"phone" binding:"omitempty,max=20"`
	Birthdate         *string `json:"birthdate" binding:"omitempty,datetime=2006-01-02"`
	Gender            string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Status            string  `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	LocationIDs       *[]uint `json:"location_ids"`
}

type UpdateUserRequest struct {
	FirstName         *string `json:"first_name" binding:"omitempty,max=255"`
	LastName          *string `json:"last_name" binding:"omitempty,max=255"`
	Email             *string `json:"email" binding:"omitempty,email,max=255"`
	Password          *string `json:"password" binding:"omitempty,min=8"`
	Role              *string `json:"role" binding:"omitempty,oneof=super_admin gym_admin trainer trainee"`
	GymID             *uint   `json:"gym_id" binding:"omitempty,min=1"`
	PrimaryLocationID *uint   `json:"primary_location_id" binding:"omitempty,min=1"`
	Mobile            *string `json:"mobile" binding:"omitempty,max=20"`
	Phone             *string `json:"phone" binding:"omitempty,max=20"`
	Birthdate         *string `json:"birthdate" binding:"omitempty,datetime=2006-01-02"`
	Gender            *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Status            *string `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	LocationIDs       *[]uint `json:"location_ids"`
}

func (s *UserService) List(req *UserListRequest) (*UserListResult, error) {
	page, perPage := normalizePage(req.Page, req.PerPage)

	query := s.db.Model(&models.User{})
	if req.GymID != nil {
		query = query.Where("gym_id = ?", *req.GymID)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	offset := (page - 1) * perPage
	err := query.Preload("Gym").Preload("PrimaryLocation").
		Offset(offset).Limit(perPage).Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}

	return &UserListResult{Items: users, Page: page, PerPage: perPage, Total: total}, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Gym").Preload("PrimaryLocation").Preload("Locations").
		Preload("Subscriptions").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	if taken, err := s.emailTaken(req.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, response.NewValidationError("email", "The email has already been taken.")
	}
	if req.GymID != nil {
		if err := gymExists(s.db, *req.GymID); err != nil {
			return nil, err
		}
	}
	if req.PrimaryLocationID != nil {
		if err := locationsExist(s.db, []uint{*req.PrimaryLocationID}); err != nil {
			return nil, response.NewValidationError("primary_location_id", "The selected primary location id is invalid.")
		}
	}
	if req.LocationIDs != nil {
		if err := locationsExist(s.db, *req.LocationIDs); err != nil {
			return nil, err
		}
	}

	birthdate, err := parseDate(req.Birthdate)
	if err != nil {
		return nil, response.NewValidationError("birthdate", "The birthdate is not a valid date.")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	user := models.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Password:          hashed,
		Role:              req.Role,
		GymID:             req.GymID,
		PrimaryLocationID: req.PrimaryLocationID,
		Mobile:            req.Mobile,
		Phone:             req.Phone,
		Birthdate:         birthdate,
		Gender:            req.Gender,
		Status:            status,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if req.LocationIDs != nil {
			return syncUserLocations(tx, &user, *req.LocationIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(user.ID)
}

func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	if req.Email != nil {
		if taken, err := s.emailTaken(*req.Email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, response.NewValidationError("email", "The email has already been taken.")
		}
	}
	if req.GymID != nil {
		if err := gymExists(s.db, *req.GymID); err != nil {
			return nil, err
		}
	}
	if req.PrimaryLocationID != nil {
		if err := locationsExist(s.db, []uint{*req.PrimaryLocationID}); err != nil {
			return nil, response.NewValidationError("primary_location_id", "The selected primary location id is invalid.")
		}
	}
	if req.LocationIDs != nil {
		if err := locationsExist(s.db, *req.LocationIDs); err != nil {
			return nil, err
		}
	}

	birthdate, err := parseDate(req.Birthdate)
	if err != nil {
		return nil, response.NewValidationError("birthdate", "The birthdate is not a valid date.")
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.GymID != nil {
		updates["gym_id"] = *req.GymID
	}
	if req.PrimaryLocationID != nil {
		updates["primary_location_id"] = *req.PrimaryLocationID
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if birthdate != nil {
		updates["birthdate"] = *birthdate
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.LocationIDs != nil {
			return syncUserLocations(tx, &user, *req.LocationIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Delete removes a user together with location assignments, group
// memberships, subscriptions and any outstanding tokens.
func (s *UserService) Delete(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("User not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.LocationUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.GroupUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PackageUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.VerificationToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", user.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// HasActivePackage reports whether the user holds a subscription that
// is active and unexpired at the given time.
func (s *UserService) HasActivePackage(userID uint, now time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.PackageUser{}).
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, models.SubscriptionStatusActive, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserService) emailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.User{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func syncUserLocations(tx *gorm.DB, user *models.User, locationIDs []uint) error {
	if len(locationIDs) == 0 {
		return tx.Model(user).Association("Locations").Clear()
	}
	locations := make([]models.Location, len(locationIDs))
	for i, id := range locationIDs {
		locations[i] = models.Location{ID: id}
	}
	return tx.Model(user).Association("Locations").Replace(locations)
}
