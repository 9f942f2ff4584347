package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/huangang/boardmaster/internal/models"
	"gorm.io/gorm"
)

// UserService reads the local user projection. Accounts are provisioned by
// the identity provider, or by the demo seed.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpdateProfileRequest is a partial profile update. An explicit null on an
// optional field clears it; full_name can be changed but not cleared.
type UpdateProfileRequest struct {
	FullName  *string          `json:"full_name" binding:"omitempty,max=255"`
	AvatarURL Optional[string] `json:"avatar_url"`
	Bio       Optional[string] `json:"bio"`
	JobTitle  Optional[string] `json:"job_title"`
}

const (
	maxBioLength      = 500
	maxJobTitleLength = 100
)

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FirstOrCreate returns the user with u.Email, creating it from u when absent.
func (s *UserService) FirstOrCreate(ctx context.Context, u *models.User) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", u.Email).Attrs(*u).FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies req to the user's own profile and returns the result.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error) {
	updates := make(map[string]interface{})
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrNameRequired
		}
		updates["full_name"] = name
	}
	if req.AvatarURL.Set {
		updates["avatar_url"] = valueOrEmpty(req.AvatarURL.Value)
	}
	if req.Bio.Set {
		bio := valueOrEmpty(req.Bio.Value)
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, ErrBioTooLong
		}
		updates["bio"] = bio
	}
	if req.JobTitle.Set {
		title := valueOrEmpty(req.JobTitle.Value)
		if utf8.RuneCountInString(title) > maxJobTitleLength {
			return nil, ErrJobTitleTooLong
		}
		updates["job_title"] = title
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func valueOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
