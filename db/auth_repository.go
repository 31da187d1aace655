package db

import (
	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/ecosenseai/ecosense/errors"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) (bool, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(userID uuid.UUID) (*models.User, error)
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	UpdateUserRole(userID uuid.UUID, role string) (*models.User, error)
	DeactivateUser(userID uuid.UUID) error
	ListUsers(page, limit int) ([]models.User, int64, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "creating user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) (bool, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking email existence")
	}
	return count > 0, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := a.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.InActiveUserError
	}
	return &user, nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count)
	return count > 0
}

func (a *authRepo) UpdateUserRole(userID uuid.UUID, role string) (*models.User, error) {
	var user models.User
	if err := a.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if err := a.DB.Model(&user).Update("role", role).Error; err != nil {
		return nil, errors.Wrap(err, "updating user role")
	}
	return &user, nil
}

func (a *authRepo) DeactivateUser(userID uuid.UUID) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false)
	if result.Error != nil {
		return errors.Wrap(result.Error, "deactivating user")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) ListUsers(page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := a.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "counting users")
	}

	var users []models.User
	err := a.DB.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "listing users")
	}
	return users, total, nil
}
