package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	errs "github.com/ecosenseai/ecosense/errors"
	jwtPackage "github.com/ecosenseai/ecosense/services/jwt"
)

type AuthService interface {
	SignupUser(req *models.SignupRequest) (*models.LoginResponse, error)
	LoginUser(req *models.LoginRequest) (*models.LoginResponse, error)
	LogoutUser(accessToken string) error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(req *models.SignupRequest) (*models.LoginResponse, error) {
	if err := models.ValidateWhiteSpaces(req); err != nil {
		return nil, errs.New(err.Error(), http.StatusBadRequest)
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		return nil, errs.New(err.Error(), http.StatusBadRequest)
	}

	exists, err := s.authRepo.IsEmailExist(req.Email)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}
	if exists {
		return nil, errs.New("email already registered", http.StatusConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}

	user := &models.User{
		Email:          req.Email,
		HashedPassword: string(hash),
		FullName:       req.FullName,
		Phone:          req.Phone,
		Role:           models.RoleCitizen,
		IsActive:       true,
	}
	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}

	token, err := jwtPackage.GenerateToken(user.ID, user.Email, user.Role, s.Config.JWTSecret)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}

	log.Printf("user registered: %s", user.Email)
	return &models.LoginResponse{User: user.ToResponse(), AccessToken: token}, nil
}

func (s *authService) LoginUser(req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := models.ValidateWhiteSpaces(req); err != nil {
		return nil, errs.New(err.Error(), http.StatusBadRequest)
	}

	user, err := s.authRepo.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New("invalid credentials", http.StatusUnauthorized)
		}
		return nil, errs.ErrInternalServerError
	}
	if !user.IsActive {
		return nil, errs.InActiveUserError
	}
	if err := user.VerifyPassword(req.Password); err != nil {
		return nil, errs.New("invalid credentials", http.StatusUnauthorized)
	}

	token, err := jwtPackage.GenerateToken(user.ID, user.Email, user.Role, s.Config.JWTSecret)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}

	log.Printf("user logged in: %s", user.Email)
	return &models.LoginResponse{User: user.ToResponse(), AccessToken: token}, nil
}

func (s *authService) LogoutUser(accessToken string) error {
	blacklist := &models.Blacklist{Token: accessToken}
	if err := s.authRepo.AddToBlackList(blacklist); err != nil {
		return errs.ErrInternalServerError
	}
	return nil
}
