package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCitizen    = "citizen"
	RoleAdmin      = "admin"
	RoleFieldAgent = "field_agent"
)

// User represents a user of the platform. PointsBalance is mutated only
// by the ledger repository; every other write path leaves it alone.
type User struct {
	Model
	Email          string `json:"email" gorm:"unique;not null"`
	HashedPassword string `json:"-"`
	FullName       string `json:"full_name" gorm:"not null"`
	Phone          string `json:"phone,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Role           string `json:"role" gorm:"not null;default:citizen"`
	PointsBalance  int    `json:"points_balance" gorm:"not null;default:0"`
	IsActive       bool   `json:"is_active" gorm:"not null;default:true"`
}

// Blacklist holds access tokens invalidated by logout.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"index"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleAdmin, RoleFieldAgent:
		return true
	}
	return false
}

// VerifyPassword compares the given password with the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(72, errors.New("password cant be more than 72 characters")))
	return passwordValidator.Validate(password)
}

// ValidateWhiteSpaces trims string fields tagged for conform.
func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required,min=2" conform:"trim"`
	Phone    string `json:"phone" conform:"trim"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role"`
	PointsBalance int    `json:"points_balance"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"token"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		PointsBalance: u.PointsBalance,
	}
}
