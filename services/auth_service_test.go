package services

import (
	"testing"

	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ecosenseai/ecosense/errors"
)

func newAuthService(gormDB *db.GormDB) AuthService {
	conf := testConfig()
	conf.JWTSecret = "test-secret"
	return NewAuthService(db.NewAuthRepo(gormDB), conf)
}

func TestSignupAndLogin(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newAuthService(gormDB)

	signup, err := svc.SignupUser(&models.SignupRequest{
		Email:    "wanjiku@example.com",
		Password: "secret123",
		FullName: "Wanjiku Kamau",
		Phone:    "+254711111111",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, signup.AccessToken)
	assert.Equal(t, models.RoleCitizen, signup.User.Role)

	login, err := svc.LoginUser(&models.LoginRequest{
		Email:    "wanjiku@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newAuthService(gormDB)

	req := &models.SignupRequest{
		Email:    "dup@example.com",
		Password: "secret123",
		FullName: "First User",
	}
	_, err := svc.SignupUser(req)
	require.NoError(t, err)

	_, err = svc.SignupUser(req)
	require.Error(t, err)
	var domainErr *errs.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.Status)
}

func TestSignupShortPassword(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newAuthService(gormDB)

	_, err := svc.SignupUser(&models.SignupRequest{
		Email:    "short@example.com",
		Password: "abc",
		FullName: "Short Password",
	})
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newAuthService(gormDB)

	_, err := svc.SignupUser(&models.SignupRequest{
		Email:    "wrong@example.com",
		Password: "secret123",
		FullName: "Wrong Password",
	})
	require.NoError(t, err)

	_, err = svc.LoginUser(&models.LoginRequest{
		Email:    "wrong@example.com",
		Password: "not-the-password",
	})
	require.Error(t, err)
	var domainErr *errs.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 401, domainErr.Status)

	_, err = svc.LoginUser(&models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
}

func TestLoginDeactivatedUser(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newAuthService(gormDB)
	authRepo := db.NewAuthRepo(gormDB)

	signup, err := svc.SignupUser(&models.SignupRequest{
		Email:    "gone@example.com",
		Password: "secret123",
		FullName: "Deactivated User",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, gormDB.DB.First(&user, "email = ?", signup.User.Email).Error)
	require.NoError(t, authRepo.DeactivateUser(user.ID))

	_, err = svc.LoginUser(&models.LoginRequest{
		Email:    "gone@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, errs.InActiveUserError)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newAuthService(gormDB)
	authRepo := db.NewAuthRepo(gormDB)

	login, err := svc.SignupUser(&models.SignupRequest{
		Email:    "bye@example.com",
		Password: "secret123",
		FullName: "Leaving User",
	})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutUser(login.AccessToken))
	assert.True(t, authRepo.IsTokenInBlacklist(login.AccessToken))
}
