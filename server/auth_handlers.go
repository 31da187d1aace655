package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	errs "github.com/ecosenseai/ecosense/errors"
	"github.com/ecosenseai/ecosense/models"
	"github.com/ecosenseai/ecosense/server/response"
)

func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		if db, err := s.DB.DB.DB(); err != nil || db.Ping() != nil {
			status = "degraded"
		}
		response.JSON(c, "", http.StatusOK, gin.H{
			"status":  status,
			"service": "ecosense-api",
			"time":    time.Now().UTC(),
		}, nil)
	}
}

func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		loginResponse, err := s.AuthService.SignupUser(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, loginResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		loginResponse, err := s.AuthService.LoginUser(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userCtx, exists := c.Get("user")
		if !exists {
			response.JSON(c, "user not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		user, ok := userCtx.(*models.User)
		if !ok {
			response.JSON(c, "invalid user type in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "user profile retrieved successfully", http.StatusOK, user.ToResponse(), nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenCtx, exists := c.Get("access_token")
		if !exists {
			response.JSON(c, "access token not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		accessToken, ok := tokenCtx.(string)
		if !ok {
			response.JSON(c, "access token is not a string", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if err := s.AuthService.LogoutUser(accessToken); err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}
