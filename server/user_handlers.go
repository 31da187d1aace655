package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/ecosenseai/ecosense/errors"
	"github.com/ecosenseai/ecosense/models"
	"github.com/ecosenseai/ecosense/server/response"
	"github.com/ecosenseai/ecosense/services"
)

// handleGetUserPoints returns the caller's balance alongside their most
// recent ledger entries.
func (s *Server) handleGetUserPoints() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "userID not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit < 1 || limit > 200 {
			limit = 50
		}
		transactions, err := s.LedgerRepository.GetUserTransactions(userID, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, models.PointsResponse{
			PointsBalance: user.PointsBalance,
			Transactions:  transactions,
		}, nil)
	}
}

func (s *Server) handleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.Authorize(services.OpManageUsers, roleFromCtx(c)); err != nil {
			respondError(c, err)
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}

		users, total, err := s.AuthRepository.ListUsers(page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		userResponses := make([]models.UserResponse, 0, len(users))
		for i := range users {
			userResponses = append(userResponses, users[i].ToResponse())
		}
		response.JSON(c, "", http.StatusOK, gin.H{
			"users": userResponses,
			"total": total,
			"page":  page,
			"limit": limit,
		}, nil)
	}
}

func (s *Server) handleUpdateUserRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.Authorize(services.OpManageUsers, roleFromCtx(c)); err != nil {
			respondError(c, err)
			return
		}

		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid user id", http.StatusBadRequest))
			return
		}

		var req models.UpdateRoleRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		if !models.IsValidRole(req.Role) {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid role", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.UpdateUserRole(userID, req.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "user role updated", http.StatusOK, user.ToResponse(), nil)
	}
}

func (s *Server) handleDeactivateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.Authorize(services.OpManageUsers, roleFromCtx(c)); err != nil {
			respondError(c, err)
			return
		}

		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid user id", http.StatusBadRequest))
			return
		}

		if err := s.AuthRepository.DeactivateUser(userID); err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "user deactivated", http.StatusOK, nil, nil)
	}
}
