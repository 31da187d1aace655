package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/ecosenseai/ecosense/errors"
	"github.com/ecosenseai/ecosense/models"
	"github.com/ecosenseai/ecosense/server/response"
)

func (s *Server) handleGetRewards() gin.HandlerFunc {
	return func(c *gin.Context) {
		rewards, err := s.RewardService.GetActiveRewards()
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, rewards, nil)
	}
}

func (s *Server) handleRedeemReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "userID not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		rewardID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid reward id", http.StatusBadRequest))
			return
		}

		redemption, err := s.RewardService.Redeem(userID, rewardID)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "reward redeemed", http.StatusCreated, redemption, nil)
	}
}

func (s *Server) handleCreateReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateRewardRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		reward, err := s.RewardService.CreateReward(roleFromCtx(c), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "reward created", http.StatusCreated, reward, nil)
	}
}

func (s *Server) handleUpdateReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		rewardID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid reward id", http.StatusBadRequest))
			return
		}
		var req models.UpdateRewardRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		reward, err := s.RewardService.UpdateReward(roleFromCtx(c), rewardID, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "reward updated", http.StatusOK, reward, nil)
	}
}

func (s *Server) handleGetUserRedemptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "userID not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		redemptions, err := s.RewardService.GetUserRedemptions(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, redemptions, nil)
	}
}
