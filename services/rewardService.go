package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/mailingservices"
	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/ecosenseai/ecosense/errors"
)

type RewardService interface {
	GetActiveRewards() ([]models.Reward, error)
	Redeem(userID uuid.UUID, rewardID uuid.UUID) (*models.RewardRedemption, error)
	CreateReward(actorRole string, req *models.CreateRewardRequest) (*models.Reward, error)
	UpdateReward(actorRole string, rewardID uuid.UUID, req *models.UpdateRewardRequest) (*models.Reward, error)
	GetUserRedemptions(userID uuid.UUID) ([]models.RewardRedemption, error)
}

type rewardService struct {
	Config     *config.Config
	gormDB     *db.GormDB
	rewardRepo db.RewardRepository
	ledgerRepo db.LedgerRepository
	authRepo   db.AuthRepository
	mail       *mailingservices.Mailgun
}

func NewRewardService(gormDB *db.GormDB, rewardRepo db.RewardRepository, ledgerRepo db.LedgerRepository, authRepo db.AuthRepository, mail *mailingservices.Mailgun, conf *config.Config) RewardService {
	return &rewardService{
		Config:     conf,
		gormDB:     gormDB,
		rewardRepo: rewardRepo,
		ledgerRepo: ledgerRepo,
		authRepo:   authRepo,
		mail:       mail,
	}
}

func (s *rewardService) GetActiveRewards() ([]models.Reward, error) {
	return s.rewardRepo.GetActiveRewards()
}

// Redeem exchanges the user's points for one unit of reward stock. The
// whole protocol is one transaction: the reward row is locked first,
// the stock and balance checks run under that lock, and the stock
// decrement, ledger debit and redemption row commit together or not at
// all. Two racing redemptions of the last unit cannot both succeed.
func (s *rewardService) Redeem(userID uuid.UUID, rewardID uuid.UUID) (*models.RewardRedemption, error) {
	var redemption *models.RewardRedemption
	var reward *models.Reward

	err := s.gormDB.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		reward, err = s.rewardRepo.GetActiveRewardForUpdate(tx, rewardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.New("reward not found", 404)
			}
			return err
		}

		if reward.QuantityAvailable <= 0 {
			return errs.ErrOutOfStock
		}

		// Locks the user row and fails with InsufficientBalance before
		// any write when the balance cannot cover the cost.
		err = s.ledgerRepo.Credit(tx, userID, -reward.PointsCost,
			models.TransactionRedeemed, models.ReferenceReward, reward.ID,
			fmt.Sprintf("Redeemed: %s", reward.Title))
		if err != nil {
			return err
		}

		if err := s.rewardRepo.DecrementRewardStock(tx, reward.ID); err != nil {
			return err
		}

		redemption = &models.RewardRedemption{
			UserID:      userID,
			RewardID:    reward.ID,
			PointsSpent: reward.PointsCost,
			Status:      models.RedemptionPending,
		}
		return s.rewardRepo.CreateRedemption(tx, redemption)
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	log.Printf("user %s redeemed reward %s", userID, rewardID)
	s.sendConfirmation(userID, reward)
	return redemption, nil
}

// sendConfirmation mails the user after commit. Best effort only; a
// mail failure never affects the redemption.
func (s *rewardService) sendConfirmation(userID uuid.UUID, reward *models.Reward) {
	if s.mail == nil || s.mail.Client == nil {
		return
	}
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		log.Printf("redemption mail skipped, user lookup failed: %v", err)
		return
	}
	go func() {
		subject := "Your EcoSense reward redemption"
		body := fmt.Sprintf("Hi %s,\n\nYour redemption of %q (%d points) was received and is pending fulfilment.\n\nEcoSense AI",
			user.FullName, reward.Title, reward.PointsCost)
		if err := s.mail.SendMail(user.Email, subject, body); err != nil {
			log.Printf("failed to send redemption mail to %s: %v", user.Email, err)
		}
	}()
}

func (s *rewardService) CreateReward(actorRole string, req *models.CreateRewardRequest) (*models.Reward, error) {
	if err := Authorize(OpManageRewards, actorRole); err != nil {
		return nil, err
	}

	reward := &models.Reward{
		Title:             req.Title,
		Description:       req.Description,
		PointsCost:        req.PointsCost,
		Category:          req.Category,
		ImageURL:          req.ImageURL,
		QuantityAvailable: req.QuantityAvailable,
		IsActive:          true,
	}
	if err := s.rewardRepo.CreateReward(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *rewardService) UpdateReward(actorRole string, rewardID uuid.UUID, req *models.UpdateRewardRequest) (*models.Reward, error) {
	if err := Authorize(OpManageRewards, actorRole); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PointsCost != nil {
		if *req.PointsCost < 1 {
			return nil, errs.New("points_cost must be positive", 400)
		}
		updates["points_cost"] = *req.PointsCost
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.QuantityAvailable != nil {
		if *req.QuantityAvailable < 0 {
			return nil, errs.New("quantity_available cannot be negative", 400)
		}
		updates["quantity_available"] = *req.QuantityAvailable
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, errs.New("no fields to update", 400)
	}

	reward, err := s.rewardRepo.UpdateReward(rewardID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New("reward not found", 404)
		}
		return nil, err
	}
	return reward, nil
}

func (s *rewardService) GetUserRedemptions(userID uuid.UUID) ([]models.RewardRedemption, error) {
	return s.rewardRepo.GetUserRedemptions(userID)
}
