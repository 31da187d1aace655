package db

import (
	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RewardRepository interface {
	GetActiveRewards() ([]models.Reward, error)
	GetRewardByID(rewardID uuid.UUID) (*models.Reward, error)
	GetActiveRewardForUpdate(tx *gorm.DB, rewardID uuid.UUID) (*models.Reward, error)
	DecrementRewardStock(tx *gorm.DB, rewardID uuid.UUID) error
	CreateRedemption(tx *gorm.DB, redemption *models.RewardRedemption) error
	CreateReward(reward *models.Reward) error
	UpdateReward(rewardID uuid.UUID, updates map[string]interface{}) (*models.Reward, error)
	GetUserRedemptions(userID uuid.UUID) ([]models.RewardRedemption, error)
}

type rewardRepo struct {
	DB *gorm.DB
}

func NewRewardRepo(db *GormDB) RewardRepository {
	return &rewardRepo{db.DB}
}

func (r *rewardRepo) GetActiveRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.DB.Where("is_active = ?", true).
		Order("points_cost ASC").
		Find(&rewards).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing rewards")
	}
	return rewards, nil
}

func (r *rewardRepo) GetRewardByID(rewardID uuid.UUID) (*models.Reward, error) {
	var reward models.Reward
	if err := r.DB.First(&reward, "id = ?", rewardID).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// GetActiveRewardForUpdate locks the reward row for the rest of the
// caller's transaction. The stock and balance checks of the redemption
// protocol are evaluated under this lock.
func (r *rewardRepo) GetActiveRewardForUpdate(tx *gorm.DB, rewardID uuid.UUID) (*models.Reward, error) {
	var reward models.Reward
	err := LockForUpdate(tx).
		Where("id = ? AND is_active = ?", rewardID, true).
		First(&reward).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepo) DecrementRewardStock(tx *gorm.DB, rewardID uuid.UUID) error {
	err := tx.Model(&models.Reward{}).
		Where("id = ?", rewardID).
		Update("quantity_available", gorm.Expr("quantity_available - 1")).Error
	if err != nil {
		return errors.Wrap(err, "decrementing reward stock")
	}
	return nil
}

func (r *rewardRepo) CreateRedemption(tx *gorm.DB, redemption *models.RewardRedemption) error {
	if err := tx.Create(redemption).Error; err != nil {
		return errors.Wrap(err, "creating reward redemption")
	}
	return nil
}

func (r *rewardRepo) CreateReward(reward *models.Reward) error {
	if err := r.DB.Create(reward).Error; err != nil {
		return errors.Wrap(err, "creating reward")
	}
	return nil
}

func (r *rewardRepo) UpdateReward(rewardID uuid.UUID, updates map[string]interface{}) (*models.Reward, error) {
	result := r.DB.Model(&models.Reward{}).Where("id = ?", rewardID).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "updating reward")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetRewardByID(rewardID)
}

func (r *rewardRepo) GetUserRedemptions(userID uuid.UUID) ([]models.RewardRedemption, error) {
	var redemptions []models.RewardRedemption
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&redemptions).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing redemptions")
	}
	return redemptions, nil
}
