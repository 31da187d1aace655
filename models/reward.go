package models

import (
	"time"

	"github.com/google/uuid"
)

const RedemptionPending = "pending"

// Reward is a catalogue item citizens spend points on. Quantity is
// decremented only by the redemption protocol and never goes below zero.
type Reward struct {
	Model
	Title             string `json:"title" gorm:"not null"`
	Description       string `json:"description,omitempty"`
	PointsCost        int    `json:"points_cost" gorm:"not null"`
	Category          string `json:"category,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`
	QuantityAvailable int    `json:"quantity_available" gorm:"not null;default:0"`
	IsActive          bool   `json:"is_active" gorm:"not null;default:true"`
}

// RewardRedemption records one exchange of points for a reward unit.
// PointsSpent snapshots the reward's cost at redemption time; later
// price edits do not touch it. Rows are never updated or deleted.
type RewardRedemption struct {
	Model
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RewardID    uuid.UUID  `json:"reward_id" gorm:"type:uuid;not null"`
	Reward      Reward     `json:"-" gorm:"foreignKey:RewardID;constraint:OnDelete:CASCADE"`
	PointsSpent int        `json:"points_spent" gorm:"not null"`
	Status      string     `json:"status" gorm:"not null;default:pending"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

type CreateRewardRequest struct {
	Title             string `json:"title" binding:"required" conform:"trim"`
	Description       string `json:"description" conform:"trim"`
	PointsCost        int    `json:"points_cost" binding:"required,min=1"`
	Category          string `json:"category" conform:"trim"`
	ImageURL          string `json:"image_url"`
	QuantityAvailable int    `json:"quantity_available" binding:"min=0"`
}

// UpdateRewardRequest uses pointers so absent fields keep their current
// values, mirroring the COALESCE update of the admin dashboard.
type UpdateRewardRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	PointsCost        *int    `json:"points_cost"`
	Category          *string `json:"category"`
	ImageURL          *string `json:"image_url"`
	QuantityAvailable *int    `json:"quantity_available"`
	IsActive          *bool   `json:"is_active"`
}
