package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionEarned     = "earned"
	TransactionRedeemed   = "redeemed"
	TransactionBonus      = "bonus"
	TransactionAdjustment = "adjustment"
)

const (
	ReferenceWasteReport = "waste_report"
	ReferenceReward      = "reward"
)

// PointTransaction is one append-only ledger entry. The sum of amounts
// for a user always equals that user's points_balance; both are written
// together inside one database transaction and nowhere else.
type PointTransaction struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User          User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Amount        int       `json:"amount" gorm:"not null"`
	Type          string    `json:"type" gorm:"not null"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   uuid.UUID `json:"reference_id,omitempty" gorm:"type:uuid"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (t *PointTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionEarned, TransactionRedeemed, TransactionBonus, TransactionAdjustment:
		return true
	}
	return false
}

type PointsResponse struct {
	PointsBalance int                `json:"points_balance"`
	Transactions  []PointTransaction `json:"transactions"`
}
