package db

import (
	"fmt"
	"net/http"

	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/ecosenseai/ecosense/errors"
)

// LedgerRepository is the sole authority over points_balance. Every
// balance change is paired, inside the caller's transaction, with
// exactly one point_transactions row carrying the same amount.
type LedgerRepository interface {
	Credit(tx *gorm.DB, userID uuid.UUID, amount int, txnType, referenceType string, referenceID uuid.UUID, description string) error
	GetUserTransactions(userID uuid.UUID, limit int) ([]models.PointTransaction, error)
	HasBonusForReport(tx *gorm.DB, userID, reportID uuid.UUID) (bool, error)
	SumTransactionAmounts(userID uuid.UUID) (int, error)
}

type ledgerRepo struct {
	DB *gorm.DB
}

func NewLedgerRepo(db *GormDB) LedgerRepository {
	return &ledgerRepo{db.DB}
}

// Credit applies amount to the user's balance and appends the matching
// ledger entry. It must run inside a transaction owned by the caller;
// the user row is locked for the remainder of that transaction, so a
// debit's balance check cannot race another debit. Negative amounts
// that would take the balance below zero fail with InsufficientBalance.
func (r *ledgerRepo) Credit(tx *gorm.DB, userID uuid.UUID, amount int, txnType, referenceType string, referenceID uuid.UUID, description string) error {
	if amount == 0 {
		return errs.New("credit amount cannot be zero", http.StatusBadRequest)
	}
	if !models.IsValidTransactionType(txnType) {
		return errs.New(fmt.Sprintf("unknown transaction type: %s", txnType), http.StatusBadRequest)
	}

	var user models.User
	if err := LockForUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New("user not found", http.StatusNotFound)
		}
		return errors.Wrap(err, "locking user row")
	}

	if amount < 0 && user.PointsBalance+amount < 0 {
		return errs.ErrInsufficientBalance
	}

	err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("points_balance", gorm.Expr("points_balance + ?", amount)).Error
	if err != nil {
		return errors.Wrap(err, "updating points balance")
	}

	txn := models.PointTransaction{
		UserID:        userID,
		Amount:        amount,
		Type:          txnType,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Description:   description,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return errors.Wrap(err, "creating point transaction")
	}

	return nil
}

func (r *ledgerRepo) GetUserTransactions(userID uuid.UUID, limit int) ([]models.PointTransaction, error) {
	var transactions []models.PointTransaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetching point transactions")
	}
	return transactions, nil
}

// HasBonusForReport reports whether a bonus has already been credited
// for the given report. Checked inside the status-update transaction so
// re-entering verified never credits twice.
func (r *ledgerRepo) HasBonusForReport(tx *gorm.DB, userID, reportID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.PointTransaction{}).
		Where("user_id = ? AND type = ? AND reference_type = ? AND reference_id = ?",
			userID, models.TransactionBonus, models.ReferenceWasteReport, reportID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking for existing bonus")
	}
	return count > 0, nil
}

// SumTransactionAmounts reconciles the ledger against the balance.
func (r *ledgerRepo) SumTransactionAmounts(userID uuid.UUID) (int, error) {
	var total int
	err := r.DB.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "summing transaction amounts")
	}
	return total, nil
}
