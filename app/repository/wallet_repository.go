package repository

import (
	"errors"
	"fmt"

	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
)

// walletRepository implements the WalletRepository interface
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository instance
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// GetOrCreate returns the user's wallet, creating an empty one on first read
func (r *walletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	return models.GetOrCreateWallet(r.db, userID)
}

// GetBalance returns the current coin balance, lazily creating the wallet
func (r *walletRepository) GetBalance(userID uint) (int64, error) {
	w, err := r.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}
	return w.CoinBalance, nil
}

// Debit subtracts amount from the wallet balance. The balance check and
// the write happen in one conditional UPDATE so two concurrent debits
// can never take the balance below zero; the losing update matches no
// row and is rejected with ErrInsufficientFunds.
func (r *walletRepository) Debit(userID uint, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	// Make sure the wallet row exists so a zero-balance user gets
	// ErrInsufficientFunds instead of a silent no-op.
	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}

	tx := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND coin_balance >= ?", userID, amount).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", amount))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// Credit adds amount to the wallet balance, creating the wallet if needed
func (r *walletRepository) Credit(userID uint, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}

	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", amount)).Error
}

// IsInsufficientFunds reports whether err is a rejected overdraw.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}
