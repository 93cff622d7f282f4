package repository

import (
	"testing"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletGetOrCreateStartsAtZero(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	balance, err := repo.GetBalance(42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// Second read must reuse the same wallet row.
	w, err := repo.GetOrCreate(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), w.UserID)
	assert.Equal(t, int64(0), w.CoinBalance)
}

func TestWalletGetOrCreateKeepsExistingRowOnInsertConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewWalletRepository(db)

	require.NoError(t, db.Create(&models.Wallet{UserID: 8, CoinBalance: 40}).Error)

	// The lazy-create insert must hit the user_id unique index, do
	// nothing, and hand back the existing row instead of a duplicate-key
	// error.
	w, err := repo.GetOrCreate(8)
	require.NoError(t, err)
	assert.Equal(t, int64(40), w.CoinBalance)

	var count int64
	require.NoError(t, db.Model(&models.Wallet{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWalletDebitHappyPath(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	require.NoError(t, repo.Credit(1, 15))
	require.NoError(t, repo.Debit(1, 10))

	balance, err := repo.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}

func TestWalletDebitInsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	require.NoError(t, repo.Credit(7, 5))

	err := repo.Debit(7, 20)
	require.Error(t, err)
	assert.True(t, IsInsufficientFunds(err))

	balance, err := repo.GetBalance(7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}

func TestWalletDebitExactBalanceGoesToZero(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	require.NoError(t, repo.Credit(3, 20))
	require.NoError(t, repo.Debit(3, 20))

	balance, err := repo.GetBalance(3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// Nothing left to spend.
	assert.True(t, IsInsufficientFunds(repo.Debit(3, 1)))
}

func TestWalletDebitOnEmptyWallet(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	err := repo.Debit(99, 10)
	require.Error(t, err)
	assert.True(t, IsInsufficientFunds(err))
}

func TestWalletDebitRejectsNonPositiveAmounts(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	assert.Error(t, repo.Debit(1, 0))
	assert.Error(t, repo.Debit(1, -5))
	assert.Error(t, repo.Credit(1, 0))
}

func TestWalletRepeatedOverdrawNeverGoesNegative(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	require.NoError(t, repo.Credit(5, 25))

	succeeded := 0
	for i := 0; i < 10; i++ {
		if err := repo.Debit(5, 10); err == nil {
			succeeded++
		} else {
			require.True(t, IsInsufficientFunds(err))
		}
	}

	assert.Equal(t, 2, succeeded)
	balance, err := repo.GetBalance(5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}
