package spend

import (
	"context"
	"errors"
	"testing"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/snapreme.db"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Creator{},
		&models.FanProfile{},
		&models.PpmThread{},
		&models.PpmMessage{},
		&models.Gift{},
		&models.Post{},
		&models.ContentPackage{},
		&models.PaymentWebhookEvent{},
	))

	return db
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	fan     *models.User
	creator *models.User
	profile *models.Creator
	thread  *models.PpmThread
}

// newFixture seeds one creator, one fan with the given balance, and the
// thread between them.
func newFixture(t *testing.T, fanBalance int64) *fixture {
	t.Helper()
	db := newTestDB(t)

	fan := &models.User{Name: "Fan", Email: "fan@example.com", Password: "x", Role: models.ROLE_FAN}
	require.NoError(t, db.Create(fan).Error)
	creatorUser := &models.User{Name: "Creator", Email: "creator@example.com", Password: "x", Role: models.ROLE_CREATOR}
	require.NoError(t, db.Create(creatorUser).Error)
	profile := &models.Creator{UserID: creatorUser.ID, Handle: "creator"}
	require.NoError(t, db.Create(profile).Error)

	if fanBalance > 0 {
		require.NoError(t, repository.NewWalletRepository(db).Credit(fan.ID, fanBalance))
	}

	svc := NewServiceFromDB(db)
	thread, err := svc.StartThread(context.Background(), fan.ID, profile.ID)
	require.NoError(t, err)

	return &fixture{db: db, svc: svc, fan: fan, creator: creatorUser, profile: profile, thread: thread}
}

func (f *fixture) balance(t *testing.T, userID uint) int64 {
	t.Helper()
	balance, err := repository.NewWalletRepository(f.db).GetBalance(userID)
	require.NoError(t, err)
	return balance
}

func (f *fixture) messageCount(t *testing.T) int64 {
	t.Helper()
	count, err := repository.NewThreadRepository(f.db).CountMessages(f.thread.ID)
	require.NoError(t, err)
	return count
}

func TestSendMessageDebitsAndRecords(t *testing.T) {
	f := newFixture(t, 15)

	res, err := f.svc.SendMessage(context.Background(), f.fan.ID, f.thread.ID, "hey there", false)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.CoinCost)
	assert.Equal(t, int64(5), res.NewBalance)
	assert.Equal(t, "hey there", res.Message.Text)
	assert.False(t, res.Message.IsCreator)
	assert.Equal(t, int64(1), f.messageCount(t))

	thread, err := repository.NewThreadRepository(f.db).GetByID(f.thread.ID)
	require.NoError(t, err)
	assert.NotNil(t, thread.LastMessageAt)
}

func TestSendMessagePriorityCostsDouble(t *testing.T) {
	f := newFixture(t, 25)

	res, err := f.svc.SendMessage(context.Background(), f.fan.ID, f.thread.ID, "urgent", true)
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.CoinCost)
	assert.Equal(t, int64(5), res.NewBalance)
	assert.True(t, res.Message.IsPriority)
}

func TestSendMessageInsufficientFundsChangesNothing(t *testing.T) {
	f := newFixture(t, 5)

	_, err := f.svc.SendMessage(context.Background(), f.fan.ID, f.thread.ID, "hello", false)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(5), f.balance(t, f.fan.ID))
	assert.Equal(t, int64(0), f.messageCount(t))
}

func TestCreatorReplyIsFree(t *testing.T) {
	f := newFixture(t, 0)

	res, err := f.svc.SendMessage(context.Background(), f.creator.ID, f.thread.ID, "thanks for the support", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.CoinCost)
	assert.True(t, res.Message.IsCreator)
	assert.Equal(t, int64(1), f.messageCount(t))
}

func TestSendTip(t *testing.T) {
	f := newFixture(t, 300)

	res, err := f.svc.SendTip(context.Background(), f.fan.ID, f.thread.ID, 2550)
	require.NoError(t, err)
	assert.Equal(t, int64(255), res.CoinCost)
	assert.Equal(t, int64(45), res.NewBalance)
	assert.Equal(t, int64(2550), res.Message.TipCents)
	assert.Equal(t, "Tipped $25.50", res.Message.Text)
}

func TestSendTipRejectsNonPositiveAndCreator(t *testing.T) {
	f := newFixture(t, 300)

	_, err := f.svc.SendTip(context.Background(), f.fan.ID, f.thread.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.SendTip(context.Background(), f.creator.ID, f.thread.ID, 500)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, int64(300), f.balance(t, f.fan.ID))
}

func TestSendGift(t *testing.T) {
	f := newFixture(t, 100)
	require.NoError(t, f.db.Create(&models.Gift{Emoji: "🌹", Name: "Rose", CoinCost: 50, IsActive: true}).Error)

	res, err := f.svc.SendGift(context.Background(), f.fan.ID, f.thread.ID, "🌹")
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.CoinCost)
	assert.Equal(t, int64(50), res.NewBalance)
	assert.Equal(t, "🌹", res.Message.GiftEmoji)
}

func TestSendGiftUnknownOrInactive(t *testing.T) {
	f := newFixture(t, 100)
	require.NoError(t, f.db.Create(&models.Gift{Emoji: "💎", Name: "Gem", CoinCost: 75, IsActive: false}).Error)

	_, err := f.svc.SendGift(context.Background(), f.fan.ID, f.thread.ID, "💎")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.SendGift(context.Background(), f.fan.ID, f.thread.ID, "🎁")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(100), f.balance(t, f.fan.ID))
}

func TestUnauthenticatedCaller(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.svc.SendMessage(context.Background(), 0, f.thread.ID, "hi", false)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Balance(context.Background(), 0)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestOutsiderCannotPostIntoThread(t *testing.T) {
	f := newFixture(t, 100)
	outsider := &models.User{Name: "Other", Email: "other@example.com", Password: "x", Role: models.ROLE_FAN}
	require.NoError(t, f.db.Create(outsider).Error)
	require.NoError(t, repository.NewWalletRepository(f.db).Credit(outsider.ID, 100))

	_, err := f.svc.SendMessage(context.Background(), outsider.ID, f.thread.ID, "let me in", false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(100), f.balance(t, outsider.ID))
}

func TestEmptyMessageRejected(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.svc.SendMessage(context.Background(), f.fan.ID, f.thread.ID, "   ", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, int64(100), f.balance(t, f.fan.ID))
}

func TestStartThreadIsIdempotent(t *testing.T) {
	f := newFixture(t, 0)

	again, err := f.svc.StartThread(context.Background(), f.fan.ID, f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, f.thread.ID, again.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.PpmThread{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStartThreadUnknownCreator(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.StartThread(context.Background(), f.fan.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// appendFailRepo forces the message insert to fail so the surrounding
// transaction must roll the debit back.
type appendFailRepo struct {
	Repository
}

func (r appendFailRepo) WithTx(fn func(Repository) error) error {
	return r.Repository.WithTx(func(tx Repository) error {
		return fn(appendFailRepo{tx})
	})
}

func (r appendFailRepo) AppendMessage(msg *models.PpmMessage) error {
	return errors.New("append failed")
}

func TestFailedAppendRollsBackDebit(t *testing.T) {
	f := newFixture(t, 100)
	svc := NewService(appendFailRepo{NewRepository(f.db)})

	_, err := svc.SendMessage(context.Background(), f.fan.ID, f.thread.ID, "hello", false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(100), f.balance(t, f.fan.ID))
	assert.Equal(t, int64(0), f.messageCount(t))
}
