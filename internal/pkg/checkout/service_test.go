package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/decoderzhub/snapreme/app/models"
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

// fakeGateway records every call and returns canned identifiers.
type fakeGateway struct {
	sessions      []SessionInput
	customers     int
	accounts      int
	accountLinks  int
	prices        []RecurringPriceInput
	failWith      error
	nextAccountID string
}

func (g *fakeGateway) CreateSession(ctx context.Context, in SessionInput) (*Session, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.sessions = append(g.sessions, in)
	return &Session{ID: fmt.Sprintf("cs_test_%d", len(g.sessions)), URL: "https://checkout.example.com/pay"}, nil
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	if g.failWith != nil {
		return "", g.failWith
	}
	g.customers++
	return fmt.Sprintf("cus_test_%d", g.customers), nil
}

func (g *fakeGateway) CreateConnectAccount(ctx context.Context, email string) (string, error) {
	if g.failWith != nil {
		return "", g.failWith
	}
	g.accounts++
	if g.nextAccountID != "" {
		return g.nextAccountID, nil
	}
	return fmt.Sprintf("acct_test_%d", g.accounts), nil
}

func (g *fakeGateway) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	if g.failWith != nil {
		return "", g.failWith
	}
	g.accountLinks++
	return "https://connect.example.com/onboard/" + accountID, nil
}

func (g *fakeGateway) CreateRecurringPrice(ctx context.Context, in RecurringPriceInput) (*RecurringPrice, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.prices = append(g.prices, in)
	return &RecurringPrice{ProductID: "prod_test_1", PriceID: fmt.Sprintf("price_test_%d", len(g.prices))}, nil
}

type checkoutFixture struct {
	db      *gorm.DB
	gw      *fakeGateway
	svc     *Service
	fan     *models.User
	creator *models.Creator
}

func newCheckoutFixture(t *testing.T, payoutsReady bool) *checkoutFixture {
	t.Helper()
	db := newTestDB(t)

	fan := &models.User{Name: "Fan", Email: "fan@example.com", Password: "x", Role: models.ROLE_FAN}
	require.NoError(t, db.Create(fan).Error)
	creatorUser := &models.User{Name: "Creator", Email: "creator@example.com", Password: "x", Role: models.ROLE_CREATOR}
	require.NoError(t, db.Create(creatorUser).Error)

	creator := &models.Creator{UserID: creatorUser.ID, Handle: "stella"}
	if payoutsReady {
		creator.StripeConnectID = "acct_ready"
	}
	require.NoError(t, db.Create(creator).Error)

	gw := &fakeGateway{}
	return &checkoutFixture{
		db:      db,
		gw:      gw,
		svc:     NewService(NewRepository(db), gw, "https://snapreme.test"),
		fan:     fan,
		creator: creator,
	}
}

func TestSubscriptionCheckoutRequiresPayoutAccount(t *testing.T) {
	f := newCheckoutFixture(t, false)

	_, err := f.svc.CreateSubscriptionCheckout(context.Background(), f.fan.ID, f.creator.ID)
	assert.ErrorIs(t, err, ErrPayoutNotConfigured)
	assert.Empty(t, f.gw.sessions)
	assert.Zero(t, f.gw.customers)
}

func TestSubscriptionCheckoutDefaultPrice(t *testing.T) {
	f := newCheckoutFixture(t, true)

	session, err := f.svc.CreateSubscriptionCheckout(context.Background(), f.fan.ID, f.creator.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.URL)

	require.Len(t, f.gw.sessions, 1)
	in := f.gw.sessions[0]
	assert.Equal(t, "subscription", in.Mode)
	assert.Equal(t, int64(999), in.UnitAmountCents)
	assert.Equal(t, float64(10), in.ApplicationFeePercent)
	assert.Equal(t, "acct_ready", in.DestinationAccountID)
	assert.Equal(t, KindSubscription, in.Metadata["kind"])
	assert.Equal(t, "https://snapreme.test/stella?unlocked=true", in.SuccessURL)
	assert.Equal(t, "https://snapreme.test/stella", in.CancelURL)
}

func TestSubscriptionCheckoutUsesStoredPrice(t *testing.T) {
	f := newCheckoutFixture(t, true)
	f.creator.StripePriceID = "price_abc"
	require.NoError(t, f.db.Save(f.creator).Error)

	_, err := f.svc.CreateSubscriptionCheckout(context.Background(), f.fan.ID, f.creator.ID)
	require.NoError(t, err)

	in := f.gw.sessions[0]
	assert.Equal(t, "price_abc", in.RecurringPriceID)
	assert.Zero(t, in.UnitAmountCents)
}

func TestPostUnlockCheckoutFeeSplit(t *testing.T) {
	f := newCheckoutFixture(t, true)
	post := &models.Post{CreatorID: f.creator.ID, Title: "Backstage", IsPremium: true, UnlockPriceCents: 499}
	require.NoError(t, f.db.Create(post).Error)

	_, err := f.svc.CreatePostUnlockCheckout(context.Background(), f.fan.ID, post.ID)
	require.NoError(t, err)

	require.Len(t, f.gw.sessions, 1)
	in := f.gw.sessions[0]
	assert.Equal(t, "payment", in.Mode)
	assert.Equal(t, int64(499), in.UnitAmountCents)
	assert.Equal(t, int64(49), in.ApplicationFeeCents)
	assert.Equal(t, "acct_ready", in.DestinationAccountID)
	assert.Equal(t, KindPostUnlock, in.Metadata["kind"])
	assert.Equal(t, "https://snapreme.test/stella?unlocked_post="+post.UUID, in.SuccessURL)
}

func TestPackageCheckout(t *testing.T) {
	f := newCheckoutFixture(t, true)
	pkg := &models.ContentPackage{CreatorID: f.creator.ID, Title: "Summer bundle", PriceCents: 2499}
	require.NoError(t, f.db.Create(pkg).Error)

	_, err := f.svc.CreatePackageCheckout(context.Background(), f.fan.ID, pkg.ID)
	require.NoError(t, err)

	in := f.gw.sessions[0]
	assert.Equal(t, int64(2499), in.UnitAmountCents)
	assert.Equal(t, int64(249), in.ApplicationFeeCents)
	assert.Equal(t, KindPackage, in.Metadata["kind"])
}

func TestCoinCheckoutPlatformOwned(t *testing.T) {
	f := newCheckoutFixture(t, false)

	_, err := f.svc.CreateCoinCheckout(context.Background(), f.fan.ID, "coins_500")
	require.NoError(t, err)

	in := f.gw.sessions[0]
	assert.Equal(t, int64(3999), in.UnitAmountCents)
	assert.Empty(t, in.DestinationAccountID)
	assert.Zero(t, in.ApplicationFeeCents)
	assert.Equal(t, KindCoinTopup, in.Metadata["kind"])
	assert.Equal(t, "500", in.Metadata["coins"])
	assert.Equal(t, "https://snapreme.test/coins/success", in.SuccessURL)
	assert.Equal(t, "https://snapreme.test/coins", in.CancelURL)
}

func TestCoinCheckoutUnknownTier(t *testing.T) {
	f := newCheckoutFixture(t, false)

	_, err := f.svc.CreateCoinCheckout(context.Background(), f.fan.ID, "coins_9000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.gw.sessions)
}

func TestCustomerCreatedOnceAndCached(t *testing.T) {
	f := newCheckoutFixture(t, false)

	_, err := f.svc.CreateCoinCheckout(context.Background(), f.fan.ID, "coins_100")
	require.NoError(t, err)
	_, err = f.svc.CreateCoinCheckout(context.Background(), f.fan.ID, "coins_1000")
	require.NoError(t, err)

	assert.Equal(t, 1, f.gw.customers)

	var profile models.FanProfile
	require.NoError(t, f.db.Where("user_id = ?", f.fan.ID).First(&profile).Error)
	assert.Equal(t, "cus_test_1", profile.StripeCustomerID)
}

func TestCreatorOnboardingCreatesAccountOnce(t *testing.T) {
	f := newCheckoutFixture(t, false)
	f.gw.nextAccountID = "acct_new"

	link, err := f.svc.CreateCreatorOnboarding(context.Background(), f.creator.UserID)
	require.NoError(t, err)
	assert.Equal(t, "https://connect.example.com/onboard/acct_new", link)

	var stored models.Creator
	require.NoError(t, f.db.First(&stored, f.creator.ID).Error)
	assert.Equal(t, "acct_new", stored.StripeConnectID)

	// Resuming onboarding reuses the stored account.
	_, err = f.svc.CreateCreatorOnboarding(context.Background(), f.creator.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.gw.accounts)
	assert.Equal(t, 2, f.gw.accountLinks)
}

func TestCreateCreatorProductPrice(t *testing.T) {
	f := newCheckoutFixture(t, true)

	creator, err := f.svc.CreateCreatorProductPrice(context.Background(), f.creator.UserID, 1499)
	require.NoError(t, err)
	assert.Equal(t, "prod_test_1", creator.StripeProductID)
	assert.Equal(t, "price_test_1", creator.StripePriceID)
	assert.Equal(t, int64(1499), creator.SubscriptionPriceCents)

	require.Len(t, f.gw.prices, 1)
	assert.Equal(t, "acct_ready", f.gw.prices[0].AccountID)
	assert.Equal(t, int64(1499), f.gw.prices[0].UnitAmountCents)
}

func TestCreateCreatorProductPriceRequiresPayouts(t *testing.T) {
	f := newCheckoutFixture(t, false)

	_, err := f.svc.CreateCreatorProductPrice(context.Background(), f.creator.UserID, 1499)
	assert.ErrorIs(t, err, ErrPayoutNotConfigured)
}

func TestUnauthenticatedCheckout(t *testing.T) {
	f := newCheckoutFixture(t, true)

	_, err := f.svc.CreateSubscriptionCheckout(context.Background(), 0, f.creator.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.CreateCoinCheckout(context.Background(), 0, "coins_100")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGatewayFailurePreservesMessage(t *testing.T) {
	f := newCheckoutFixture(t, true)
	f.gw.failWith = errors.New("card network unavailable")

	_, err := f.svc.CreateSubscriptionCheckout(context.Background(), f.fan.ID, f.creator.ID)
	require.Error(t, err)
	assert.True(t, IsGatewayError(err))
	assert.Contains(t, err.Error(), "card network unavailable")
}

func TestUnknownIdentifiers(t *testing.T) {
	f := newCheckoutFixture(t, true)

	_, err := f.svc.CreateSubscriptionCheckout(context.Background(), f.fan.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreatePostUnlockCheckout(context.Background(), f.fan.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreatePackageCheckout(context.Background(), f.fan.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
