package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/internal/pkg/constants"
	"github.com/decoderzhub/snapreme/internal/pkg/env"
	"github.com/decoderzhub/snapreme/internal/pkg/pricing"
	"gorm.io/gorm"
)

// Purchase kinds written into session metadata and read back by the
// webhook reconciler.
const (
	KindSubscription = "subscription"
	KindPostUnlock   = "post_unlock"
	KindPackage      = "package"
	KindCoinTopup    = "coin_topup"
)

const (
	defaultCurrency = "usd"

	// Every gateway call gets its own deadline; sessions are never
	// retried automatically.
	gatewayTimeout = 15 * time.Second
)

// Service builds hosted checkout sessions for every real-money flow:
// monthly subscriptions, single post unlocks, content packages, coin
// top-ups, and the creator-side payout onboarding and price setup.
type Service struct {
	repo    Repository
	gateway Gateway
	baseURL string
}

// NewService creates a checkout service. baseURL is the public site
// origin used to build success and cancel redirect URLs.
func NewService(repo Repository, gateway Gateway, baseURL string) *Service {
	return &Service{repo: repo, gateway: gateway, baseURL: baseURL}
}

// NewServiceFromDB creates a checkout service with the GORM-backed
// repository and the site origin from APP_URL.
func NewServiceFromDB(db *gorm.DB, gateway Gateway) *Service {
	return NewService(NewRepository(db), gateway, env.GetEnv("APP_URL", "http://localhost:3000"))
}

// CreateSubscriptionCheckout builds a recurring monthly session for the
// creator's subscription, priced at the creator's own price or the
// platform default, with a 10% recurring application fee routed through
// the creator's connected account.
func (s *Service) CreateSubscriptionCheckout(ctx context.Context, callerID, creatorID uint) (*Session, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	creator, err := s.loadCreator(creatorID)
	if err != nil {
		return nil, err
	}
	if !creator.HasPayoutAccount() {
		return nil, ErrPayoutNotConfigured
	}
	customerID, err := s.ensureCustomer(ctx, callerID)
	if err != nil {
		return nil, err
	}

	in := SessionInput{
		Mode:                  "subscription",
		CustomerID:            customerID,
		SuccessURL:            s.profileURL(creator.Handle) + "?unlocked=true",
		CancelURL:             s.profileURL(creator.Handle),
		DestinationAccountID:  creator.StripeConnectID,
		ApplicationFeePercent: pricing.SubscriptionFeePercent(),
		Metadata: map[string]string{
			"kind":       KindSubscription,
			"creator_id": strconv.FormatUint(uint64(creator.ID), 10),
			"user_id":    strconv.FormatUint(uint64(callerID), 10),
		},
	}
	if creator.StripePriceID != "" {
		in.RecurringPriceID = creator.StripePriceID
	} else {
		in.ProductName = fmt.Sprintf("Monthly subscription to @%s", creator.Handle)
		in.UnitAmountCents = pricing.SubscriptionPriceCents(creator.SubscriptionPriceCents)
		in.Currency = defaultCurrency
	}
	return s.createSession(ctx, in)
}

// CreatePostUnlockCheckout builds a one-time session for unlocking a
// single premium post, with a 10% one-off application fee.
func (s *Service) CreatePostUnlockCheckout(ctx context.Context, callerID, postID uint) (*Session, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return nil, notFoundOr(err, "load post")
	}
	creator, err := s.loadCreator(post.CreatorID)
	if err != nil {
		return nil, err
	}
	if !creator.HasPayoutAccount() {
		return nil, ErrPayoutNotConfigured
	}
	if post.UnlockPriceCents <= 0 {
		return nil, ErrInvalidInput
	}
	customerID, err := s.ensureCustomer(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.createSession(ctx, SessionInput{
		Mode:                 "payment",
		CustomerID:           customerID,
		SuccessURL:           s.profileURL(creator.Handle) + "?unlocked_post=" + post.UUID,
		CancelURL:            s.profileURL(creator.Handle),
		ProductName:          fmt.Sprintf("Unlock: %s", post.Title),
		UnitAmountCents:      post.UnlockPriceCents,
		Currency:             defaultCurrency,
		DestinationAccountID: creator.StripeConnectID,
		ApplicationFeeCents:  pricing.ApplicationFeeCents(post.UnlockPriceCents),
		Metadata: map[string]string{
			"kind":       KindPostUnlock,
			"post_id":    strconv.FormatUint(uint64(post.ID), 10),
			"creator_id": strconv.FormatUint(uint64(creator.ID), 10),
			"user_id":    strconv.FormatUint(uint64(callerID), 10),
		},
	})
}

// CreatePackageCheckout builds a one-time session for a content package,
// same fee shape as a post unlock.
func (s *Service) CreatePackageCheckout(ctx context.Context, callerID, packageID uint) (*Session, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	pkg, err := s.repo.GetPackage(packageID)
	if err != nil {
		return nil, notFoundOr(err, "load package")
	}
	creator, err := s.loadCreator(pkg.CreatorID)
	if err != nil {
		return nil, err
	}
	if !creator.HasPayoutAccount() {
		return nil, ErrPayoutNotConfigured
	}
	if pkg.PriceCents <= 0 {
		return nil, ErrInvalidInput
	}
	customerID, err := s.ensureCustomer(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.createSession(ctx, SessionInput{
		Mode:                 "payment",
		CustomerID:           customerID,
		SuccessURL:           s.profileURL(creator.Handle) + "?unlocked=true",
		CancelURL:            s.profileURL(creator.Handle),
		ProductName:          pkg.Title,
		UnitAmountCents:      pkg.PriceCents,
		Currency:             defaultCurrency,
		DestinationAccountID: creator.StripeConnectID,
		ApplicationFeeCents:  pricing.ApplicationFeeCents(pkg.PriceCents),
		Metadata: map[string]string{
			"kind":       KindPackage,
			"package_id": strconv.FormatUint(uint64(pkg.ID), 10),
			"creator_id": strconv.FormatUint(uint64(creator.ID), 10),
			"user_id":    strconv.FormatUint(uint64(callerID), 10),
		},
	})
}

// CreateCoinCheckout builds a one-time platform-owned session for a
// fixed coin package. No application fee; the platform keeps the full
// amount, and the wallet credit happens later via webhook reconciliation.
func (s *Service) CreateCoinCheckout(ctx context.Context, callerID uint, packageType string) (*Session, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	tier, ok := pricing.CoinPackageByType(packageType)
	if !ok {
		return nil, ErrNotFound
	}
	customerID, err := s.ensureCustomer(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.createSession(ctx, SessionInput{
		Mode:            "payment",
		CustomerID:      customerID,
		SuccessURL:      s.baseURL + constants.CoinsSuccessRoute,
		CancelURL:       s.baseURL + constants.CoinsRoute,
		ProductName:     tier.Label,
		UnitAmountCents: tier.PriceCents,
		Currency:        defaultCurrency,
		Metadata: map[string]string{
			"kind":         KindCoinTopup,
			"package_type": tier.Type,
			"coins":        strconv.FormatInt(tier.Coins, 10),
			"user_id":      strconv.FormatUint(uint64(callerID), 10),
		},
	})
}

// CreateCreatorOnboarding creates the creator's connected payout account
// on first call and returns a hosted onboarding link. Safe to call again
// to resume an unfinished onboarding.
func (s *Service) CreateCreatorOnboarding(ctx context.Context, callerID uint) (string, error) {
	if callerID == 0 {
		return "", ErrUnauthenticated
	}
	creator, err := s.repo.GetCreatorByUserID(callerID)
	if err != nil {
		return "", notFoundOr(err, "load creator")
	}

	if creator.StripeConnectID == "" {
		user, err := s.repo.GetUser(callerID)
		if err != nil {
			return "", notFoundOr(err, "load user")
		}
		gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
		accountID, err := s.gateway.CreateConnectAccount(gctx, user.Email)
		cancel()
		if err != nil {
			return "", &GatewayError{Op: "create account", Err: err}
		}
		creator.StripeConnectID = accountID
		if err := s.repo.UpdateCreator(creator); err != nil {
			return "", fmt.Errorf("save connect account id: %w", err)
		}
	}

	payoutsURL := s.baseURL + constants.CreatorPayoutsRoute
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	link, err := s.gateway.CreateAccountLink(gctx, creator.StripeConnectID, payoutsURL, payoutsURL)
	if err != nil {
		return "", &GatewayError{Op: "create account link", Err: err}
	}
	return link, nil
}

// CreateCreatorProductPrice creates (or replaces) the creator's monthly
// subscription product and price on their connected account and persists
// the returned identifiers.
func (s *Service) CreateCreatorProductPrice(ctx context.Context, callerID uint, priceCents int64) (*models.Creator, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	if priceCents <= 0 {
		return nil, ErrInvalidInput
	}
	creator, err := s.repo.GetCreatorByUserID(callerID)
	if err != nil {
		return nil, notFoundOr(err, "load creator")
	}
	if !creator.HasPayoutAccount() {
		return nil, ErrPayoutNotConfigured
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	price, err := s.gateway.CreateRecurringPrice(gctx, RecurringPriceInput{
		AccountID:       creator.StripeConnectID,
		ProductID:       creator.StripeProductID,
		ProductName:     fmt.Sprintf("Monthly subscription to @%s", creator.Handle),
		UnitAmountCents: priceCents,
		Currency:        defaultCurrency,
	})
	if err != nil {
		return nil, &GatewayError{Op: "create price", Err: err}
	}

	creator.StripeProductID = price.ProductID
	creator.StripePriceID = price.PriceID
	creator.SubscriptionPriceCents = priceCents
	if err := s.repo.UpdateCreator(creator); err != nil {
		return nil, fmt.Errorf("save subscription price: %w", err)
	}
	return creator, nil
}

// ensureCustomer returns the fan's payment-provider customer id,
// creating and caching it on the fan profile on first checkout.
func (s *Service) ensureCustomer(ctx context.Context, userID uint) (string, error) {
	profile, err := s.repo.GetOrCreateFanProfile(userID)
	if err != nil {
		return "", fmt.Errorf("load fan profile: %w", err)
	}
	if profile.StripeCustomerID != "" {
		return profile.StripeCustomerID, nil
	}

	user, err := s.repo.GetUser(userID)
	if err != nil {
		return "", notFoundOr(err, "load user")
	}
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	customerID, err := s.gateway.CreateCustomer(gctx, user.Email, user.Name)
	if err != nil {
		return "", &GatewayError{Op: "create customer", Err: err}
	}

	profile.StripeCustomerID = customerID
	if err := s.repo.UpdateFanProfile(profile); err != nil {
		return "", fmt.Errorf("save customer id: %w", err)
	}
	return customerID, nil
}

func (s *Service) createSession(ctx context.Context, in SessionInput) (*Session, error) {
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	session, err := s.gateway.CreateSession(gctx, in)
	if err != nil {
		return nil, &GatewayError{Op: "create session", Err: err}
	}
	return session, nil
}

func (s *Service) loadCreator(id uint) (*models.Creator, error) {
	creator, err := s.repo.GetCreator(id)
	if err != nil {
		return nil, notFoundOr(err, "load creator")
	}
	return creator, nil
}

func (s *Service) profileURL(handle string) string {
	return s.baseURL + "/" + handle
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
