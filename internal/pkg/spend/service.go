package spend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/decoderzhub/snapreme/internal/pkg/pricing"
	"gorm.io/gorm"
)

// Service orchestrates coin-spending actions in pay-per-message threads.
// Each action resolves its cost through pricing, then performs the
// wallet debit and the message append inside one transaction: either
// both land or neither does.
type Service struct {
	repo Repository
}

// NewService creates a spend service with the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a spend service backed by the given GORM handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// SendResult is returned from a successful send. CreatorID identifies
// the earning creator so callers can feed the revenue counters.
type SendResult struct {
	Message    *models.PpmMessage `json:"message"`
	CoinCost   int64              `json:"coin_cost"`
	NewBalance int64              `json:"new_balance"`
	CreatorID  uint               `json:"-"`
}

// StartThread returns the single thread between the calling fan and the
// given creator, creating it on first contact. Opening a thread is free.
func (s *Service) StartThread(ctx context.Context, callerID, creatorID uint) (*models.PpmThread, error) {
	_ = ctx
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	creator, err := s.repo.GetCreator(creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load creator: %w", err)
	}
	if creator.UserID == callerID {
		return nil, ErrInvalidInput
	}
	thread, err := s.repo.FindOrCreateThread(creatorID, callerID)
	if err != nil {
		return nil, fmt.Errorf("find or create thread: %w", err)
	}
	return thread, nil
}

// SendMessage appends a text message to the thread. Fan messages cost
// coins per the priority flag; creator replies are free and flagged as
// creator-sent.
func (s *Service) SendMessage(ctx context.Context, callerID, threadID uint, text string, priority bool) (*SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}
	thread, isCreator, err := s.authorizeThread(ctx, callerID, threadID)
	if err != nil {
		return nil, err
	}

	var cost int64
	if !isCreator {
		cost = pricing.MessageCost(priority)
	}
	msg := &models.PpmMessage{
		ThreadID:   thread.ID,
		SenderID:   callerID,
		IsCreator:  isCreator,
		Text:       text,
		IsPriority: priority && !isCreator,
		CoinCost:   cost,
	}
	return s.commit(callerID, cost, thread.CreatorID, msg)
}

// SendTip appends a tip message to the thread, debiting the fan one coin
// per ten cents, rounded up. Only the fan side can tip.
func (s *Service) SendTip(ctx context.Context, callerID, threadID uint, tipCents int64) (*SendResult, error) {
	thread, isCreator, err := s.authorizeThread(ctx, callerID, threadID)
	if err != nil {
		return nil, err
	}
	if isCreator {
		return nil, ErrInvalidInput
	}
	cost, err := pricing.TipCost(tipCents)
	if err != nil {
		return nil, ErrInvalidInput
	}
	msg := &models.PpmMessage{
		ThreadID: thread.ID,
		SenderID: callerID,
		Text:     fmt.Sprintf("Tipped $%d.%02d", tipCents/100, tipCents%100),
		TipCents: tipCents,
		CoinCost: cost,
	}
	return s.commit(callerID, cost, thread.CreatorID, msg)
}

// SendGift appends a gift message to the thread, debiting the fan the
// gift's catalog coin cost. Only the fan side can send gifts.
func (s *Service) SendGift(ctx context.Context, callerID, threadID uint, emoji string) (*SendResult, error) {
	thread, isCreator, err := s.authorizeThread(ctx, callerID, threadID)
	if err != nil {
		return nil, err
	}
	if isCreator {
		return nil, ErrInvalidInput
	}
	gift, err := s.repo.GetActiveGiftByEmoji(emoji)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load gift: %w", err)
	}
	msg := &models.PpmMessage{
		ThreadID:     thread.ID,
		SenderID:     callerID,
		GiftEmoji:    gift.Emoji,
		GiftCoinCost: gift.CoinCost,
		CoinCost:     gift.CoinCost,
	}
	return s.commit(callerID, gift.CoinCost, thread.CreatorID, msg)
}

// ListMessages returns a page of the thread's messages in send order.
// Reading is free but restricted to the thread's two members.
func (s *Service) ListMessages(ctx context.Context, callerID, threadID uint, offset, limit int) ([]models.PpmMessage, error) {
	if _, _, err := s.authorizeThread(ctx, callerID, threadID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	msgs, err := s.repo.GetMessages(threadID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// ListThreads returns the caller's threads, latest activity first. A
// creator sees their inbox; everyone else sees the threads they opened
// as a fan.
func (s *Service) ListThreads(ctx context.Context, callerID uint) ([]models.PpmThread, error) {
	_ = ctx
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	creator, err := s.repo.GetCreatorByUserID(callerID)
	if err == nil {
		threads, err := s.repo.ListThreadsByCreator(creator.ID)
		if err != nil {
			return nil, fmt.Errorf("list creator threads: %w", err)
		}
		return threads, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load creator: %w", err)
	}
	threads, err := s.repo.ListThreadsByFan(callerID)
	if err != nil {
		return nil, fmt.Errorf("list fan threads: %w", err)
	}
	return threads, nil
}

// Balance returns the caller's current coin balance, creating an empty
// wallet on first read.
func (s *Service) Balance(ctx context.Context, callerID uint) (int64, error) {
	_ = ctx
	if callerID == 0 {
		return 0, ErrUnauthenticated
	}
	balance, err := s.repo.GetWalletBalance(callerID)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

// authorizeThread loads the thread and verifies the caller is one of its
// two members. Outsiders get ErrNotFound so thread IDs are not probeable.
func (s *Service) authorizeThread(ctx context.Context, callerID, threadID uint) (*models.PpmThread, bool, error) {
	_ = ctx
	if callerID == 0 {
		return nil, false, ErrUnauthenticated
	}
	thread, err := s.repo.GetThread(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("load thread: %w", err)
	}
	if callerID == thread.FanID {
		return thread, false, nil
	}

	// The thread stores the Creator row ID; resolve its user account to
	// recognize the creator side.
	creator, err := s.repo.GetCreator(thread.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("load creator: %w", err)
	}
	if callerID == creator.UserID {
		return thread, true, nil
	}
	return nil, false, ErrNotFound
}

// commit runs the debit, append and thread touch in one transaction,
// then reads the post-spend balance.
func (s *Service) commit(callerID uint, cost int64, creatorID uint, msg *models.PpmMessage) (*SendResult, error) {
	err := s.repo.WithTx(func(tx Repository) error {
		if cost > 0 {
			if err := tx.DebitWallet(callerID, cost); err != nil {
				return err
			}
		}
		if err := tx.AppendMessage(msg); err != nil {
			return err
		}
		return tx.TouchThread(msg.ThreadID, time.Now())
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("record spend: %w", err)
	}

	balance, err := s.repo.GetWalletBalance(callerID)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}
	return &SendResult{Message: msg, CoinCost: cost, NewBalance: balance, CreatorID: creatorID}, nil
}
