package repository

import (
	"testing"
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadFindOrCreateIsUniquePerPair(t *testing.T) {
	repo := NewThreadRepository(newTestDB(t))

	first, err := repo.FindOrCreate(10, 20)
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	assert.NotEmpty(t, first.UUID)

	second, err := repo.FindOrCreate(10, 20)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// A different fan gets a different thread.
	other, err := repo.FindOrCreate(10, 21)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestThreadAppendAndListMessages(t *testing.T) {
	repo := NewThreadRepository(newTestDB(t))

	thread, err := repo.FindOrCreate(1, 2)
	require.NoError(t, err)

	msg := &models.PpmMessage{
		ThreadID: thread.ID,
		SenderID: 2,
		Text:     "hey there",
		CoinCost: 10,
	}
	require.NoError(t, repo.AppendMessage(msg))
	require.NoError(t, repo.Touch(thread.ID, time.Now()))

	messages, err := repo.GetMessages(thread.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hey there", messages[0].Text)
	assert.NotEmpty(t, messages[0].UUID)

	count, err := repo.CountMessages(thread.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.GetByID(thread.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastMessageAt)
}

func TestWebhookEventCreateIfNotExistsIsIdempotent(t *testing.T) {
	repo := NewWebhookEventRepository(newTestDB(t))

	event := &models.PaymentWebhookEvent{
		Provider:        models.PaymentProviderStripe,
		ProviderEventID: "evt_123",
		EventType:       "checkout.session.completed",
		PayloadJSON:     "{}",
		SignatureValid:  true,
	}

	created, stored, err := repo.CreateIfNotExists(event)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, stored)

	duplicate := &models.PaymentWebhookEvent{
		Provider:        models.PaymentProviderStripe,
		ProviderEventID: "evt_123",
		EventType:       "checkout.session.completed",
		PayloadJSON:     "{}",
	}
	createdAgain, storedAgain, err := repo.CreateIfNotExists(duplicate)
	require.NoError(t, err)
	assert.False(t, createdAgain)
	assert.Equal(t, stored.ID, storedAgain.ID)

	claimed, err := repo.MarkProcessed(stored.ID, "")
	require.NoError(t, err)
	assert.True(t, claimed)

	// Only the first delivery may claim the event.
	claimedAgain, err := repo.MarkProcessed(stored.ID, "")
	require.NoError(t, err)
	assert.False(t, claimedAgain)
}
