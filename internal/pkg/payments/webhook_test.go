package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookAcceptsSignedPayload(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"metadata":{"kind":"coin_topup"}}}}`)

	event, err := VerifyWebhook(payload, signPayload(t, payload, secret), secret)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "checkout.session.completed", string(event.Type))
}

func TestVerifyWebhookRejectsTamperedPayload(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, secret)

	_, err := VerifyWebhook([]byte(`{"id":"evt_2"}`), header, secret)
	assert.Error(t, err)
}

func TestVerifyWebhookRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, "whsec_other")

	_, err := VerifyWebhook(payload, header, "whsec_test")
	assert.Error(t, err)
}

func TestVerifyWebhookRequiresSecret(t *testing.T) {
	_, err := VerifyWebhook([]byte(`{}`), "t=1,v1=abc", "")
	assert.Error(t, err)
}
