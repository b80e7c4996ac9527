package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// StripeVerifier checks the webhook signature: HMAC-SHA256 of the event id
// under the endpoint's signing key, alongside a succeeded payment status.
type StripeVerifier struct {
	WebhookKey string
}

func (v *StripeVerifier) Verify(payload map[string]string) bool {
	if v.WebhookKey == "" {
		return false
	}

	eventID := payload["id"]
	signature := payload["signature"]
	if eventID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.WebhookKey))
	mac.Write([]byte(eventID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return false
	}
	return payload["status"] == "succeeded"
}
