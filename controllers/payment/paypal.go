package paymentControllers

import "crypto/subtle"

// PayPalVerifier compares the shared webhook token configured for the
// endpoint. With no token configured it fails closed.
type PayPalVerifier struct {
	WebhookToken string
}

func (v *PayPalVerifier) Verify(payload map[string]string) bool {
	if v.WebhookToken == "" {
		return false
	}
	token := payload["webhook_token"]
	if subtle.ConstantTimeCompare([]byte(v.WebhookToken), []byte(token)) != 1 {
		return false
	}
	return payload["payment_status"] == "COMPLETED"
}
