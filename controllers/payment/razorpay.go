package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// RazorpayVerifier checks the payment signature Razorpay attaches to its
// callback: HMAC-SHA256 of "<order_id>|<payment_id>" under the key secret.
type RazorpayVerifier struct {
	KeySecret string
}

func (v *RazorpayVerifier) Verify(payload map[string]string) bool {
	if v.KeySecret == "" {
		return false
	}

	orderID := payload["razorpay_order_id"]
	paymentID := payload["razorpay_payment_id"]
	signature := payload["razorpay_signature"]
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
