package paymentControllers

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// PayUVerifier checks the response hash PayU sends with its callback. The
// reverse hash is SHA-512 over
// "salt|status|||||||||||email|firstname|productinfo|amount|txnid|key".
type PayUVerifier struct {
	MerchantKey  string
	MerchantSalt string
}

func (v *PayUVerifier) Verify(payload map[string]string) bool {
	if v.MerchantKey == "" || v.MerchantSalt == "" {
		return false
	}

	status := payload["status"]
	received := payload["hash"]
	if received == "" {
		return false
	}

	fields := []string{
		v.MerchantSalt,
		status,
		"", "", "", "", "", "", "", "", "", "",
		payload["email"],
		payload["firstname"],
		payload["productinfo"],
		payload["amount"],
		payload["txnid"],
		v.MerchantKey,
	}
	sum := sha512.Sum512([]byte(strings.Join(fields, "|")))
	expected := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		return false
	}
	return status == "success"
}
