package paymentControllers

import (
	"github.com/gobazaar/marketplace-api/config"
	"github.com/gobazaar/marketplace-api/models"
)

// Verifier classifies a gateway callback payload as a verified success or a
// failure. Implementations carry the gateway-specific signature/hash logic.
type Verifier interface {
	Verify(payload map[string]string) bool
}

// VerifierRegistry selects the verifier for a gateway value. An unknown
// gateway verifies nothing.
type VerifierRegistry map[models.Gateway]Verifier

func (r VerifierRegistry) Verify(gateway models.Gateway, payload map[string]string) bool {
	v, ok := r[gateway]
	if !ok {
		return false
	}
	return v.Verify(payload)
}

// NewVerifierRegistry wires one verifier per supported gateway from the
// configured credentials.
func NewVerifierRegistry(cfg config.GatewayConfig) VerifierRegistry {
	return VerifierRegistry{
		models.GatewayRazorpay: &RazorpayVerifier{KeySecret: cfg.RazorpayKeySecret},
		models.GatewayPayU:     &PayUVerifier{MerchantKey: cfg.PayUMerchantKey, MerchantSalt: cfg.PayUMerchantSalt},
		models.GatewayStripe:   &StripeVerifier{WebhookKey: cfg.StripeWebhookKey},
		models.GatewayPayPal:   &PayPalVerifier{WebhookToken: cfg.PayPalWebhookToken},
	}
}
