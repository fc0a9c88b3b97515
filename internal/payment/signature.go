package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// LinkPayload carries the fields the gateway signs on a payment-link redirect.
type LinkPayload struct {
	PaymentLinkID     string
	ReferenceID       string
	PaymentLinkStatus string
	PaymentID         string
}

// SignLinkPayload returns hex(HMAC-SHA256(secret,
// "link_id|reference_id|status|payment_id")).
func SignLinkPayload(p LinkPayload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join([]string{
		p.PaymentLinkID,
		p.ReferenceID,
		p.PaymentLinkStatus,
		p.PaymentID,
	}, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verifier checks payment-link signatures with the gateway key secret.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(p LinkPayload, signature string) bool {
	if v.secret == "" || signature == "" {
		return false
	}
	expected := SignLinkPayload(p, v.secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
