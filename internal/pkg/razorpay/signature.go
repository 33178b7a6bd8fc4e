package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/swiftride/swiftride-api/internal/pkg/gateway"
)

// BuildSignatureBase returns the string Razorpay signs for a payment
// confirmation: "<order_id>|<payment_id>".
func BuildSignatureBase(orderID, paymentID string) string {
	return orderID + "|" + paymentID
}

// Sign computes the hex HMAC-SHA256 of base with the given secret.
func Sign(base, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(base))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a client-submitted payment proof against the
// key secret. Fails closed: any mismatch returns ErrSignatureInvalid.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	expected := Sign(BuildSignatureBase(orderID, paymentID), c.config.KeySecret)
	received := strings.ToLower(strings.TrimSpace(signature))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		return gateway.ErrSignatureInvalid
	}
	return nil
}
