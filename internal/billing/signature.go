package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// SignatureHeader carries the provider's HMAC of the raw webhook body
const SignatureHeader = "X-Webhook-Signature"

const signaturePrefix = "sha256="

// ErrInvalidSignature is returned for webhooks not signed with the shared secret
var ErrInvalidSignature = errors.New("invalid webhook signature")

// SignPayload returns the header value for body, "sha256=" followed by the
// hex HMAC-SHA256 of the body under secret
func SignPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a SignatureHeader value. An empty secret rejects
// every payload.
func VerifySignature(secret string, body []byte, signature string) error {
	if secret == "" || !strings.HasPrefix(signature, signaturePrefix) {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(strings.TrimPrefix(signature, signaturePrefix))
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}
