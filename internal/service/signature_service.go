package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// SignatureScheme prefixes every signature so receivers can rotate algorithms.
const SignatureScheme = "v1="

// HMACSignatureService signs outbound custodian instructions and webhook
// deliveries with HMAC-SHA256.
type HMACSignatureService struct{}

func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign returns "v1=" followed by the hex HMAC-SHA256 of payload.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return SignatureScheme + hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. Signatures without the scheme prefix are rejected.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	if !strings.HasPrefix(signature, SignatureScheme) {
		return false
	}
	return hmac.Equal([]byte(s.Sign(secretKey, payload)), []byte(signature))
}

// BuildCanonicalString joins method, path, unix timestamp and the hex
// SHA-256 of the body with newlines. Hashing keeps the signed string
// bounded regardless of body size.
func (s *HMACSignatureService) BuildCanonicalString(method, path string, timestamp int64, body string) string {
	digest := sha256.Sum256([]byte(body))
	return strings.Join([]string{
		strings.ToUpper(method),
		path,
		strconv.FormatInt(timestamp, 10),
		hex.EncodeToString(digest[:]),
	}, "\n")
}
