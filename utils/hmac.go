package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// ComputeHMACSHA256 computes HMAC-SHA256 signature and returns hex-encoded string.
func ComputeHMACSHA256(secretKey, message string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

// SecureCompare performs constant-time string comparison.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// SignValue appends an HMAC of value, giving "value.signature".
func SignValue(secretKey, value string) string {
	return value + "." + ComputeHMACSHA256(secretKey, value)
}

// VerifySignedValue returns the value of a SignValue output when its signature matches.
func VerifySignedValue(secretKey, signed string) (string, bool) {
	idx := strings.LastIndex(signed, ".")
	if idx < 0 {
		return "", false
	}
	value, signature := signed[:idx], signed[idx+1:]
	if !SecureCompare(signature, ComputeHMACSHA256(secretKey, value)) {
		return "", false
	}
	return value, true
}
