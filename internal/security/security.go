// Package security derives the per-subscriber tokens that authenticate
// management links and tracking hits without a server-side lookup table.
package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const (
	secretCodeBytes = 32
	ucodeBytes      = 4
	tokenBytes      = 32
)

// GenerateSecretCode returns a 64 character hex secret. The fixed length keeps
// secret||email concatenation unambiguous in ComputeAdminLink.
func GenerateSecretCode() string {
	return randomHex(secretCodeBytes)
}

// GenerateUcode returns the 8 character public subscriber code used in tracking URLs.
func GenerateUcode() string {
	return randomHex(ucodeBytes)
}

// GenerateToken returns a 64 character hex token for verification and login links.
func GenerateToken() string {
	return randomHex(tokenBytes)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}

// ComputeAdminLink returns hex(SHA256(secretCode || email)).
func ComputeAdminLink(secretCode, email string) string {
	h := sha256.New()
	h.Write([]byte(secretCode))
	h.Write([]byte(email))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyAdminLink compares in constant time. A length mismatch returns early.
func VerifyAdminLink(provided, expected string) bool {
	return constantTimeEqual(provided, expected)
}

// ComputeOpenHash returns hex(HMAC-SHA256(secretCode, "ucode:topic:url")).
// url is empty for open tracking.
func ComputeOpenHash(secretCode, ucode, topic, url string) string {
	mac := hmac.New(sha256.New, []byte(secretCode))
	mac.Write([]byte(ucode + ":" + topic + ":" + url))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyOpenHash recomputes the tag and compares in constant time.
func VerifyOpenHash(secretCode, ucode, topic, url, provided string) bool {
	return constantTimeEqual(provided, ComputeOpenHash(secretCode, ucode, topic, url))
}

func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
