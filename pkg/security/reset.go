package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

const minResetTokenBytes = 20

// GenerateResetToken produces a random hex token with at least 20 bytes of
// entropy for the password reset flow.
func GenerateResetToken(numBytes int) (string, error) {
	if numBytes < minResetTokenBytes {
		numBytes = minResetTokenBytes
	}
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IsResetTokenValid reports whether the supplied token matches the stored one
// and the expiry has not passed. A cleared token (nil stored fields) always
// fails, which makes consumed tokens single-use.
func IsResetTokenValid(stored *string, expiry *time.Time, supplied string, now time.Time) bool {
	if stored == nil || expiry == nil || supplied == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(*stored), []byte(supplied)) != 1 {
		return false
	}
	return !now.After(*expiry)
}
