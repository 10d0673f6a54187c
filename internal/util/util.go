package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const exportScope = "export:registrations"

// Now is the write-time clock, truncated to whole seconds.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// ExportToken is the token organizer links must carry to read the roster or CSV.
func ExportToken(secret string) string {
	return HMACSHA256Hex(secret, exportScope)
}

func ValidExportToken(secret, token string) bool {
	if secret == "" || token == "" {
		return false
	}
	return hmac.Equal([]byte(ExportToken(secret)), []byte(token))
}
