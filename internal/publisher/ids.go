package publisher

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewRunID derives a 12-hex-character run id as sha256(timestamp|projectId|random)[:12],
// per spec.md §3/§6. The random suffix is read from crypto/rand so two
// runs started in the same millisecond for the same project never
// collide.
func NewRunID(nowMS int64, projectID string) (string, error) {
	suffix := make([]byte, 16)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate run id entropy: %w", err)
	}
	payload := fmt.Sprintf("%d|%s|%s", nowMS, projectID, hex.EncodeToString(suffix))
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:12], nil
}
