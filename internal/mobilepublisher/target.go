package mobilepublisher

import (
	"encoding/json"
	"fmt"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// GooglePlayConfig is the kind-specific shape for a google-play target.
type GooglePlayConfig struct {
	PackageName              string `json:"packageName"`
	Track                    string `json:"track"`
	ReleaseStatus            string `json:"releaseStatus"`
	ServiceAccountKeyPath    string `json:"serviceAccountKeyPath,omitempty"`
	MappingFilePath          string `json:"mappingFilePath,omitempty"`
	ChangesNotSentForReview  bool   `json:"changesNotSentForReview,omitempty"`
}

// AppStoreConfig is the kind-specific shape for an app-store target.
type AppStoreConfig struct {
	BundleID  string `json:"bundleId"`
	APIKeyID  string `json:"apiKeyId"`
	APIIssuer string `json:"apiIssuer"`
	AppleID   string `json:"appleId,omitempty"`
}

func decodeKindConfig(entry publisher.TargetEntry, v any) error {
	if len(entry.KindConfig) == 0 {
		return nil
	}
	if err := json.Unmarshal(entry.KindConfig, v); err != nil {
		return fmt.Errorf("decode %s config for %q: %w", entry.Kind, entry.Key, err)
	}
	return nil
}
