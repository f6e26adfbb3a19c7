package webpublisher

import (
	"encoding/json"
	"fmt"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// NetlifyConfig is the kind-specific shape for a netlify target.
type NetlifyConfig struct {
	SiteID     string `json:"siteId"`
	AuthToken  string `json:"authToken"`
	Functions  string `json:"functions,omitempty"`
	Message    string `json:"message,omitempty"`
	Production bool   `json:"production,omitempty"`
}

// VercelConfig is the kind-specific shape for a vercel target.
type VercelConfig struct {
	Token      string `json:"token"`
	Production bool   `json:"production,omitempty"`
}

// GHPagesConfig is the kind-specific shape for a gh-pages target.
type GHPagesConfig struct {
	Branch    string `json:"branch"`
	Repo      string `json:"repo"`
	Message   string `json:"message,omitempty"`
	NoJekyll  bool   `json:"noJekyll,omitempty"`
	CommitSHA string `json:"commitSha,omitempty"`
}

// S3Config is the kind-specific shape for an s3 target.
type S3Config struct {
	Bucket       string `json:"bucket"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region"`
	ACL          string `json:"acl,omitempty"`
	CacheControl string `json:"cacheControl,omitempty"`
}

// CloudflarePagesConfig is the kind-specific shape for a
// cloudflare-pages target.
type CloudflarePagesConfig struct {
	ProjectName   string `json:"projectName"`
	Branch        string `json:"branch,omitempty"`
	CommitMessage string `json:"commitMessage,omitempty"`
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
