package artifact

import (
	"fmt"
)

const (
	defaultBucket = "ai-logo-generator"

	// r2EndpointFormat is the S3 compatible endpoint for a Cloudflare R2 account
	r2EndpointFormat = "%s.r2.cloudflarestorage.com"
)

// Options configure where finished artifacts (would) live. All are optional; if any credential is
// missing we never build an object store client and serve placeholders.
type Options struct {
	// AccountID is the R2 account; used to build Endpoint if that isn't set.
	AccountID string

	// Endpoint is the S3 compatible host (no scheme). Defaults to the R2 endpoint for AccountID.
	Endpoint string

	AccessKey string
	SecretKey string

	// Bucket defaults to "ai-logo-generator"
	Bucket string

	// PublicURL is the public base URL objects in Bucket are served from.
	PublicURL string
}

func (o *Options) SetDefaults() {
	if o.Bucket == "" {
		o.Bucket = defaultBucket
	}
	if o.Endpoint == "" && o.AccountID != "" {
		o.Endpoint = fmt.Sprintf(r2EndpointFormat, o.AccountID)
	}
}

// hasCredentials returns if we have everything needed to build a client.
func (o *Options) hasCredentials() bool {
	return o.Endpoint != "" && o.AccessKey != "" && o.SecretKey != ""
}
