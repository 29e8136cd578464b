// Package constants holds shared configuration constants.
package constants

// Supported event publisher providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
