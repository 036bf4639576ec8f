package auth

import (
	"context"
)

// ActorInfo contains information about an authenticated actor.
type ActorInfo struct {
	ActorID string `json:"actor_id"` // Owner identity scoping every row access
	KeyName string `json:"key_name"` // Human-readable name
}

// Authorizer resolves an API key to the current caller identity.
// Implementations return ActorInfo if the key is valid, an error otherwise.
// The absence of a resolvable identity must block every mutating operation.
type Authorizer interface {
	Authorize(ctx context.Context, apiKey, operation string) (*ActorInfo, error)
}
