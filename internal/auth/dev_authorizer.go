package auth

import (
	"context"
	"errors"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only.
	LocalDevAPIKey = "tc_local_dev_key"
)

// DevAuthorizer recognizes only the hardcoded LocalDevAPIKey and resolves it
// to a fixed local actor. It exists so the service can run end to end without
// a real identity provider.
type DevAuthorizer struct{}

// NewDevAuthorizer creates a DevAuthorizer for local development.
func NewDevAuthorizer() *DevAuthorizer {
	return &DevAuthorizer{}
}

// Authorize validates the hardcoded API key.
func (d *DevAuthorizer) Authorize(ctx context.Context, apiKey, operation string) (*ActorInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, errors.New("invalid API key for local development")
	}
	return &ActorInfo{
		ActorID: "timecard-dev",
		KeyName: "Local Development Key",
	}, nil
}

// StaticAuthorizer maps fixed API keys to actor identities. Used by tests and
// small single-tenant deployments where keys are provisioned out of band.
type StaticAuthorizer struct {
	keys map[string]ActorInfo
}

// NewStaticAuthorizer builds a StaticAuthorizer over a key -> actor map.
func NewStaticAuthorizer(keys map[string]ActorInfo) *StaticAuthorizer {
	return &StaticAuthorizer{keys: keys}
}

func (s *StaticAuthorizer) Authorize(ctx context.Context, apiKey, operation string) (*ActorInfo, error) {
	info, ok := s.keys[apiKey]
	if !ok {
		return nil, errors.New("unknown API key")
	}
	return &info, nil
}
