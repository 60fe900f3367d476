package translate

import "context"

// Stub is a no-op translator for offline development.
// Every language comes back empty, which the orchestrator treats as a failed attempt.
type Stub struct{}

// NewStub creates a new no-op translator.
func NewStub() *Stub { return &Stub{} }

// Name implements Translator.
func (s *Stub) Name() string { return "stub" }

// Translate always returns an empty string.
func (s *Stub) Translate(_ context.Context, _, _ string) (string, error) {
	return "", nil
}
