package generation

import "context"

// CredentialGate is the credential-selection collaborator consulted before
// any paid capability (image tiers, video) is invoked. It replaces ambient
// global state with an injected dependency so tests can use fakes.
type CredentialGate interface {
	// Ensure resolves the active credential and returns the key that must
	// authenticate the call, or fails with a CredentialMissing-classified
	// error when selection cannot be resolved. An empty key with a nil
	// error means the caller's own binding applies.
	Ensure(ctx context.Context) (string, error)
	// Invalidate drops the active selection so the next Ensure re-opens the
	// selection flow. Called when the remote rejects the selected
	// project/credential.
	Invalidate(ctx context.Context) error
}

// AlwaysAllow is a CredentialGate for capabilities that need no explicit
// selection (development mode, free tiers).
type AlwaysAllow struct{}

func (AlwaysAllow) Ensure(context.Context) (string, error) { return "", nil }
func (AlwaysAllow) Invalidate(context.Context) error       { return nil }
