package credentials

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/generation"
)

const ProviderGemini = "gemini"

// Querier is the slice of pgxpool.Pool the store needs. Narrowed so tests can
// substitute stubs.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// Store holds provider credentials in the integration_tokens table and acts
// as the credential gate for paid capabilities. The environment key, when
// set, serves as an always-active fallback so development deployments work
// without a row in the table.
type Store struct {
	db          Querier
	fallbackKey string
}

// NewStore creates a credential store. fallbackKey may be empty.
func NewStore(db Querier, fallbackKey string) *Store {
	return &Store{db: db, fallbackKey: strings.TrimSpace(fallbackKey)}
}

// GeminiAPIKey returns the active stored key, or the environment fallback.
func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	var token string
	row := s.db.QueryRow(ctx, `
SELECT token
FROM integration_tokens
WHERE provider = $1 AND active;
`, ProviderGemini)
	if err := row.Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.fallbackKey, nil
		}
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return s.fallbackKey, nil
	}
	return token, nil
}

// SetGeminiAPIKey stores a key and marks it active.
func (s *Store) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	_, err := s.db.Exec(ctx, `
INSERT INTO integration_tokens (provider, token, active)
VALUES ($1, $2, TRUE)
ON CONFLICT (provider) DO UPDATE
SET token = EXCLUDED.token,
    active = TRUE,
    updated_at = NOW();
`, ProviderGemini, key)
	return err
}

// Ensure implements generation.CredentialGate: it returns the key that
// authenticates the call, or fails with the credential-missing classification
// when no usable key is available.
func (s *Store) Ensure(ctx context.Context) (string, error) {
	key, err := s.GeminiAPIKey(ctx)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", generation.NewCredentialMissing()
	}
	return key, nil
}

// Invalidate drops the active flag so the next Ensure forces a re-selection.
// Called when the remote rejects the stored project/credential.
func (s *Store) Invalidate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
UPDATE integration_tokens
SET active = FALSE, updated_at = NOW()
WHERE provider = $1;
`, ProviderGemini)
	return err
}

var _ generation.CredentialGate = (*Store)(nil)
