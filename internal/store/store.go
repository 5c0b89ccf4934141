// Package store provides PostgreSQL-backed persistence for user accounts and
// per-user integration credentials (AI provider keys, platform OAuth secrets).
// Credentials are read fresh on every operation: they may be rotated between
// requests and the read path is a single key lookup.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration names recognized by the settings UI.
const (
	IntegrationTwitter = "twitter"
	IntegrationLLMAPIs = "llm_apis"
)

// Provider key names inside the llm_apis credential map. A missing key means
// the provider is not configured for that user.
const (
	KeyGemini   = "gemini_key"
	KeyGroq     = "groq_key"
	KeyRapidAPI = "rapidapi_key"
)

// Store is the credential gateway consumed by the generation and publish
// pipelines. GetCredentials returns (nil, nil) when the integration has never
// been configured.
type Store interface {
	GetCredentials(ctx context.Context, userID uuid.UUID, integration string) (map[string]string, error)
	SaveCredentials(ctx context.Context, userID uuid.UUID, integration string, creds map[string]string) error
}

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetCredentials retrieves the stored credential map for one integration.
// Returns (nil, nil) when the user has not configured the integration.
func (db *DB) GetCredentials(ctx context.Context, userID uuid.UUID, integration string) (map[string]string, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT credentials FROM user_integrations WHERE user_id = $1 AND integration = $2`,
		userID, integration,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s credentials: %w", integration, err)
	}

	var creds map[string]string
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode %s credentials: %w", integration, err)
	}
	return creds, nil
}

// SaveCredentials upserts the credential map for one integration.
func (db *DB) SaveCredentials(ctx context.Context, userID uuid.UUID, integration string, creds map[string]string) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode %s credentials: %w", integration, err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO user_integrations (user_id, integration, credentials)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, integration) DO UPDATE SET credentials = $3, updated_at = NOW()`,
		userID, integration, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s credentials: %w", integration, err)
	}
	return nil
}

// CreateUser inserts a new user and returns the stored record.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, created_at, updated_at`,
		name, email, passwordHash,
	).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.PasswordHash = passwordHash
	return &user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) when absent.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
