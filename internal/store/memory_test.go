package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemory_GetCredentials_Unconfigured(t *testing.T) {
	m := NewMemory()

	creds, err := m.GetCredentials(context.Background(), uuid.New(), IntegrationTwitter)
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if creds != nil {
		t.Errorf("GetCredentials() = %v, want nil for unconfigured integration", creds)
	}
}

func TestMemory_SaveAndGetCredentials(t *testing.T) {
	m := NewMemory()
	userID := uuid.New()

	err := m.SaveCredentials(context.Background(), userID, IntegrationLLMAPIs, map[string]string{
		KeyGemini: "gem-123",
		KeyGroq:   "groq-456",
	})
	if err != nil {
		t.Fatalf("SaveCredentials() error = %v", err)
	}

	creds, err := m.GetCredentials(context.Background(), userID, IntegrationLLMAPIs)
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if creds[KeyGemini] != "gem-123" || creds[KeyGroq] != "groq-456" {
		t.Errorf("GetCredentials() = %v", creds)
	}

	// Stored map must be isolated from caller mutation.
	creds[KeyGemini] = "mutated"
	again, err := m.GetCredentials(context.Background(), userID, IntegrationLLMAPIs)
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if again[KeyGemini] != "gem-123" {
		t.Errorf("stored credentials mutated through returned map")
	}
}

func TestMemory_SaveCredentials_Overwrites(t *testing.T) {
	m := NewMemory()
	userID := uuid.New()
	ctx := context.Background()

	if err := m.SaveCredentials(ctx, userID, IntegrationTwitter, map[string]string{"api_key": "old"}); err != nil {
		t.Fatalf("SaveCredentials() error = %v", err)
	}
	if err := m.SaveCredentials(ctx, userID, IntegrationTwitter, map[string]string{"api_key": "new"}); err != nil {
		t.Fatalf("SaveCredentials() error = %v", err)
	}

	creds, err := m.GetCredentials(ctx, userID, IntegrationTwitter)
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if creds["api_key"] != "new" {
		t.Errorf("credentials not overwritten: %v", creds)
	}
}
