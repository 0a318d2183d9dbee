package store

import (
	"context"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/erazemk/reviewit/internal/db"
)

func TestJWTSecretConcurrentCallersAgree(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	const callers = 8
	secrets := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			secrets[i], errs[i] = GetJWTSecret(ctx, database)
		}()
	}
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if secrets[i] != secrets[0] {
			t.Fatalf("caller %d got %q, caller 0 got %q", i, secrets[i], secrets[0])
		}
	}
	if raw, err := hex.DecodeString(secrets[0]); err != nil || len(raw) != 32 {
		t.Errorf("expected 32 random bytes hex-encoded, got %q", secrets[0])
	}

	var rows int
	if err := database.Get(&rows, `SELECT COUNT(*) FROM settings WHERE key = 'jwt_secret'`); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("expected one stored secret, got %d", rows)
	}
}

func TestJWTSecretKeepsExistingValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.Exec(`INSERT INTO settings (key, value) VALUES ('jwt_secret', 'configured-elsewhere')`); err != nil {
		t.Fatal(err)
	}

	tx, err := database.BeginTxx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	secret, err := GetJWTSecret(ctx, tx)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if secret != "configured-elsewhere" {
		t.Errorf("expected stored secret to win, got %q", secret)
	}
}
