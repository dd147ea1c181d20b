package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDSN(t *testing.T) {
	tc := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "file path",
			cfg:  DatabaseConfig{Path: "./setlists.db", BusyTimeoutMS: 250},
			want: "./setlists.db?_foreign_keys=on&_busy_timeout=250&_txlock=immediate",
		},
		{
			name: "existing query string",
			cfg:  DatabaseConfig{Path: "file:test.db?cache=shared"},
			want: "file:test.db?cache=shared&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.cfg); got != tt.want {
				t.Errorf("DSN() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDatabase(t *testing.T) {
	t.Run("enforces foreign keys", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "fk.db"))
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		var enabled int
		if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("failed to read pragma: %v", err)
		}
		if enabled != 1 {
			t.Errorf("expected foreign_keys=1, got %d", enabled)
		}
	})

	t.Run("memory database uses a single connection", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if got := db.Stats().MaxOpenConnections; got != 1 {
			t.Errorf("expected 1 max open connection, got %d", got)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := NewDatabase(""); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("ApplyLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		if err := ApplyLogLevel(logger, "warn"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger.GetLevel() != log.WarnLevel {
			t.Errorf("expected warn level, got %v", logger.GetLevel())
		}

		logger.Info("hidden")
		if strings.Contains(buf.String(), "hidden") {
			t.Error("info message should be filtered at warn level")
		}

		if err := ApplyLogLevel(logger, "loud"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for unknown level, got %v", err)
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "app.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("written")
	})
}

func TestErrorTaxonomy(t *testing.T) {
	tc := []struct {
		err  error
		kind error
	}{
		{ErrSetlistNotFound, ErrNotFound},
		{ErrSongNotFound, ErrNotFound},
		{ErrMembershipNotFound, ErrNotFound},
		{ErrAlreadyMember, ErrConflict},
		{ErrOrderingMismatch, ErrInvalidArgument},
		{ErrInvalidID, ErrInvalidArgument},
	}

	for _, tt := range tc {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("%v should wrap %v", tt.err, tt.kind)
			}
		})
	}
}
