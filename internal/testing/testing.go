// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

// OpenTestDB opens a migrated SQLite database at path and closes it when the test ends.
//
// Use ":memory:" for an isolated single-connection database, or [TempDBPath] when the test needs concurrent connections.
func OpenTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: path, BusyTimeoutMS: 5000})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// TempDBPath returns a database file path inside the test's temporary directory.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "setlists.db")
}

// FakeSetlistClient is an in-memory stand-in for the setlist API.
//
// Reorder applies the ordering to Songs unless ReorderErr is set. Every submitted ordering is recorded.
type FakeSetlistClient struct {
	mu         sync.Mutex
	Songs      []models.SetlistSong
	MembersErr error
	ReorderErr error
	Submitted  []models.Ordering
}

func (f *FakeSetlistClient) Members(ctx context.Context, setlistID int64) ([]models.SetlistSong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.MembersErr != nil {
		return nil, f.MembersErr
	}
	return slices.Clone(f.Songs), nil
}

func (f *FakeSetlistClient) Reorder(ctx context.Context, setlistID int64, ordering models.Ordering) ([]models.SetlistSong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Submitted = append(f.Submitted, slices.Clone(ordering))
	if f.ReorderErr != nil {
		return nil, f.ReorderErr
	}

	byID := make(map[int64]models.SetlistSong, len(f.Songs))
	for _, s := range f.Songs {
		byID[s.ID] = s
	}

	next := make([]models.SetlistSong, 0, len(ordering))
	for i, id := range ordering {
		s, ok := byID[id]
		if !ok {
			return nil, shared.ErrOrderingMismatch
		}
		s.Position = i
		next = append(next, s)
	}
	f.Songs = next
	return slices.Clone(next), nil
}

// SubmittedCount returns how many orderings have been submitted.
func (f *FakeSetlistClient) SubmittedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Submitted)
}

// SetlistSongs builds an ordered listing with the given IDs, titled "Song A", "Song B", and so on.
func SetlistSongs(ids ...int64) []models.SetlistSong {
	songs := make([]models.SetlistSong, len(ids))
	for i, id := range ids {
		songs[i] = models.SetlistSong{
			Song:     models.Song{ID: id, Title: "Song " + string(rune('A'+i)), Body: "lyrics"},
			Position: i,
		}
	}
	return songs
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
