package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the setlist service.
//
// Routes returns [http.ServeMux] patterns ("METHOD /path/{param}"); ServeHTTP dispatches on [http.Request.Pattern].
type Handler interface {
	http.Handler
	Routes() []string
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	// Use adds middleware to the router's middleware stack
	Use(middleware ...Middleware)
	// Handle registers a handler for the specified method and path
	Handle(method, path string, handler http.Handler)
	// Handler registers a custom Handler implementation
	Handler(handler Handler)
	// ServeHTTP implements http.Handler for the entire router
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// MembershipService is the domain API the members handler needs.
type MembershipService interface {
	ListSetlistSongs(ctx context.Context, setlistID int64) ([]models.SetlistSong, error)
	AddToSetlist(ctx context.Context, setlistID, songID int64) (*models.SetlistSong, error)
	RemoveFromSetlist(ctx context.Context, setlistID, songID int64) error
	Reorder(ctx context.Context, setlistID int64, ordering models.Ordering) ([]models.SetlistSong, error)
}

// CatalogService is the domain API the song, setlist, and health handlers need.
type CatalogService interface {
	Ping(ctx context.Context) error

	ListSongs(ctx context.Context) ([]*models.Song, error)
	GetSong(ctx context.Context, id int64) (*models.Song, error)
	CreateSong(ctx context.Context, title, body string) (*models.Song, error)
	UpdateSong(ctx context.Context, id int64, title, body string) (*models.Song, error)
	DeleteSong(ctx context.Context, id int64) error

	ListSetlists(ctx context.Context) ([]*models.Setlist, error)
	GetSetlist(ctx context.Context, id int64) (*models.Setlist, error)
	CreateSetlist(ctx context.Context, name string) (*models.Setlist, error)
	RenameSetlist(ctx context.Context, id int64, name string) (*models.Setlist, error)
	DeleteSetlist(ctx context.Context, id int64) error
}

// Options configures [New] and [NewHandler].
type Options struct {
	Config  shared.ServerConfig
	Members MembershipService
	Catalog CatalogService
	Logger  *log.Logger
}

// NewHandler builds the full API handler: routes, per-route middleware, and CORS.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	router := NewBasicRouter()
	router.Use(RequestLogger(logger), Recoverer(logger))
	if opts.Config.RateLimit > 0 {
		burst := max(opts.Config.RateBurst, 1)
		router.Use(RateLimit(rate.NewLimiter(rate.Limit(opts.Config.RateLimit), burst)))
	}

	router.Handler(NewHealthHandler(opts.Catalog))
	router.Handler(NewMembersHandler(opts.Members, logger))
	router.Handler(NewSongsHandler(opts.Catalog, logger))
	router.Handler(NewSetlistsHandler(opts.Catalog, logger))

	return CORS(opts.Config.AllowedOrigins)(router)
}

// New creates an [http.Server] for the API, configured from opts.Config.
func New(opts Options) *http.Server {
	return &http.Server{
		Addr:              opts.Config.Addr(),
		Handler:           NewHandler(opts),
		ReadTimeout:       opts.Config.ReadTimeout(),
		ReadHeaderTimeout: opts.Config.ReadTimeout(),
		WriteTimeout:      opts.Config.WriteTimeout(),
	}
}
