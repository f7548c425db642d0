// Package web serves the contentmix dashboard over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gauthierbraillon/contentmix/internal/dashboard"
	"github.com/gauthierbraillon/contentmix/internal/pagination"
	"github.com/gauthierbraillon/contentmix/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	youtubePath       = "/youtube"
	sessionCookieName = "contentmix_session"
	sweepInterval     = time.Minute
	shutdownTimeout   = 5 * time.Second
)

// Server renders the dashboard pages and keeps one session per browser.
type Server struct {
	service *dashboard.Service
	store   *session.Store
	now     func() time.Time
	pages   map[string]*template.Template
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithClock sets the clock used for form defaults, date checks and feed timestamps.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a dashboard server.
func NewServer(service *dashboard.Service, store *session.Store, opts ...ServerOption) (*Server, error) {
	s := &Server{
		service: service,
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	s.pages = pages
	return s, nil
}

// Handler returns the HTTP routes of the dashboard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /twitter", s.handlePlaceholder("Twitter"))
	mux.HandleFunc("GET /linkedin", s.handlePlaceholder("LinkedIn"))
	mux.HandleFunc("GET /medium", s.handlePlaceholder("Medium"))
	mux.HandleFunc("GET "+youtubePath, s.handleYouTube)
	mux.HandleFunc("POST "+youtubePath, s.handleSubmit)
	mux.HandleFunc("GET "+youtubePath+"/export.csv", s.handleExportCSV)
	mux.HandleFunc("GET "+youtubePath+"/feed.atom", s.handleExportAtom)
	mux.HandleFunc("POST "+youtubePath+"/reset", s.handleReset)
	return mux
}

// ListenAndServe serves the dashboard on addr until ctx is cancelled. ready,
// if non-nil, is called with the dashboard URL once the listener is bound.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(url string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.store.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	url := "http://" + ln.Addr().String() + youtubePath
	slog.Info("dashboard listening", slog.String("url", url))
	if ready != nil {
		ready(url)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	slog.Info("dashboard stopped")
	return nil
}

// sessionState returns the caller's session. With create set, a missing or
// expired session is replaced by a new one and its cookie is issued.
func (s *Server) sessionState(w http.ResponseWriter, r *http.Request, create bool) (string, *session.State) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if state, ok := s.store.Get(c.Value); ok {
			return c.Value, state
		}
	}
	if !create {
		return "", nil
	}

	id, state := s.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, state
}

func (s *Server) snapshot(r *http.Request) session.Snapshot {
	_, state := s.sessionState(nil, r, false)
	if state == nil {
		return session.Snapshot{}
	}
	return state.Snapshot()
}

func pageLink(page int) string {
	return pagination.Link(youtubePath, page)
}
