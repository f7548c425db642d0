package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gauthierbraillon/contentmix/internal/dashboard"
	"github.com/gauthierbraillon/contentmix/internal/export"
	"github.com/gauthierbraillon/contentmix/internal/pagination"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.html", pageData{Title: "Home", Active: "home"})
}

func (s *Server) handlePlaceholder(platform string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, http.StatusOK, "placeholder.html", pageData{
			Title:    platform,
			Active:   platform,
			Platform: platform,
		})
	}
}

func (s *Server) handleYouTube(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query())
	view := s.service.BuildView(s.snapshot(r), nil, page, nil, s.now())
	s.renderYouTube(w, http.StatusOK, view)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	now := s.now()
	form := dashboard.FormFromValues(r.PostForm)
	params, err := form.Params(now)
	if err != nil {
		notice := &dashboard.Notice{Level: dashboard.LevelError, Message: dashboard.UserMessage(err)}
		view := s.service.BuildView(s.snapshot(r), &form, 1, notice, now)
		s.renderYouTube(w, http.StatusUnprocessableEntity, view)
		return
	}

	_, state := s.sessionState(w, r, true)
	result := s.service.Submit(r.Context(), state, params)
	if result.Outcome == dashboard.OutcomeResults {
		http.Redirect(w, r, pageLink(1), http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	if result.Outcome == dashboard.OutcomeInvalid {
		status = http.StatusUnprocessableEntity
	}
	view := s.service.BuildView(state.Snapshot(), &form, 1, result.Notice, now)
	s.renderYouTube(w, status, view)
}

func (s *Server) renderYouTube(w http.ResponseWriter, status int, view dashboard.View) {
	s.render(w, status, "youtube.html", pageData{
		Title:  "YouTube",
		Active: "YouTube",
		View:   view,
		Chart:  newChart(view.Summary),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(r)
	if !snap.HasResults() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", export.CSVContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CSVFilename+`"`)
	if err := export.WriteCSV(w, snap.Results); err != nil {
		slog.Error("failed to write csv export", slog.Any("error", err))
	}
}

func (s *Server) handleExportAtom(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(r)
	if !snap.HasResults() || snap.Params == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", export.AtomContentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+export.AtomFilename+`"`)
	if err := export.WriteAtom(w, *snap.Params, snap.Results, s.now()); err != nil {
		slog.Error("failed to write atom feed", slog.Any("error", err))
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		s.store.Destroy(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, youtubePath, http.StatusSeeOther)
}

func dateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
