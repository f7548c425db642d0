package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/dashboard"
)

const (
	chartWidth  = 720
	chartHeight = 240
	chartGap    = 2
)

var pageFiles = []string{"home.html", "placeholder.html", "youtube.html"}

// pageData is the model every template receives.
type pageData struct {
	Title    string
	Active   string
	Platform string
	View     dashboard.View
	Chart    chart
}

type chart struct {
	Width    int
	Height   int
	Timezone string
	Bars     []chartBar
}

type chartBar struct {
	X, Y, Width, Height float64
	Label               string
	Count               int
	Delta               int
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"pageLink": pageLink,
		"date":     dateTime,
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	tmpl, ok := s.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("failed to render page", slog.String("page", name), slog.Any("error", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// newChart lays out one bar per day, scaled to the busiest day.
func newChart(s aggregator.Summary) chart {
	c := chart{Width: chartWidth, Height: chartHeight}
	if s.Location != nil {
		c.Timezone = s.Location.String()
	}
	if len(s.Daily) == 0 {
		return c
	}

	highest := float64(s.MaxCount())
	slot := float64(chartWidth) / float64(len(s.Daily))
	for i, d := range s.Daily {
		h := float64(d.Count) / highest * chartHeight
		c.Bars = append(c.Bars, chartBar{
			X:      float64(i) * slot,
			Y:      chartHeight - h,
			Width:  max(slot-chartGap, 1),
			Height: h,
			Label:  d.Date.Format("2006-01-02"),
			Count:  d.Count,
			Delta:  d.DeltaFromPreviousDay,
		})
	}
	return c
}
