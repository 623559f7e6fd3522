// Package web serves the uptime/status endpoint used by external
// monitoring.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streamnotify/internal/config"
)

const version = "1.0.0"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>StreamNotify</title></head>
<body>
<h1>StreamNotify</h1>
<p>Uptime: {{.Uptime}}</p>
<ul>
<li>Discord: {{if .Discord}}configured{{else}}missing{{end}}</li>
<li>Twitch: {{if .Twitch}}configured{{else}}missing{{end}}</li>
<li>YouTube: {{if .YouTube}}configured{{else}}missing{{end}}</li>
<li>TikTok: {{if .TikTok}}configured{{else}}missing{{end}}</li>
</ul>
</body>
</html>
`))

// Server exposes the status page, health JSON and Prometheus metrics
type Server struct {
	cfg       *config.Config
	startTime time.Time
	http      *http.Server
}

// New creates the monitoring server
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:       cfg,
		startTime: time.Now(),
	}

	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/api", s.handleAPI)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting web server", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	}
}

// Uptime returns the formatted process uptime
func (s *Server) Uptime() string {
	return FormatUptime(time.Since(s.startTime))
}

// FormatUptime renders a duration as "{days}j {hours}h {minutes}m",
// dropping to progressively shorter units for young processes
func FormatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dj %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, map[string]any{
		"Uptime":  s.Uptime(),
		"Discord": s.cfg.DiscordToken != "",
		"Twitch":  s.cfg.TwitchConfigured(),
		"YouTube": s.cfg.YouTubeConfigured(),
		"TikTok":  s.cfg.TikTokConfigured(),
	})
	if err != nil {
		slog.Error("Failed to render status page", "error", err)
	}
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "The bot started successfully."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "online",
		"uptime":  s.Uptime(),
		"version": version,
		"services": map[string]bool{
			"web":     true,
			"discord": s.cfg.DiscordToken != "",
			"twitch":  s.cfg.TwitchConfigured(),
			"youtube": s.cfg.YouTubeConfigured(),
			"tiktok":  s.cfg.TikTokConfigured(),
		},
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
