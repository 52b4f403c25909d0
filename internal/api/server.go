package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lingomap/pkg/version"
)

// NewServer creates and configures the HTTP server.
// It accepts handlers for all API endpoints and a shutdownFunc for graceful shutdown.
func NewServer(addr string, langs *LanguageHandler, mapH *MapHandler, voiceH *VoiceHandler, dialects *DialectHandler, stats *StatsHandler, events *EventsHandler, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health Endpoint
	mux.HandleFunc("GET /health", handleHealth)

	// 2. Version, Stats and Logs
	mux.HandleFunc("GET /api/version", handleVersion)
	mux.Handle("GET /api/stats", stats)
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)

	// 3. Catalogue
	mux.HandleFunc("GET /api/languages", langs.HandleSearch)
	mux.HandleFunc("GET /api/languages/{id}", langs.HandleGet)
	mux.HandleFunc("GET /api/suggest", langs.HandleSuggest)
	mux.HandleFunc("GET /api/filters", langs.HandleFilters)

	// 4. Map
	mux.HandleFunc("GET /api/map/regions/{code}", mapH.HandleRegion)
	mux.HandleFunc("GET /api/map/legend", mapH.HandleLegend)
	mux.HandleFunc("GET /api/map/view", mapH.HandleLatestView)
	mux.HandleFunc("POST /api/map/view", mapH.HandleView)
	mux.HandleFunc("GET /api/map/geojson", mapH.HandleGeoJSON)
	mux.HandleFunc("GET /api/map/at", mapH.HandleAt)
	mux.HandleFunc("GET /api/map/nearby", mapH.HandleNearby)

	// 5. Voice
	mux.HandleFunc("POST /api/voice/speak", voiceH.HandleSpeak)
	mux.HandleFunc("POST /api/voice/compare", voiceH.HandleCompare)
	mux.HandleFunc("POST /api/voice/stop", voiceH.HandleStop)
	mux.HandleFunc("POST /api/voice/finished", voiceH.HandleFinished)
	mux.HandleFunc("GET /api/voice/state", voiceH.HandleState)
	mux.HandleFunc("GET /api/audio/{handle}", voiceH.HandleAudio)

	// 6. Dialects
	mux.HandleFunc("GET /api/dialects", dialects.HandleList)
	mux.HandleFunc("POST /api/dialects/detect", dialects.HandleDetect)
	mux.HandleFunc("POST /api/dialects/convert", dialects.HandleConvert)

	// 7. Events
	if events != nil {
		mux.Handle("GET /api/events", events)
	}

	// 8. Shutdown Endpoint
	if shutdown != nil {
		mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
			slog.Info("Graceful shutdown initiated via API")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("Shutting down...")); err != nil {
				slog.Error("Failed to write shutdown response", "error", err)
			}
			// let the response flush first
			go func() {
				time.Sleep(100 * time.Millisecond)
				shutdown()
			}()
		})
	}

	return &http.Server{
		Addr:        addr,
		Handler:     withRequestID(logRequests(recoverPanics(mux))),
		ReadTimeout: 15 * time.Second,
		// synthesis may take a full provider timeout per provider
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
