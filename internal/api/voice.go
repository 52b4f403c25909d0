package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"lingomap/pkg/catalog"
	"lingomap/pkg/model"
	"lingomap/pkg/playback"
	"lingomap/pkg/voice"
)

// maxCompare bounds a side-by-side comparison.
const maxCompare = 8

// VoiceHandler handles voice sample playback.
type VoiceHandler struct {
	svc   *playback.Service
	chain *voice.Chain
	cat   *catalog.Catalog
}

// NewVoiceHandler creates a new VoiceHandler.
func NewVoiceHandler(svc *playback.Service, chain *voice.Chain, cat *catalog.Catalog) *VoiceHandler {
	return &VoiceHandler{svc: svc, chain: chain, cat: cat}
}

// SpeakRequest is a voice request. With Sample set, an empty text is
// replaced by the variant's sample text.
type SpeakRequest struct {
	model.VoiceRequest
	Sample bool `json:"sample,omitempty"`
}

// SpeakResponse reports the outcome and the playback generation it belongs to.
type SpeakResponse struct {
	model.VoiceResult
	Generation uint64 `json:"generation"`
	Applied    bool   `json:"applied"` // false if replaced or stopped meanwhile
}

// HandleSpeak handles POST /api/voice/speak
func (h *VoiceHandler) HandleSpeak(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.fillSample(&req)

	res, ticket, applied, err := h.svc.Play(r.Context(), req.VoiceRequest)
	if err != nil {
		writeError(w, callerStatus(err), err.Error())
		return
	}
	if !applied {
		slog.Debug("Voice result superseded", "identity", ticket.Identity.Key(), "generation", ticket.Generation)
	}
	writeJSON(w, http.StatusOK, SpeakResponse{VoiceResult: res, Generation: ticket.Generation, Applied: applied})
}

func (h *VoiceHandler) fillSample(req *SpeakRequest) {
	if !req.Sample || strings.TrimSpace(req.Text) != "" {
		return
	}
	if rec, ok := h.cat.ByID(req.LanguageID); ok {
		req.Text = catalog.SampleText(rec, req.DialectName)
	}
}

// CompareRequest lists the variants to synthesize side by side.
type CompareRequest struct {
	Requests []SpeakRequest `json:"requests"`
}

// CompareItem is one comparison outcome.
type CompareItem struct {
	Request model.VoiceRequest `json:"request"`
	Result  model.VoiceResult  `json:"result"`
	Error   string             `json:"error,omitempty"`
}

// HandleCompare handles POST /api/voice/compare. Comparisons do not touch
// playback state.
func (h *VoiceHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Requests) == 0 || len(req.Requests) > maxCompare {
		writeError(w, http.StatusBadRequest, "between 1 and 8 requests required")
		return
	}

	reqs := make([]model.VoiceRequest, len(req.Requests))
	for i := range req.Requests {
		h.fillSample(&req.Requests[i])
		reqs[i] = req.Requests[i].VoiceRequest
	}

	outcomes := h.chain.Compare(r.Context(), reqs)
	items := make([]CompareItem, len(outcomes))
	for i, o := range outcomes {
		items[i] = CompareItem{Request: o.Request, Result: o.Result, Error: o.Error}
	}
	writeJSON(w, http.StatusOK, items)
}

// StopRequest names the identity to stop. All stops everything.
type StopRequest struct {
	model.Identity
	All bool `json:"all,omitempty"`
}

// HandleStop handles POST /api/voice/stop
func (h *VoiceHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	var req StopRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mgr := h.svc.Manager()
	if req.All {
		mgr.StopAll()
		writeJSON(w, http.StatusOK, mgr.Snapshot())
		return
	}
	if req.LanguageID == "" {
		writeError(w, http.StatusBadRequest, "languageId is required")
		return
	}
	writeJSON(w, http.StatusOK, mgr.Stop(req.Identity))
}

// FinishedRequest reports that the client finished playing a generation.
type FinishedRequest struct {
	model.Identity
	Generation uint64 `json:"generation"`
}

// HandleFinished handles POST /api/voice/finished
func (h *VoiceHandler) HandleFinished(w http.ResponseWriter, r *http.Request) {
	var req FinishedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mgr := h.svc.Manager()
	applied := mgr.Finished(req.Identity, req.Generation)
	writeJSON(w, http.StatusOK, map[string]any{
		"applied": applied,
		"state":   mgr.State(req.Identity),
	})
}

// HandleState handles GET /api/voice/state[?languageId=&dialectName=]
func (h *VoiceHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	mgr := h.svc.Manager()
	q := r.URL.Query()
	if id := q.Get("languageId"); id != "" {
		writeJSON(w, http.StatusOK, mgr.State(model.Identity{LanguageID: id, DialectName: q.Get("dialectName")}))
		return
	}
	writeJSON(w, http.StatusOK, mgr.Snapshot())
}

// HandleAudio handles GET /api/audio/{handle}
func (h *VoiceHandler) HandleAudio(w http.ResponseWriter, r *http.Request) {
	clip, ok := h.chain.Store().Get(r.PathValue("handle"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown or expired audio handle")
		return
	}
	w.Header().Set("Content-Type", contentType(clip.Format))
	w.Header().Set("Cache-Control", "private, max-age=600")
	w.Header().Set("X-Voice-Provider", clip.Provider)
	http.ServeContent(w, r, "", clip.Created, bytes.NewReader(clip.Data))
}

func contentType(format string) string {
	switch format {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	}
	return "application/octet-stream"
}

// callerStatus maps caller errors to HTTP status codes.
func callerStatus(err error) int {
	switch {
	case errors.Is(err, voice.ErrUnknownLanguage):
		return http.StatusNotFound
	case errors.Is(err, voice.ErrEmptyText), errors.Is(err, voice.ErrTextTooLong):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
