package api

import (
	"net/http"
	"strings"

	"lingomap/pkg/dialect"
	"lingomap/pkg/model"
)

// DialectHandler exposes dialect detection and text conversion.
type DialectHandler struct {
	det   *dialect.Detector
	rules *dialect.Rules
}

// NewDialectHandler creates a new DialectHandler.
func NewDialectHandler(det *dialect.Detector, rules *dialect.Rules) *DialectHandler {
	return &DialectHandler{det: det, rules: rules}
}

// DetectRequest carries the text to classify.
type DetectRequest struct {
	Text string `json:"text"`
}

// HandleDetect handles POST /api/dialects/detect
func (h *DialectHandler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is empty")
		return
	}
	writeJSON(w, http.StatusOK, h.det.Detect(req.Text))
}

// ConvertRequest asks for the dialect rendering of a text.
type ConvertRequest struct {
	LanguageID  string `json:"languageId"`
	DialectName string `json:"dialectName"`
	Text        string `json:"text"`
}

// ConvertResponse is the text a provider would receive.
type ConvertResponse struct {
	Text          string                 `json:"text"`
	Locale        string                 `json:"locale"`
	Prosody       model.Prosody          `json:"prosody"`
	Substitutions []dialect.Substitution `json:"substitutions"`
}

// HandleConvert handles POST /api/dialects/convert
func (h *DialectHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.LanguageID == "" {
		writeError(w, http.StatusBadRequest, "languageId is required")
		return
	}
	subs := h.rules.Substitutions(req.LanguageID, req.DialectName)
	if subs == nil {
		subs = []dialect.Substitution{}
	}
	writeJSON(w, http.StatusOK, ConvertResponse{
		Text:          h.rules.ResolveText(req.LanguageID, req.DialectName, req.Text),
		Locale:        h.rules.ResolveLocale(req.LanguageID, req.DialectName),
		Prosody:       h.rules.ResolveProsody(req.LanguageID, req.DialectName, nil),
		Substitutions: subs,
	})
}

// HandleList handles GET /api/dialects
func (h *DialectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.det.Dialects())
}
