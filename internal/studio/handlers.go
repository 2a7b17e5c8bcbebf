package studio

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/css-player/internal/highlight"
)

// maxHighlightBytes bounds the body of a highlight request.
const maxHighlightBytes = 1 << 20

// exampleSummary is one entry of the example listing.
type exampleSummary struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

type highlightRequest struct {
	Source string `json:"source"`
	Lang   string `json:"lang"`
}

type highlightResponse struct {
	Markup string `json:"markup"`
}

func (s *Studio) handleListExamples(w http.ResponseWriter, r *http.Request) {
	list := []exampleSummary{}
	if s.library != nil {
		for _, ex := range s.library.List() {
			list = append(list, exampleSummary{
				Name:            ex.Name,
				Title:           ex.Title,
				Description:     ex.Description,
				DescriptionHTML: ex.DescriptionHTML,
			})
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Studio) handleGetExample(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.library == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "example not found"})
		return
	}
	ex, ok := s.library.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "example not found"})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Studio) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := s.hl.WriteCSS(w); err != nil {
		s.logger.Error("studio: writing highlight stylesheet", "error", err)
	}
}

func (s *Studio) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxHighlightBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	lang := strings.ToLower(req.Lang)
	if lang != highlight.LangCSS && lang != highlight.LangHTML {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lang must be css or html"})
		return
	}
	markup, err := s.hl.Highlight(req.Source, lang)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, highlightResponse{Markup: markup})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
