package handler

import (
	"net/http"

	"contract-analyzer/internal/rules"

	"github.com/gorilla/mux"
)

// LawHandler serves the curated law catalog, topics and trusted
// resource links.
type LawHandler struct {
	ruleset *rules.Ruleset
}

func NewLawHandler(ruleset *rules.Ruleset) *LawHandler {
	return &LawHandler{ruleset: ruleset}
}

func (h *LawHandler) GetLaws(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"laws": h.ruleset.Laws})
}

func (h *LawHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": h.ruleset.Topics})
}

// GetAlternatives returns the trusted resources for a category,
// falling back to general resources for unknown categories.
func (h *LawHandler) GetAlternatives(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	writeJSON(w, http.StatusOK, h.ruleset.ResourcesFor(category))
}
