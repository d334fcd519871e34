package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/services"
)

func (s *Server) search(w http.ResponseWriter, r *http.Request) {

	var req models.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.retrieval.Search(r.Context(), req)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// searchByProvider is the query-parameter variant of search: one provider,
// no paging envelope.
func (s *Server) searchByProvider(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := q.Get("query")
	provider := q.Get("provider")
	if provider == "" {
		provider = "memory"
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	docs, err := s.retrieval.SearchByProvider(r.Context(), provider, query, limit)
	if err != nil {
		if errors.Is(err, services.ErrUnknownProvider) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid provider: %s", provider))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	writeJSON(w, http.StatusOK, s.retrieval.Sources(page, limit))
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.retrieval.Templates())
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tpl, err := s.retrieval.Template(id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Template with ID %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}
