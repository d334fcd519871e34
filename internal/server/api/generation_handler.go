package api

import (
	"net/http"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {

	var req models.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	list, err := s.generator.Models(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
