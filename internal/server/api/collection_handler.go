package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/services"
)

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.collections.ListCollections(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	collection, err := s.collections.GetCollection(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Collection with ID %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {

	var req models.CollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection, err := s.collections.CreateCollection(r.Context(), req)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info(r.Context(), "Created collection", "id", collection.ID, "name", collection.Name)
	writeJSON(w, http.StatusCreated, collection)
}

func (s *Server) updateCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.CollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection, err := s.collections.UpdateCollection(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Collection with ID %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Failed to update collection")
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.collections.DeleteCollection(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Collection %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info(r.Context(), "Deleted collection", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listQAPairs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pairs, err := s.collections.ListQAPairs(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Collection %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, pairs)
}

func (s *Server) createQAPair(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.QAPairCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	createdBy := ""
	if user := userFromContext(r.Context()); user != nil {
		createdBy = user.Username
	}

	pair, err := s.collections.CreateQAPair(r.Context(), id, req, createdBy)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Collection with ID %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, pair)
}

func (s *Server) getQAPair(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pair, err := s.collections.GetQAPair(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("QA pair with ID %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) updateQAPair(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.QAPairUpdate
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Failed to process request: %v", err))
		return
	}

	pair, err := s.collections.UpdateQAPair(r.Context(), id, patch, userFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, fmt.Sprintf(
				"Invalid status value. Must be one of: %s", strings.Join(services.ValidStatuses(), ", ")))
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("QA pair with ID %s not found", id))
		default:
			s.logger.Error(r.Context(), err.Error())
			writeError(w, http.StatusInternalServerError, "Failed to update QA pair")
		}
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) deleteQAPair(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.collections.DeleteQAPair(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("QA pair with ID %s not found", id))
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
