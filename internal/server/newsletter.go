package server

import (
	"errors"
	"net/http"

	"github.com/devnagringa/calculadoras/internal/newsletter"
)

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeStrict(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	sub, created, err := s.newsletter.Subscribe(r.Context(), req.Email, req.Name)
	if errors.Is(err, newsletter.ErrInvalidEmail) {
		writeError(w, http.StatusBadRequest, "e-mail inválido")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("newsletter subscribe failed")
		writeError(w, http.StatusInternalServerError, "não foi possível concluir a inscrição")
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	writeJSON(w, code, map[string]any{
		"email":     sub.Email,
		"confirmed": sub.Confirmed(),
	})
}

func (s *Server) confirm(w http.ResponseWriter, r *http.Request) {
	sub, err := s.newsletter.Confirm(r.Context(), r.URL.Query().Get("token"))
	if errors.Is(err, newsletter.ErrNotFound) {
		writeError(w, http.StatusNotFound, "link de confirmação inválido")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("newsletter confirm failed")
		writeError(w, http.StatusInternalServerError, "não foi possível confirmar a inscrição")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"email": sub.Email, "confirmed": true})
}
