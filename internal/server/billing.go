package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/devnagringa/calculadoras/internal/auth"
	"github.com/devnagringa/calculadoras/internal/billing"
)

type checkoutRequest struct {
	ProductID string `json:"productId"`
	Method    string `json:"method"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token ausente")
		return
	}

	var req checkoutRequest
	if err := decodeStrict(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId é obrigatório")
		return
	}
	method, ok := billing.ParsePaymentMethod(req.Method)
	if !ok {
		writeError(w, http.StatusBadRequest, `method deve ser "pix" ou "card"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	res, err := s.billing.Checkout(ctx, userID, auth.Email(r.Context()), req.ProductID, method)
	if err != nil {
		s.checkoutError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) checkoutError(w http.ResponseWriter, err error) {
	var pe *billing.PaymentError
	switch {
	case errors.Is(err, billing.ErrNotFound):
		writeError(w, http.StatusNotFound, "produto não encontrado")
	case errors.Is(err, billing.ErrProductUnavailable):
		writeError(w, http.StatusConflict, "produto indisponível")
	case errors.Is(err, billing.ErrInvalidMethod):
		writeError(w, http.StatusBadRequest, `method deve ser "pix" ou "card"`)
	case errors.As(err, &pe):
		s.log.WithError(err).Warn("payment provider refused checkout")
		writeError(w, http.StatusBadGateway, pe.Message)
	default:
		s.log.WithError(err).Error("checkout failed")
		writeError(w, http.StatusInternalServerError, "erro ao iniciar o pagamento")
	}
}

// webhook acknowledges with 200 whenever the event was understood, so
// providers stop retrying replays of an already settled purchase. The raw
// body must carry a valid signature before anything is decoded.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	if err := billing.VerifySignature(s.webhookKey, body, r.Header.Get(billing.SignatureHeader)); err != nil {
		s.log.WithField("provider", provider).Warn("webhook with invalid signature rejected")
		writeError(w, http.StatusUnauthorized, "assinatura inválida")
		return
	}

	var event billing.WebhookEvent
	if err := decodeLoose(bytes.NewReader(body), &event); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	purchase, err := s.billing.ConfirmPayment(r.Context(), provider, event)
	switch {
	case errors.Is(err, billing.ErrNotFound):
		writeError(w, http.StatusNotFound, "compra não encontrada")
		return
	case err != nil:
		s.log.WithError(err).WithFields(logrus.Fields{"provider": provider, "external_id": event.ExternalID}).Error("webhook failed")
		writeError(w, http.StatusInternalServerError, "erro ao processar webhook")
		return
	}

	resp := map[string]any{"received": true}
	if purchase != nil {
		resp["status"] = purchase.Status
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) credits(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token ausente")
		return
	}
	n, err := s.billing.Credits(r.Context(), userID)
	if err != nil {
		s.log.WithError(err).Error("credits lookup failed")
		writeError(w, http.StatusInternalServerError, "erro ao consultar créditos")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"credits": n})
}
