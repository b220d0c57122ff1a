// Package server exposes the calculators, the social preview image, billing
// and the newsletter over HTTP.
package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/devnagringa/calculadoras/internal/auth"
	"github.com/devnagringa/calculadoras/internal/billing"
	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/newsletter"
	"github.com/devnagringa/calculadoras/internal/preview"
)

// BillingService is the part of billing.Service the handlers use
type BillingService interface {
	Checkout(ctx context.Context, userID, email, productID string, method billing.PaymentMethod) (*billing.CheckoutResult, error)
	ConfirmPayment(ctx context.Context, provider string, event billing.WebhookEvent) (*billing.Purchase, error)
	Credits(ctx context.Context, userID string) (int, error)
}

// NewsletterService is the part of newsletter.Service the handlers use
type NewsletterService interface {
	Subscribe(ctx context.Context, email, name string) (*newsletter.Subscriber, bool, error)
	Confirm(ctx context.Context, token string) (*newsletter.Subscriber, error)
}

// Config wires the server's collaborators. Billing and Newsletter routes
// are only mounted when their service is set; Billing also needs Issuer.
// Webhooks must be signed with WebhookSecret; with no secret every webhook
// is refused.
type Config struct {
	Engine         *calculation.Engine
	Billing        BillingService
	WebhookSecret  string
	Newsletter     NewsletterService
	Issuer         *auth.Issuer
	Preview        *preview.Renderer
	Logger         logrus.FieldLogger
	AllowedOrigins []string
}

// Server holds the HTTP handlers
type Server struct {
	engine     *calculation.Engine
	billing    BillingService
	webhookKey string
	newsletter NewsletterService
	issuer     *auth.Issuer
	preview    *preview.Renderer
	log        logrus.FieldLogger
	origins    []string
}

// New creates a server, filling in a default engine, renderer and a
// discarding logger
func New(cfg Config) *Server {
	s := &Server{
		engine:     cfg.Engine,
		billing:    cfg.Billing,
		webhookKey: cfg.WebhookSecret,
		newsletter: cfg.Newsletter,
		issuer:     cfg.Issuer,
		preview:    cfg.Preview,
		log:        cfg.Logger,
		origins:    cfg.AllowedOrigins,
	}
	if s.engine == nil {
		s.engine = calculation.NewEngine()
	}
	if s.preview == nil {
		s.preview = preview.NewRenderer()
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	return s
}

// Routes builds the router
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger, s.recoverer)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/clt", s.calculateCLT).Methods(http.MethodGet)
	api.HandleFunc("/pj", s.calculatePJ).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.compare).Methods(http.MethodGet)
	api.HandleFunc("/breakeven", s.breakEven).Methods(http.MethodGet)
	api.HandleFunc("/investimentos", s.investment).Methods(http.MethodPost)

	r.HandleFunc("/og/clt.png", s.cltPreview).Methods(http.MethodGet)

	if s.billing != nil && s.issuer != nil {
		r.HandleFunc("/webhooks/{provider}", s.webhook).Methods(http.MethodPost)

		private := api.NewRoute().Subrouter()
		private.Use(s.issuer.Middleware)
		private.HandleFunc("/checkout", s.checkout).Methods(http.MethodPost)
		private.HandleFunc("/me/credits", s.credits).Methods(http.MethodGet)
	}

	if s.newsletter != nil {
		api.HandleFunc("/newsletter", s.subscribe).Methods(http.MethodPost)
		api.HandleFunc("/newsletter/confirm", s.confirm).Methods(http.MethodGet)
	}

	return r
}

// Handler is Routes behind CORS
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	})
	return c.Handler(s.Routes())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
