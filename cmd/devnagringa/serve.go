package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devnagringa/calculadoras/internal/auth"
	"github.com/devnagringa/calculadoras/internal/billing"
	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/config"
	"github.com/devnagringa/calculadoras/internal/database"
	"github.com/devnagringa/calculadoras/internal/newsletter"
	"github.com/devnagringa/calculadoras/internal/server"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// defaultProducts is the credit catalog seeded at startup
func defaultProducts() []billing.Product {
	return []billing.Product{
		{ID: "relatorios-5", Name: "Pacote com 5 relatórios detalhados", Price: decimal.RequireFromString("19.90"), Credits: 5, Active: true},
		{ID: "relatorios-20", Name: "Pacote com 20 relatórios detalhados", Price: decimal.RequireFromString("59.90"), Credits: 20, Active: true},
	}
}

// newServerLogger builds the JSON logger used by the HTTP server
func newServerLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// stores groups what serve persists, in postgres or in memory
type stores struct {
	billing    billing.Store
	newsletter newsletter.Store
	db         *gorm.DB
}

func openStores(ctx context.Context, cfg *config.ServerConfig, memory bool, log logrus.FieldLogger) (*stores, error) {
	if memory {
		log.Warn("using in-memory stores, data is lost on exit")
		return &stores{
			billing:    billing.NewMemoryStore(defaultProducts()...),
			newsletter: newsletter.NewMemoryStore(),
		}, nil
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	billingStore := billing.NewGormStore(db)
	if err := billingStore.Migrate(ctx); err != nil {
		return nil, err
	}
	for _, p := range defaultProducts() {
		p := p
		if err := billingStore.SaveProduct(ctx, &p); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	newsletterStore := newsletter.NewGormStore(db)
	if err := newsletterStore.Migrate(ctx); err != nil {
		return nil, err
	}

	return &stores{billing: billingStore, newsletter: newsletterStore, db: db}, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: "Serves the calculators, the preview card, billing and the newsletter. " +
			"Settings come from the environment or a .env file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			memory, _ := cmd.Flags().GetBool("memory")
			provider, _ := cmd.Flags().GetString("provider")

			var envFiles []string
			if envFile != "" {
				envFiles = append(envFiles, envFile)
			}
			cfg, err := config.LoadServerConfig(envFiles...)
			if err != nil {
				return err
			}
			log := newServerLogger(cfg.LogLevel)

			engine := calculation.NewEngine()
			if cfg.RulesFile != "" {
				rules, err := config.NewInputParser().LoadFromFile(cfg.RulesFile)
				if err != nil {
					return err
				}
				engine = calculation.NewEngineWithRules(*rules)
			}
			engine.SetLogger(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := openStores(ctx, cfg, memory, log)
			if err != nil {
				return err
			}
			if st.db != nil {
				defer database.Close(st.db)
			}

			if cfg.WebhookSecret == "" {
				log.Warn("PAYMENT_WEBHOOK_SECRET not set, payment webhooks will be rejected")
			}
			gateway := billing.NewHTTPGateway(provider, cfg.PaymentBaseURL, cfg.PaymentAPIKey, cfg.PaymentTimeout)
			billingService := billing.NewService(st.billing, gateway, log.WithField("component", "billing"), cfg.PendingTTL)
			scheduler, err := billing.NewScheduler(billingService, cfg.ExpirySchedule, nil)
			if err != nil {
				return err
			}

			mailer := &newsletter.SMTPMailer{
				Addr:     cfg.SMTPAddr,
				Host:     cfg.SMTPHost,
				Username: cfg.SMTPUser,
				Password: cfg.SMTPPassword,
				From:     cfg.MailFrom,
			}
			newsletterService := newsletter.NewService(st.newsletter, mailer, log.WithField("component", "newsletter"), cfg.PublicURL+"/api/newsletter/confirm")

			api := server.New(server.Config{
				Engine:         engine,
				Billing:        billingService,
				WebhookSecret:  cfg.WebhookSecret,
				Newsletter:     newsletterService,
				Issuer:         auth.NewIssuer(cfg.JWTSecret, 0),
				Logger:         log,
				AllowedOrigins: cfg.AllowedOrigins,
			})

			srv := &http.Server{
				Addr:         cfg.Addr(),
				Handler:      api.Handler(),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			scheduler.Start()
			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", srv.Addr).Info("server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				scheduler.Stop(context.Background())
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("graceful shutdown failed")
			}
			scheduler.Stop(shutdownCtx)
			return nil
		},
	}
	cmd.Flags().String("env-file", "", "Load settings from this file instead of ./.env")
	cmd.Flags().Bool("memory", false, "Keep purchases and subscribers in memory instead of postgres")
	cmd.Flags().String("provider", "gateway", "Payment provider name used in webhook URLs")
	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user",
		Long:  "Signs a token with JWT_SECRET for calling the checkout and credits endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			email, _ := cmd.Flags().GetString("email")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			token, err := auth.NewIssuer(secret, ttl).Issue(userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("user", "", "User ID stored in the token")
	cmd.Flags().String("email", "", "E-mail stored in the token")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
