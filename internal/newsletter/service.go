package newsletter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service signs people up and confirms their address
type Service struct {
	store      Store
	mailer     Mailer
	log        logrus.FieldLogger
	confirmURL string
	now        func() time.Time
}

// NewService creates a newsletter service. confirmURL receives the token
// as the "token" query parameter.
func NewService(store Store, mailer Mailer, log logrus.FieldLogger, confirmURL string) *Service {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Service{store: store, mailer: mailer, log: log, confirmURL: confirmURL, now: time.Now}
}

// Subscribe registers address and mails a confirmation link. Subscribing
// again before confirming resends the link; confirmed addresses are left
// alone. created is false when the address was already known.
func (s *Service) Subscribe(ctx context.Context, address, name string) (sub *Subscriber, created bool, err error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(address))
	if err != nil {
		return nil, false, ErrInvalidEmail
	}
	addr := strings.ToLower(parsed.Address)
	name = strings.TrimSpace(name)
	if name == "" {
		name = parsed.Name
	}

	existing, err := s.store.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		if existing.Confirmed() {
			return existing, false, nil
		}
		sub = existing
	case errors.Is(err, ErrNotFound):
		sub = &Subscriber{Email: addr, Name: name, Token: uuid.NewString(), CreatedAt: s.now()}
		if err := s.store.Create(ctx, sub); err != nil {
			return nil, false, err
		}
		created = true
	default:
		return nil, false, err
	}

	if err := s.mailer.Send(ctx, s.confirmation(sub)); err != nil {
		s.log.WithError(err).WithField("email", sub.Email).Error("confirmation mail failed")
		return sub, created, fmt.Errorf("send confirmation: %w", err)
	}
	s.log.WithFields(logrus.Fields{"email": sub.Email, "created": created}).Info("confirmation mail sent")
	return sub, created, nil
}

// Confirm marks the subscriber owning token as confirmed
func (s *Service) Confirm(ctx context.Context, token string) (*Subscriber, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNotFound
	}
	sub, err := s.store.Confirm(ctx, token, s.now())
	if err != nil {
		return nil, err
	}
	s.log.WithField("email", sub.Email).Info("subscription confirmed")
	return sub, nil
}

func (s *Service) confirmation(sub *Subscriber) Message {
	greeting := "Olá"
	if sub.Name != "" {
		greeting += ", " + sub.Name
	}
	link := s.confirmURL + "?token=" + sub.Token
	return Message{
		To:      sub.Email,
		Subject: "Confirme sua inscrição na newsletter Dev na Gringa",
		Text: greeting + "!\n\n" +
			"Falta só um passo para receber a newsletter. Confirme seu e-mail no link abaixo:\n\n" +
			link + "\n\n" +
			"Se você não pediu a inscrição, ignore esta mensagem.\n\nDev na Gringa",
	}
}
