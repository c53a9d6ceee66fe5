// Package notifier отправляет пользователям письма по доменным событиям:
// одобрение заявки тренера и запись оплаты.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/monoare/vigor-vista-server/internal/lib/smtp"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// envelope конверт события с типизированными данными.
type envelope[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Service формирует и отправляет письма.
type Service struct {
	dialer smtp.Dialer
	log    *slog.Logger
}

// New создает сервис уведомлений.
func New(dialer smtp.Dialer, log *slog.Logger) *Service {
	return &Service{dialer: dialer, log: log}
}

func decode[T any](op string, body []byte) (T, error) {
	var e envelope[T]
	if err := json.Unmarshal(body, &e); err != nil {
		return e.Data, fmt.Errorf("%s: unmarshal: %w", op, err)
	}
	return e.Data, nil
}

// TrainerApproved поздравляет пользователя с одобрением заявки.
func (s *Service) TrainerApproved(body []byte) error {
	const op = "notifier.TrainerApproved"

	profile, err := decode[models.TrainerProfile](op, body)
	if err != nil {
		return err
	}
	if profile.Email == "" {
		s.log.Warn("trainer event without email, skipped", slog.String("op", op))
		return nil
	}

	text := fmt.Sprintf("Здравствуйте, %s!\n\nВаша заявка одобрена, теперь вы тренер Vigor Vista.\n"+
		"Профиль уже виден на странице тренеров.", nameOr(profile.Name, profile.Email))
	if err := s.sendEmail([]string{profile.Email}, "Заявка тренера одобрена", text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PaymentRecorded отправляет пользователю квитанцию об оплате.
func (s *Service) PaymentRecorded(body []byte) error {
	const op = "notifier.PaymentRecorded"

	p, err := decode[models.Payment](op, body)
	if err != nil {
		return err
	}
	if p.Email == "" {
		s.log.Warn("payment event without email, skipped", slog.String("op", op))
		return nil
	}

	text := fmt.Sprintf("Здравствуйте, %s!\n\nОплата получена.\nСумма: %.2f\nПакет: %s\nТранзакция: %s",
		nameOr(p.Name, p.Email), p.Price, nameOr(p.Package, "-"), p.TransactionID)
	if err := s.sendEmail([]string{p.Email}, "Оплата получена", text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	if err := smtp.Send(s.dialer, smtp.Message{To: to, Subject: subject, Body: bodyText}); err != nil {
		return err
	}
	s.log.Info("email sent", slog.Any("to", to), slog.String("subject", subject))
	return nil
}
