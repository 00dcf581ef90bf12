// Package services содержит логику отправки почтовых уведомлений
// фермерам о продаже их углеродных кредитов.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	smtplib "github.com/agrigrow/agrigrow-backend/internal/lib/smtp"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// NotifierService отправляет письма по событиям из брокера.
type NotifierService struct {
	transport smtplib.TransportInterface
	log       *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(transport smtplib.TransportInterface, log *slog.Logger) *NotifierService {
	return &NotifierService{
		transport: transport,
		log:       log,
	}
}

// SendCreditSoldNotification разбирает событие продажи кредита
// и отправляет письмо фермеру-владельцу.
func (s *NotifierService) SendCreditSoldNotification(body []byte) error {
	var event models.CreditSoldEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{event.OwnerEmail}
	subject := "Ваши углеродные кредиты проданы"
	bodyText := fmt.Sprintf(`Здравствуйте, %s!

Ваши углеродные кредиты (%.2f т CO2) куплены предприятием %s.
Сумма сделки: %.2f.

Спасибо, что пользуетесь AGRIGROW.`,
		event.OwnerName, event.Amount, event.BuyerName, event.Amount*event.Price)

	return s.sendEmail(to, subject, bodyText)
}

func (s *NotifierService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
