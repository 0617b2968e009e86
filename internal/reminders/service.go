package reminders

import (
	"context"
	"time"

	"practice-backend/internal/mail"
	"practice-backend/internal/profiles"
	"practice-backend/internal/shared/metrics"
	"practice-backend/internal/shared/telemetry"
)

// UserResult records the outcome of one reminder send.
type UserResult struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Service sends reminder and welcome emails.
type Service struct {
	Profiles   *profiles.Service
	Mail       mail.Client
	AppBaseURL string
}

// NewService constructs a Service.
func NewService(profilesSvc *profiles.Service, mailClient mail.Client, appBaseURL string) *Service {
	return &Service{
		Profiles:   profilesSvc,
		Mail:       mailClient,
		AppBaseURL: appBaseURL,
	}
}

// SendDailyReminders emails every opted-in user who has not skipped today.
// One user's failure never blocks the rest: each outcome lands in the
// result list.
func (s *Service) SendDailyReminders(ctx context.Context) ([]UserResult, error) {
	recipients, err := s.Profiles.ReminderRecipients(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	results := make([]UserResult, 0, len(recipients))
	for _, p := range recipients {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := UserResult{UserID: p.ID, Email: p.Email}

		msg, err := mail.DailyReminderEmail(p.Email, p.Name, s.AppBaseURL, p.ID)
		if err == nil {
			err = s.Mail.Send(ctx, msg)
		}

		if err != nil {
			metrics.IncReminderEmailsFailed()
			result.Error = err.Error()
			telemetry.Error("reminders.send_failed", map[string]any{
				"user_id": p.ID,
				"error":   err.Error(),
			})
		} else {
			metrics.IncReminderEmailsSent()
			result.Success = true
		}
		results = append(results, result)
	}

	telemetry.Info("reminders.batch_complete", map[string]any{
		"recipients": len(recipients),
		"results":    len(results),
	})
	return results, nil
}

// SendWelcome emails a first-time user.
func (s *Service) SendWelcome(ctx context.Context, email, name string) error {
	msg, err := mail.WelcomeEmail(email, name, s.AppBaseURL)
	if err != nil {
		return err
	}
	return s.Mail.Send(ctx, msg)
}
