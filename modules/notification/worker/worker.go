package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/logger"
	"agenda-api/modules/notification/mailer"
	"agenda-api/modules/notification/tasks"

	"github.com/hibiken/asynq"
)

// Worker consumes booking email tasks and delivers them over SMTP.
type Worker struct {
	server *asynq.Server
	mailer mailer.Mailer
}

func New(redisCfg config.RedisConfig, m mailer.Mailer) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisCfg.Addr, Password: redisCfg.Password, DB: redisCfg.DB},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{constants.QueueDefault: 1},
		},
	)
	return &Worker{server: server, mailer: m}
}

// Start runs the task loop in the background.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskTypeBookingEmail, w.handleBookingEmail)
	return w.server.Start(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleBookingEmail(ctx context.Context, task *asynq.Task) error {
	var payload tasks.BookingEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode booking email payload: %w", err)
	}

	logger.Info("Worker:handleBookingEmail", "to", payload.To, "kind", payload.Kind)
	if err := w.mailer.Send(payload.To, payload.Subject, renderBody(payload)); err != nil {
		logger.Error("Worker:handleBookingEmail:Send:Error", "error", err, "to", payload.To)
		return err
	}
	return nil
}

func renderBody(p tasks.BookingEmailPayload) string {
	var lead string
	switch p.Kind {
	case tasks.KindConfirmation:
		lead = "Your booking is confirmed."
	case tasks.KindCancellation:
		lead = "Your booking was cancelled."
	case tasks.KindReminder:
		lead = "You have a booking coming up."
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px;">
			<p>%s</p>
			<p><strong>%s</strong> from <strong>%s</strong> to <strong>%s</strong></p>
		</div>
	`, lead, p.Day, p.StartTime, p.EndTime)
	if p.Summary != "" {
		body += fmt.Sprintf("<p>Calendar: %s</p>", p.Summary)
	}
	return body
}
