package consumers

import (
	"encoding/json"
	"log/slog"

	"atelier/internal/external"
	"atelier/internal/models"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	mailerClient *external.MailerClient
}

func NewHandlers(mailerClient *external.MailerClient) *Handlers {
	return &Handlers{
		mailerClient: mailerClient,
	}
}

// HandleAttendanceValidated sends the welcome email to every member on
// the validated booking. The admission is already committed by the time
// this runs: a send failure is logged and the message acked so it never
// poisons the queue or the decision.
func (h *Handlers) HandleAttendanceValidated(m *stan.Msg) {
	var event models.AttendanceValidatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal attendance validated event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing attendance validated event",
		"booking_code", event.BookingCode,
		"event_title", event.EventTitle,
		"members", len(event.Members))

	for _, member := range event.Members {
		if member.Email == "" {
			continue
		}

		resp, err := h.mailerClient.SendWelcome(
			member.Email, member.Name, event.EventTitle, event.EventDate, event.EventTime)
		if err != nil {
			slog.Error("Failed to send welcome email",
				"error", err,
				"booking_code", event.BookingCode,
				"member_email", member.Email)
			continue
		}

		slog.Info("Welcome email sent",
			"booking_code", event.BookingCode,
			"member_email", member.Email,
			"message_id", resp.MessageID)
	}

	m.Ack()
}

// HandleContactReceived logs contact submissions for now. Routing them to
// the front-desk inbox lives with the mail provider configuration.
func (h *Handlers) HandleContactReceived(m *stan.Msg) {
	var event models.ContactReceivedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal contact received event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing contact received event",
		"contact_id", event.ContactID,
		"email", event.Email)

	m.Ack()
}
