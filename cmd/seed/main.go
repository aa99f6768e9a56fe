package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/logger"
	"atelier/internal/models"
	"atelier/internal/repository"
)

var (
	bookingsPerEvent = flag.Int("bookings", 20, "Demo bookings to create per event")
	dryRun           = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
)

// Charset skips 0/O and 1/I, codes are read aloud at the door
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type Seeder struct {
	repos *repository.Repositories
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting seed...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{repos: repository.NewRepositories(db)}

	ctx := context.Background()
	if err := seeder.Run(ctx); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed completed successfully!")
}

func (s *Seeder) Run(ctx context.Context) error {
	if *dryRun {
		slog.Info("Dry run: would seed staff, events and bookings",
			"bookings_per_event", *bookingsPerEvent)
		return nil
	}

	if err := s.seedStaff(ctx); err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}

	events, err := s.seedEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	for _, event := range events {
		if err := s.seedBookings(ctx, event); err != nil {
			return fmt.Errorf("failed to seed bookings for event %d: %w", event.ID, err)
		}
	}

	return nil
}

func (s *Seeder) seedStaff(ctx context.Context) error {
	members := []struct {
		email    string
		password string
		name     string
		role     string
	}{
		{"admin@atelier.example", "admin123", "Site Admin", "admin"},
		{"gate-1@atelier.example", "gate123", "Door Staff One", "validator"},
		{"gate-2@atelier.example", "gate123", "Door Staff Two", "validator"},
	}

	for _, m := range members {
		hash := sha256.Sum256([]byte(m.password))
		staff := &models.Staff{
			Email:        m.email,
			PasswordHash: fmt.Sprintf("%x", hash),
			FullName:     m.name,
			Role:         m.role,
			IsActive:     true,
		}
		if err := s.repos.Staff.Create(ctx, staff); err != nil {
			return err
		}
		slog.Info("Seeded staff member", "email", m.email, "role", m.role)
	}

	return nil
}

func (s *Seeder) seedEvents(ctx context.Context) ([]*models.Event, error) {
	descriptions := map[string]string{
		"Spring Showcase":         "End-of-term student performance across all disciplines",
		"Watercolor Workshop":     "A hands-on introduction to watercolor technique",
		"Open Mic Evening":        "Students and guests share music, poetry and theatre",
		"Ceramics Masterclass":    "Wheel throwing fundamentals with guest artists",
		"Winter Gala Performance": "The academy's annual ticketed gala",
	}

	dates := []string{"2026-09-12", "2026-09-26", "2026-10-03", "2026-10-17", "2026-12-19"}
	location := "Main Hall"

	var events []*models.Event
	i := 0
	for title, desc := range descriptions {
		description := desc
		loc := location
		event := &models.Event{
			Title:       title,
			Description: &description,
			Location:    &loc,
			EventDate:   dates[i%len(dates)],
			EventTime:   "19:00",
			Capacity:    80 + rand.Intn(120),
		}
		if err := s.repos.Events.Create(ctx, event); err != nil {
			return nil, err
		}
		slog.Info("Seeded event", "id", event.ID, "title", event.Title)
		events = append(events, event)
		i++
	}

	return events, nil
}

func (s *Seeder) seedBookings(ctx context.Context, event *models.Event) error {
	statuses := []string{
		models.PaymentStatusPaid,
		models.PaymentStatusPaid,
		models.PaymentStatusPaid,
		models.PaymentStatusPending,
		models.PaymentStatusFailed,
	}

	for i := 0; i < *bookingsPerEvent; i++ {
		memberCount := 1 + rand.Intn(4)
		members := make([]models.Member, memberCount)
		for j := range members {
			members[j] = models.Member{
				Name:  fmt.Sprintf("Guest %d-%d", i+1, j+1),
				Email: fmt.Sprintf("guest%d-%d@example.com", i+1, j+1),
				Phone: fmt.Sprintf("+1555%07d", rand.Intn(10000000)),
			}
		}

		booking := &models.Booking{
			Code:          randomCode(6),
			EventID:       event.ID,
			EventTitle:    event.Title,
			EventDate:     event.EventDate,
			EventTime:     event.EventTime,
			PaymentStatus: statuses[rand.Intn(len(statuses))],
			Members:       members,
		}

		if err := s.repos.Bookings.Create(ctx, booking); err != nil {
			return err
		}
	}

	slog.Info("Seeded bookings", "event_id", event.ID, "count", *bookingsPerEvent)
	return nil
}

func randomCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(code)
}
