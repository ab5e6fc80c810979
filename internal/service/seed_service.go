package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"crm/internal/auth"
	"crm/internal/metrics"
	"crm/internal/model"
	"crm/internal/repository"
	"crm/internal/result"
)

// MsgSeeded is reported after a seed run.
const MsgSeeded = "database seeded successfully"

type seedUser struct {
	username, password, role string
}

type seedCustomer struct {
	firstName, lastName, email, region string
}

var (
	seedUsers = []seedUser{
		{"admin", "admin123", "Admin"},
		{"user", "user123", "User"},
	}
	seedCustomers = []seedCustomer{
		{"John", "Doe", "john.doe@example.com", "North America"},
		{"Jane", "Smith", "jane.smith@example.com", "Europe"},
		{"Carlos", "Gomez", "carlos.gomez@example.com", "South America"},
	}
)

// SeedSummary counts what a seed run inserted and skipped.
type SeedSummary struct {
	UsersCreated     int `json:"usersCreated"`
	CustomersCreated int `json:"customersCreated"`
	Skipped          int `json:"skipped"`
}

// SeedService populates the database with demo users and customers.
type SeedService interface {
	Seed(ctx context.Context) result.Result[SeedSummary]
}

type seedService struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	log       zerolog.Logger
}

// NewSeedService creates a new seed service.
func NewSeedService(users repository.UserRepository, customers repository.CustomerRepository, log zerolog.Logger) SeedService {
	return &seedService{
		users:     users,
		customers: customers,
		log:       log.With().Str("component", "seed_service").Logger(),
	}
}

// Seed inserts the demo rows. It is not idempotent: rows that fail to insert,
// duplicates included, are logged and skipped without failing the run.
func (s *seedService) Seed(ctx context.Context) result.Result[SeedSummary] {
	s.log.Info().Msg("seeding database")
	var summary SeedSummary

	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			s.log.Error().Err(err).Msg("seeding aborted")
			metrics.SeedRunsTotal.WithLabelValues(metrics.Outcome(false)).Inc()
			return result.Failure[SeedSummary](fmt.Sprintf("seeding failed: %v", err))
		}
		user, err := model.NewUser(u.username, hash, u.role)
		if err != nil {
			s.log.Error().Err(err).Msg("seeding aborted")
			metrics.SeedRunsTotal.WithLabelValues(metrics.Outcome(false)).Inc()
			return result.Failure[SeedSummary](fmt.Sprintf("seeding failed: %v", err))
		}
		if added := s.users.Add(ctx, user); added.IsFailure() {
			s.log.Warn().Str("username", u.username).Str("error", added.Error()).Msg("seed user skipped")
			summary.Skipped++
			continue
		}
		summary.UsersCreated++
	}

	for _, c := range seedCustomers {
		customer, err := model.NewCustomer(c.firstName, c.lastName, c.email, c.region)
		if err != nil {
			s.log.Error().Err(err).Msg("seeding aborted")
			metrics.SeedRunsTotal.WithLabelValues(metrics.Outcome(false)).Inc()
			return result.Failure[SeedSummary](fmt.Sprintf("seeding failed: %v", err))
		}
		if added := s.customers.Add(ctx, customer); added.IsFailure() {
			s.log.Warn().Str("email", c.email).Str("error", added.Error()).Msg("seed customer skipped")
			summary.Skipped++
			continue
		}
		summary.CustomersCreated++
	}

	metrics.SeedRunsTotal.WithLabelValues(metrics.Outcome(true)).Inc()
	s.log.Info().
		Int("users_created", summary.UsersCreated).
		Int("customers_created", summary.CustomersCreated).
		Int("skipped", summary.Skipped).
		Msg(MsgSeeded)
	return result.Success(summary)
}
