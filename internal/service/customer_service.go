package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crm/internal/cache"
	"crm/internal/metrics"
	"crm/internal/model"
	"crm/internal/repository"
	"crm/internal/result"
)

// MsgUpdatedNotReloaded is returned when an update was written but the row
// could not be read back.
const MsgUpdatedNotReloaded = "customer updated but could not be reloaded"

// CustomerDTO is the customer shape returned by the API.
type CustomerDTO struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	FullName         string     `json:"fullName"`
	Email            string     `json:"email"`
	Region           string     `json:"region"`
	RegistrationDate time.Time  `json:"registrationDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
}

// CreateCustomerCommand carries the fields of a new customer.
type CreateCustomerCommand struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Region    string `json:"region" validate:"required,max=50"`
}

// UpdateCustomerCommand carries the full new state of an existing customer.
type UpdateCustomerCommand struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	FirstName string    `json:"firstName" validate:"required,max=50"`
	LastName  string    `json:"lastName" validate:"required,max=50"`
	Email     string    `json:"email" validate:"required,email,max=100"`
	Region    string    `json:"region" validate:"required,max=50"`
}

// CustomerSearchQuery filters customers by name and/or email substring.
type CustomerSearchQuery struct {
	Name  string `query:"name"`
	Email string `query:"email"`
}

// CustomerService exposes one method per customer use case.
type CustomerService interface {
	Create(ctx context.Context, cmd CreateCustomerCommand) result.Result[CustomerDTO]
	Update(ctx context.Context, cmd UpdateCustomerCommand) result.Result[CustomerDTO]
	Delete(ctx context.Context, id uuid.UUID) result.Empty
	GetByID(ctx context.Context, id uuid.UUID) result.Result[CustomerDTO]
	List(ctx context.Context) result.Result[[]CustomerDTO]
	ListByRegion(ctx context.Context, region string) result.Result[[]CustomerDTO]
	Search(ctx context.Context, q CustomerSearchQuery) result.Result[[]CustomerDTO]
	ListRegisteredBetween(ctx context.Context, from, to time.Time) result.Result[[]CustomerDTO]
}

type customerService struct {
	customers repository.CustomerRepository
	cache     *cache.Client
	cacheTTL  time.Duration
	log       zerolog.Logger
}

// NewCustomerService creates a new customer service. cacheClient may be nil.
func NewCustomerService(customers repository.CustomerRepository, cacheClient *cache.Client, cacheTTL time.Duration, log zerolog.Logger) CustomerService {
	return &customerService{
		customers: customers,
		cache:     cacheClient,
		cacheTTL:  cacheTTL,
		log:       log.With().Str("component", "customer_service").Logger(),
	}
}

func (s *customerService) Create(ctx context.Context, cmd CreateCustomerCommand) result.Result[CustomerDTO] {
	s.log.Info().Str("email", cmd.Email).Msg("creating customer")

	customer, err := model.NewCustomer(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Region)
	if err != nil {
		s.log.Warn().Err(err).Msg("customer rejected")
		return failed[CustomerDTO]("create", err.Error())
	}

	added := s.customers.Add(ctx, customer)
	if added.IsFailure() {
		s.log.Error().Str("error", added.Error()).Msg("create customer failed")
		return failed[CustomerDTO]("create", added.Error())
	}

	dto := toCustomerDTO(added.Value())
	s.log.Info().Str("customer_id", dto.ID.String()).Msg("customer created")
	return succeeded("create", dto)
}

func (s *customerService) Update(ctx context.Context, cmd UpdateCustomerCommand) result.Result[CustomerDTO] {
	log := s.log.With().Str("customer_id", cmd.ID.String()).Logger()
	log.Info().Msg("updating customer")

	loaded := s.customers.GetByID(ctx, cmd.ID)
	if loaded.IsFailure() {
		log.Warn().Str("error", loaded.Error()).Msg("customer to update not loaded")
		return failed[CustomerDTO]("update", loaded.Error())
	}

	customer := loaded.Value()
	if err := customer.UpdateDetails(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Region); err != nil {
		log.Warn().Err(err).Msg("customer update rejected")
		return failed[CustomerDTO]("update", err.Error())
	}

	updated := s.customers.Update(ctx, customer)
	if updated.IsFailure() {
		log.Error().Str("error", updated.Error()).Msg("update customer failed")
		return failed[CustomerDTO]("update", updated.Error())
	}
	s.cache.Delete(ctx, customerCacheKey(cmd.ID))

	reloaded := s.customers.GetByID(ctx, cmd.ID)
	if reloaded.IsFailure() {
		log.Error().Str("error", reloaded.Error()).Msg("updated customer could not be reloaded")
		return failed[CustomerDTO]("update", MsgUpdatedNotReloaded)
	}

	log.Info().Msg("customer updated")
	return succeeded("update", toCustomerDTO(reloaded.Value()))
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) result.Empty {
	log := s.log.With().Str("customer_id", id.String()).Logger()
	log.Info().Msg("deleting customer")

	existing := s.customers.GetByID(ctx, id)
	if existing.IsFailure() {
		log.Warn().Str("error", existing.Error()).Msg("customer to delete not loaded")
		metrics.CustomerOperationsTotal.WithLabelValues("delete", metrics.Outcome(false)).Inc()
		return result.Fail(existing.Error())
	}

	deleted := s.customers.Delete(ctx, id)
	metrics.CustomerOperationsTotal.WithLabelValues("delete", metrics.Outcome(deleted.IsSuccess())).Inc()
	if deleted.IsFailure() {
		log.Error().Str("error", deleted.Error()).Msg("delete customer failed")
		return deleted
	}
	s.cache.Delete(ctx, customerCacheKey(id))

	log.Info().Msg("customer deleted")
	return deleted
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) result.Result[CustomerDTO] {
	log := s.log.With().Str("customer_id", id.String()).Logger()
	log.Info().Msg("getting customer")

	key := customerCacheKey(id)
	if raw := s.cache.Get(ctx, key); raw != nil {
		var dto CustomerDTO
		if err := json.Unmarshal(raw, &dto); err == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return succeeded("get", dto)
		}
		log.Warn().Msg("discarding unreadable cache entry")
	}
	if s.cache != nil {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	loaded := s.customers.GetByID(ctx, id)
	if loaded.IsFailure() {
		log.Warn().Str("error", loaded.Error()).Msg("get customer failed")
		return failed[CustomerDTO]("get", loaded.Error())
	}

	dto := toCustomerDTO(loaded.Value())
	if s.cache != nil {
		if raw, err := json.Marshal(dto); err == nil {
			s.cache.Set(ctx, key, raw, s.cacheTTL)
		}
	}
	return succeeded("get", dto)
}

func (s *customerService) List(ctx context.Context) result.Result[[]CustomerDTO] {
	s.log.Info().Msg("listing customers")
	return s.list("list", s.customers.GetAll(ctx))
}

func (s *customerService) ListByRegion(ctx context.Context, region string) result.Result[[]CustomerDTO] {
	s.log.Info().Str("region", region).Msg("listing customers by region")
	return s.list("list_by_region", s.customers.GetByRegion(ctx, region))
}

// Search matches name and email substrings in one query. At least one
// filter must be set.
func (s *customerService) Search(ctx context.Context, q CustomerSearchQuery) result.Result[[]CustomerDTO] {
	name, email := strings.TrimSpace(q.Name), strings.TrimSpace(q.Email)
	s.log.Info().Str("name", name).Str("email", email).Msg("searching customers")

	if name == "" && email == "" {
		return failed[[]CustomerDTO]("search", "name or email is required")
	}
	return s.list("search", s.customers.Search(ctx, name, email))
}

func (s *customerService) ListRegisteredBetween(ctx context.Context, from, to time.Time) result.Result[[]CustomerDTO] {
	s.log.Info().Time("from", from).Time("to", to).Msg("listing customers by registration date")
	if to.Before(from) {
		return failed[[]CustomerDTO]("list_registered", "registration range end must not be before its start")
	}
	return s.list("list_registered", s.customers.GetByRegistrationDateRange(ctx, from, to))
}

func (s *customerService) list(op string, found result.Result[[]model.Customer]) result.Result[[]CustomerDTO] {
	if found.IsFailure() {
		s.log.Error().Str("op", op).Str("error", found.Error()).Msg("customer query failed")
		return failed[[]CustomerDTO](op, found.Error())
	}

	dtos := make([]CustomerDTO, 0, len(found.Value()))
	for i := range found.Value() {
		dtos = append(dtos, toCustomerDTO(&found.Value()[i]))
	}
	return succeeded(op, dtos)
}

func succeeded[T any](op string, v T) result.Result[T] {
	metrics.CustomerOperationsTotal.WithLabelValues(op, metrics.Outcome(true)).Inc()
	return result.Success(v)
}

func failed[T any](op, msg string) result.Result[T] {
	metrics.CustomerOperationsTotal.WithLabelValues(op, metrics.Outcome(false)).Inc()
	return result.Failure[T](msg)
}

func toCustomerDTO(c *model.Customer) CustomerDTO {
	return CustomerDTO{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		FullName:         c.FullName(),
		Email:            c.Email,
		Region:           c.Region,
		RegistrationDate: c.RegistrationDate,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func customerCacheKey(id uuid.UUID) string {
	return "customer:" + id.String()
}
