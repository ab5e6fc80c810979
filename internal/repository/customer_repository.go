package repository

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"crm/internal/model"
	"crm/internal/result"
)

// CustomerRepository adds customer searches to the generic operations.
type CustomerRepository interface {
	Repository[model.Customer]
	GetByName(ctx context.Context, name string) result.Result[[]model.Customer]
	GetByEmail(ctx context.Context, email string) result.Result[[]model.Customer]
	Search(ctx context.Context, name, email string) result.Result[[]model.Customer]
	GetByRegion(ctx context.Context, region string) result.Result[[]model.Customer]
	GetByRegistrationDateRange(ctx context.Context, start, end time.Time) result.Result[[]model.Customer]
}

type customerRepository struct {
	*GormRepository[model.Customer, *model.Customer]
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB, log zerolog.Logger) CustomerRepository {
	return &customerRepository{
		GormRepository: NewRepository[model.Customer](db, log),
	}
}

// GetByName matches a case-insensitive substring of the first or last name.
func (r *customerRepository) GetByName(ctx context.Context, name string) result.Result[[]model.Customer] {
	return r.Find(ctx, nameScope(name))
}

// Search matches name and email substrings together. A blank filter is ignored.
func (r *customerRepository) Search(ctx context.Context, name, email string) result.Result[[]model.Customer] {
	var scopes []Scope
	if name != "" {
		scopes = append(scopes, nameScope(name))
	}
	if email != "" {
		scopes = append(scopes, containsScope("email", email))
	}
	return r.Find(ctx, scopes...)
}

// GetByEmail matches a case-insensitive substring of the email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) result.Result[[]model.Customer] {
	return r.Find(ctx, containsScope("email", email))
}

// GetByRegion matches a case-insensitive substring of the region.
func (r *customerRepository) GetByRegion(ctx context.Context, region string) result.Result[[]model.Customer] {
	return r.Find(ctx, containsScope("region", region))
}

// GetByRegistrationDateRange returns customers registered within [start, end].
func (r *customerRepository) GetByRegistrationDateRange(ctx context.Context, start, end time.Time) result.Result[[]model.Customer] {
	return r.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("registration_date >= ? AND registration_date <= ?", start.UTC(), end.UTC())
	})
}

func nameScope(name string) Scope {
	pattern := containsPattern(name)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(LOWER(first_name) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(last_name) LIKE ? ESCAPE '"+likeEscape+"')",
			pattern, pattern,
		)
	}
}

func containsScope(column, value string) Scope {
	pattern := containsPattern(value)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}
}

// likeEscape is not a backslash because MySQL treats one inside a string
// literal as an escape of its own.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// containsPattern matches value as literal text anywhere in a column.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
