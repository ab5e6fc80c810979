package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"crm/internal/model"
	"crm/internal/result"
)

// Scope narrows a query. Find takes any number of them.
type Scope = func(*gorm.DB) *gorm.DB

// Repository defines the persistence operations shared by every entity.
type Repository[T any] interface {
	GetByID(ctx context.Context, id uuid.UUID) result.Result[*T]
	GetAll(ctx context.Context) result.Result[[]T]
	Find(ctx context.Context, scopes ...Scope) result.Result[[]T]
	Add(ctx context.Context, entity *T) result.Result[*T]
	Update(ctx context.Context, entity *T) result.Empty
	Delete(ctx context.Context, id uuid.UUID) result.Empty
}

type entityPtr[T any] interface {
	*T
	model.Entity
}

// GormRepository implements Repository on top of GORM.
type GormRepository[T any, PT entityPtr[T]] struct {
	db   *gorm.DB
	log  zerolog.Logger
	name string
}

// NewRepository creates a repository for the entity type T.
func NewRepository[T any, PT entityPtr[T]](db *gorm.DB, log zerolog.Logger) *GormRepository[T, PT] {
	name := reflect.TypeOf((*T)(nil)).Elem().Name()
	return &GormRepository[T, PT]{
		db:   db,
		log:  log.With().Str("entity", name).Logger(),
		name: name,
	}
}

// GetByID loads one entity.
func (r *GormRepository[T, PT]) GetByID(ctx context.Context, id uuid.UUID) result.Result[*T] {
	var entity T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Failure[*T](r.notFound(id))
	}
	if err != nil {
		return result.Failure[*T](r.storageFailure(err, "get by id", id))
	}
	return result.Success(&entity)
}

// GetAll loads every row, oldest first.
func (r *GormRepository[T, PT]) GetAll(ctx context.Context) result.Result[[]T] {
	return r.Find(ctx)
}

// Find loads the rows matching every scope, oldest first.
func (r *GormRepository[T, PT]) Find(ctx context.Context, scopes ...Scope) result.Result[[]T] {
	entities := make([]T, 0)
	err := r.db.WithContext(ctx).Scopes(scopes...).Order("created_at").Find(&entities).Error
	if err != nil {
		return result.Failure[[]T](r.storageFailure(err, "find", uuid.Nil))
	}
	return result.Success(entities)
}

// Add inserts a new entity and returns it with its generated id.
func (r *GormRepository[T, PT]) Add(ctx context.Context, entity *T) result.Result[*T] {
	err := r.db.WithContext(ctx).Create(entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		r.log.Warn().Err(err).Msg("duplicate entity rejected")
		return result.Failure[*T](r.name + " already exists")
	}
	if err != nil {
		return result.Failure[*T](r.storageFailure(err, "add", uuid.Nil))
	}
	return result.Success(entity)
}

// Update overwrites every column of a loaded entity except its id and
// creation time. There is no concurrency token: the last write wins.
func (r *GormRepository[T, PT]) Update(ctx context.Context, entity *T) result.Empty {
	pt := PT(entity)
	pt.Touch(time.Now())

	res := r.db.WithContext(ctx).Model(entity).Select("*").Omit("id", "created_at").Updates(entity)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		r.log.Warn().Err(res.Error).Str("id", pt.EntityID().String()).Msg("duplicate entity rejected")
		return result.Fail(r.name + " already exists")
	}
	if res.Error != nil {
		return result.Fail(r.storageFailure(res.Error, "update", pt.EntityID()))
	}
	if res.RowsAffected == 0 {
		return result.Fail(r.notFound(pt.EntityID()))
	}
	return result.Ok()
}

// Delete removes one entity by id.
func (r *GormRepository[T, PT]) Delete(ctx context.Context, id uuid.UUID) result.Empty {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return result.Fail(r.storageFailure(res.Error, "delete", id))
	}
	if res.RowsAffected == 0 {
		return result.Fail(r.notFound(id))
	}
	return result.Ok()
}

func (r *GormRepository[T, PT]) notFound(id uuid.UUID) string {
	return fmt.Sprintf("%s with id %s not found", r.name, id)
}

// storageFailure logs the full error and returns the message handed to callers.
func (r *GormRepository[T, PT]) storageFailure(err error, op string, id uuid.UUID) string {
	evt := r.log.Error().Err(err).Str("op", op)
	if id != uuid.Nil {
		evt = evt.Str("id", id.String())
	}
	evt.Msg("database operation failed")
	return "database error: " + err.Error()
}
