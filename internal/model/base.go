package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrValidation marks a rejected entity construction or mutation.
var ErrValidation = errors.New("validation failed")

// Entity is implemented by every persisted type embedding BaseEntity.
type Entity interface {
	EntityID() uuid.UUID
	Touch(now time.Time)
}

// BaseEntity carries the identity and audit columns shared by all tables.
type BaseEntity struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null"`
	UpdatedAt *time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// BeforeCreate assigns the id and creation time on first insert.
func (b *BaseEntity) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (b *BaseEntity) EntityID() uuid.UUID { return b.ID }

// Touch records a modification.
func (b *BaseEntity) Touch(now time.Time) {
	t := now.UTC()
	b.UpdatedAt = &t
}
