package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNameLen   = 50
	maxEmailLen  = 100
	maxRegionLen = 50
)

// Customer is a CRM contact.
type Customer struct {
	BaseEntity
	FirstName        string    `json:"firstName" gorm:"size:50;not null"`
	LastName         string    `json:"lastName" gorm:"size:50;not null"`
	Email            string    `json:"email" gorm:"size:100;not null;uniqueIndex"`
	Region           string    `json:"region" gorm:"size:50;not null;index"`
	RegistrationDate time.Time `json:"registrationDate" gorm:"not null;index"`
}

func (Customer) TableName() string { return "customers" }

// NewCustomer validates its input and returns a customer registered now.
func NewCustomer(firstName, lastName, email, region string) (*Customer, error) {
	fields := []struct {
		name, value string
		max         int
	}{
		{"first name", firstName, maxNameLen},
		{"last name", lastName, maxNameLen},
		{"email", email, maxEmailLen},
		{"region", region, maxRegionLen},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return nil, fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, f.name, f.max)
		}
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Customer{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Region:           region,
		RegistrationDate: time.Now().UTC(),
	}, nil
}

// UpdateDetails overwrites every non-blank argument and refreshes UpdatedAt.
// A rejected email leaves the customer unchanged.
func (c *Customer) UpdateDetails(firstName, lastName, email, region string) error {
	if strings.TrimSpace(email) != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	if strings.TrimSpace(firstName) != "" {
		c.FirstName = firstName
	}
	if strings.TrimSpace(lastName) != "" {
		c.LastName = lastName
	}
	if strings.TrimSpace(email) != "" {
		c.Email = email
	}
	if strings.TrimSpace(region) != "" {
		c.Region = region
	}
	c.Touch(time.Now())
	return nil
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q is not a valid email address", ErrValidation, email)
	}
	return nil
}
