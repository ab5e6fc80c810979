package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"crm/internal/model"
	"crm/internal/repository"
	"crm/internal/result"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) result.Result[*model.Customer] {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) result.Result[*model.Customer]); ok {
		return fn(ctx, id)
	}
	return args.Get(0).(result.Result[*model.Customer])
}

func (m *MockCustomerRepository) GetAll(ctx context.Context) result.Result[[]model.Customer] {
	args := m.Called(ctx)
	return args.Get(0).(result.Result[[]model.Customer])
}

func (m *MockCustomerRepository) Find(ctx context.Context, scopes ...repository.Scope) result.Result[[]model.Customer] {
	args := m.Called(ctx, scopes)
	return args.Get(0).(result.Result[[]model.Customer])
}

func (m *MockCustomerRepository) Add(ctx context.Context, customer *model.Customer) result.Result[*model.Customer] {
	args := m.Called(ctx, customer)
	if fn, ok := args.Get(0).(func(context.Context, *model.Customer) result.Result[*model.Customer]); ok {
		return fn(ctx, customer)
	}
	return args.Get(0).(result.Result[*model.Customer])
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *model.Customer) result.Empty {
	args := m.Called(ctx, customer)
	if fn, ok := args.Get(0).(func(context.Context, *model.Customer) result.Empty); ok {
		return fn(ctx, customer)
	}
	return args.Get(0).(result.Empty)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) result.Empty {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Empty)
}

func (m *MockCustomerRepository) GetByName(ctx context.Context, name string) result.Result[[]model.Customer] {
	args := m.Called(ctx, name)
	return args.Get(0).(result.Result[[]model.Customer])
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) result.Result[[]model.Customer] {
	args := m.Called(ctx, email)
	return args.Get(0).(result.Result[[]model.Customer])
}

func (m *MockCustomerRepository) Search(ctx context.Context, name, email string) result.Result[[]model.Customer] {
	args := m.Called(ctx, name, email)
	return args.Get(0).(result.Result[[]model.Customer])
}

func (m *MockCustomerRepository) GetByRegion(ctx context.Context, region string) result.Result[[]model.Customer] {
	args := m.Called(ctx, region)
	return args.Get(0).(result.Result[[]model.Customer])
}

func (m *MockCustomerRepository) GetByRegistrationDateRange(ctx context.Context, start, end time.Time) result.Result[[]model.Customer] {
	args := m.Called(ctx, start, end)
	return args.Get(0).(result.Result[[]model.Customer])
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) result.Result[*model.User] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*model.User])
}

func (m *MockUserRepository) GetAll(ctx context.Context) result.Result[[]model.User] {
	args := m.Called(ctx)
	return args.Get(0).(result.Result[[]model.User])
}

func (m *MockUserRepository) Find(ctx context.Context, scopes ...repository.Scope) result.Result[[]model.User] {
	args := m.Called(ctx, scopes)
	return args.Get(0).(result.Result[[]model.User])
}

func (m *MockUserRepository) Add(ctx context.Context, user *model.User) result.Result[*model.User] {
	args := m.Called(ctx, user)
	return args.Get(0).(result.Result[*model.User])
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) result.Empty {
	args := m.Called(ctx, user)
	return args.Get(0).(result.Empty)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) result.Empty {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Empty)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) result.Result[*model.User] {
	args := m.Called(ctx, username)
	return args.Get(0).(result.Result[*model.User])
}
