package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm/internal/auth"
	"crm/internal/db/dbtest"
	"crm/internal/model"
	"crm/internal/repository"
	"crm/internal/result"
)

func TestSeedService_Seed(t *testing.T) {
	users := new(MockUserRepository)
	customers := new(MockCustomerRepository)

	var addedUsers []*model.User
	users.On("Add", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { addedUsers = append(addedUsers, args.Get(1).(*model.User)) }).
		Return(result.Success(&model.User{}))

	var addedCustomers []*model.Customer
	customers.On("Add", mock.Anything, mock.AnythingOfType("*model.Customer")).
		Run(func(args mock.Arguments) { addedCustomers = append(addedCustomers, args.Get(1).(*model.Customer)) }).
		Return(result.Success(&model.Customer{}))

	res := NewSeedService(users, customers, zerolog.Nop()).Seed(context.Background())

	require.True(t, res.IsSuccess(), res.Error())
	assert.Equal(t, SeedSummary{UsersCreated: 2, CustomersCreated: 3}, res.Value())

	require.Len(t, addedUsers, 2)
	assert.Equal(t, "admin", addedUsers[0].Username)
	assert.Equal(t, "Admin", addedUsers[0].Role)
	assert.True(t, auth.VerifyPassword("admin123", addedUsers[0].PasswordHash))
	assert.Equal(t, "user", addedUsers[1].Username)
	assert.Equal(t, "User", addedUsers[1].Role)
	assert.True(t, auth.VerifyPassword("user123", addedUsers[1].PasswordHash))

	require.Len(t, addedCustomers, 3)
	assert.Equal(t, "John Doe", addedCustomers[0].FullName())
	assert.Equal(t, "North America", addedCustomers[0].Region)
	assert.Equal(t, "jane.smith@example.com", addedCustomers[1].Email)
	assert.Equal(t, "Europe", addedCustomers[1].Region)
	assert.Equal(t, "Carlos Gomez", addedCustomers[2].FullName())
	assert.Equal(t, "South America", addedCustomers[2].Region)
}

func TestSeedService_InsertFailuresDoNotFailRun(t *testing.T) {
	users := new(MockUserRepository)
	customers := new(MockCustomerRepository)
	users.On("Add", mock.Anything, mock.Anything).Return(result.Failure[*model.User]("User already exists"))
	customers.On("Add", mock.Anything, mock.Anything).Return(result.Failure[*model.Customer]("Customer already exists"))

	res := NewSeedService(users, customers, zerolog.Nop()).Seed(context.Background())

	require.True(t, res.IsSuccess())
	assert.Equal(t, SeedSummary{Skipped: 5}, res.Value())
}

func TestSeedService_ReseedAgainstDatabase(t *testing.T) {
	gormDB := dbtest.Open(t)
	users := repository.NewUserRepository(gormDB, zerolog.Nop())
	customers := repository.NewCustomerRepository(gormDB, zerolog.Nop())
	svc := NewSeedService(users, customers, zerolog.Nop())
	ctx := context.Background()

	first := svc.Seed(ctx)
	require.True(t, first.IsSuccess())
	assert.Equal(t, SeedSummary{UsersCreated: 2, CustomersCreated: 3}, first.Value())

	second := svc.Seed(ctx)
	require.True(t, second.IsSuccess())
	assert.Equal(t, SeedSummary{Skipped: 5}, second.Value())

	all := customers.GetAll(ctx)
	require.True(t, all.IsSuccess())
	assert.Len(t, all.Value(), 3)
}
