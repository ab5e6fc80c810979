package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm/internal/errors"
	"crm/internal/handler"
	"crm/internal/result"
	"crm/internal/router"
	"crm/internal/service"
)

// MockCustomerService is a mock implementation of CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, cmd service.CreateCustomerCommand) result.Result[service.CustomerDTO] {
	return m.Called(ctx, cmd).Get(0).(result.Result[service.CustomerDTO])
}

func (m *MockCustomerService) Update(ctx context.Context, cmd service.UpdateCustomerCommand) result.Result[service.CustomerDTO] {
	return m.Called(ctx, cmd).Get(0).(result.Result[service.CustomerDTO])
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) result.Empty {
	return m.Called(ctx, id).Get(0).(result.Empty)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id uuid.UUID) result.Result[service.CustomerDTO] {
	return m.Called(ctx, id).Get(0).(result.Result[service.CustomerDTO])
}

func (m *MockCustomerService) List(ctx context.Context) result.Result[[]service.CustomerDTO] {
	return m.Called(ctx).Get(0).(result.Result[[]service.CustomerDTO])
}

func (m *MockCustomerService) ListByRegion(ctx context.Context, region string) result.Result[[]service.CustomerDTO] {
	return m.Called(ctx, region).Get(0).(result.Result[[]service.CustomerDTO])
}

func (m *MockCustomerService) Search(ctx context.Context, q service.CustomerSearchQuery) result.Result[[]service.CustomerDTO] {
	return m.Called(ctx, q).Get(0).(result.Result[[]service.CustomerDTO])
}

func (m *MockCustomerService) ListRegisteredBetween(ctx context.Context, from, to time.Time) result.Result[[]service.CustomerDTO] {
	return m.Called(ctx, from, to).Get(0).(result.Result[[]service.CustomerDTO])
}

func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = router.NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func render(t *testing.T, c echo.Context, err error) {
	t.Helper()
	if err != nil {
		errors.NewHTTPErrorHandler(zerolog.Nop())(err, c)
	}
}

func TestCustomerHandler_UpdateValidationSkipsService(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	id := uuid.New()

	c, rec := newContext(http.MethodPut, "/api/customers/"+id.String(),
		`{"id":"`+id.String()+`","firstName":"","lastName":"Doe","email":"john@example.com","region":"Europe"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	render(t, c, h.UpdateCustomer(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCustomerHandler_UpdatePassesCommand(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	id := uuid.New()
	cmd := service.UpdateCustomerCommand{ID: id, FirstName: "John", LastName: "Doe", Email: "john@example.com", Region: "Europe"}
	svc.On("Update", mock.Anything, cmd).Return(result.Success(service.CustomerDTO{ID: id, FullName: "John Doe", Region: "Europe"}))

	c, rec := newContext(http.MethodPut, "/api/customers/"+id.String(),
		`{"id":"`+id.String()+`","firstName":"John","lastName":"Doe","email":"john@example.com","region":"Europe"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	render(t, c, h.UpdateCustomer(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var dto service.CustomerDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "John Doe", dto.FullName)
	svc.AssertExpectations(t)
}

func TestCustomerHandler_GetFailureIsNotFound(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(result.Failure[service.CustomerDTO]("Customer with id " + id.String() + " not found"))

	c, rec := newContext(http.MethodGet, "/api/customers/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	render(t, c, h.GetCustomer(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeNotFound, body.Code)
}

func TestCustomerHandler_ListFailureIsBadRequest(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	svc.On("List", mock.Anything).Return(result.Failure[[]service.CustomerDTO]("database error: timeout"))

	c, rec := newContext(http.MethodGet, "/api/customers", "")

	render(t, c, h.ListCustomers(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "database error: timeout")
}

func TestCustomerHandler_RegisteredRangeBounds(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	svc.On("ListRegisteredBetween", mock.Anything, from, to).Return(result.Success([]service.CustomerDTO{}))

	c, rec := newContext(http.MethodGet, "/api/customers/registered?from=2026-03-01&to=2026-03-31", "")

	render(t, c, h.ListCustomersRegisteredBetween(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
