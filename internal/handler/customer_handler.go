package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"crm/internal/errors"
	"crm/internal/service"
)

const dateOnly = "2006-01-02"

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.CustomerDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	res := h.customerService.List(c.Request().Context())
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}
	return c.JSON(http.StatusOK, res.Value())
}

// GetCustomer godoc
// @Summary Get customer by id
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} service.CustomerDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	res := h.customerService.GetByID(c.Request().Context(), id)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusNotFound, res.Error(), errors.CodeNotFound)
	}
	return c.JSON(http.StatusOK, res.Value())
}

// ListCustomersByRegion godoc
// @Summary List customers by region
// @Description Case-insensitive substring match on the region.
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param region path string true "Region"
// @Success 200 {array} service.CustomerDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers/region/{region} [get]
func (h *CustomerHandler) ListCustomersByRegion(c echo.Context) error {
	res := h.customerService.ListByRegion(c.Request().Context(), c.Param("region"))
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}
	return c.JSON(http.StatusOK, res.Value())
}

// SearchCustomers godoc
// @Summary Search customers
// @Description Case-insensitive substring match on first/last name and/or email. At least one filter is required.
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name fragment"
// @Param email query string false "Email fragment"
// @Success 200 {array} service.CustomerDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers/search [get]
func (h *CustomerHandler) SearchCustomers(c echo.Context) error {
	var q service.CustomerSearchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid query parameters", errors.CodeValidation)
	}

	res := h.customerService.Search(c.Request().Context(), q)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}
	return c.JSON(http.StatusOK, res.Value())
}

// ListCustomersRegisteredBetween godoc
// @Summary List customers by registration date
// @Description Inclusive range. Accepts RFC3339 timestamps or YYYY-MM-DD dates; a date-only "to" covers the whole day.
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start"
// @Param to query string true "Range end"
// @Success 200 {array} service.CustomerDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers/registered [get]
func (h *CustomerHandler) ListCustomersRegisteredBetween(c echo.Context) error {
	from, err := parseRangeBound(c.QueryParam("from"), false)
	if err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "from: "+err.Error(), errors.CodeValidation)
	}
	to, err := parseRangeBound(c.QueryParam("to"), true)
	if err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "to: "+err.Error(), errors.CodeValidation)
	}

	res := h.customerService.ListRegisteredBetween(c.Request().Context(), from, to)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}
	return c.JSON(http.StatusOK, res.Value())
}

// CreateCustomer godoc
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateCustomerCommand true "Customer data"
// @Success 201 {object} service.CustomerDTO
// @Header 201 {string} Location "URL of the new customer"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var cmd service.CreateCustomerCommand
	if err := c.Bind(&cmd); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body", errors.CodeValidation)
	}

	if err := c.Validate(&cmd); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, err.Error(), errors.CodeValidation)
	}

	res := h.customerService.Create(c.Request().Context(), cmd)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}

	created := res.Value()
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/customers/%s", created.ID))
	return c.JSON(http.StatusCreated, created)
}

// UpdateCustomer godoc
// @Summary Update customer
// @Description The id in the body must match the id in the path.
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body service.UpdateCustomerCommand true "Customer data"
// @Success 200 {object} service.CustomerDTO
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var cmd service.UpdateCustomerCommand
	if err := c.Bind(&cmd); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body", errors.CodeValidation)
	}

	if cmd.ID != id {
		return errors.NewHTTPError(http.StatusBadRequest, "id in path does not match id in body", errors.CodeIDMismatch)
	}

	if err := c.Validate(&cmd); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, err.Error(), errors.CodeValidation)
	}

	res := h.customerService.Update(c.Request().Context(), cmd)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}
	return c.JSON(http.StatusOK, res.Value())
}

// DeleteCustomer godoc
// @Summary Delete customer
// @Tags customers
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	res := h.customerService.Delete(c.Request().Context(), id)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusBadRequest, res.Error(), errors.CodeRequestFailed)
	}
	return c.NoContent(http.StatusNoContent)
}

func customerID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.NewHTTPError(http.StatusBadRequest, "invalid customer ID", errors.CodeInvalidID)
	}
	return id, nil
}

// parseRangeBound accepts RFC3339 or a bare date. A bare date used as the
// end of a range means the last instant of that day.
func parseRangeBound(raw string, end bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be RFC3339 or %s", dateOnly)
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
