package deliveries

import (
	"net/http"

	"github.com/SandeepaChathumina/Grocery-System/internal/dashboard"
	"github.com/SandeepaChathumina/Grocery-System/internal/models"
	"github.com/SandeepaChathumina/Grocery-System/internal/validation"
	"github.com/SandeepaChathumina/Grocery-System/pkg/utils"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for deliveries.
type Handler struct {
	svc      ServiceInterface
	validate *validatorv10.Validate
}

// NewHandler creates a new delivery handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validation.New(),
	}
}

// deliveryID validates the :id path parameter. The id space is opaque UUIDs,
// so an unparseable id cannot name a record and reads as not found.
func deliveryID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// List returns all deliveries, newest first. Optional search and status query
// parameters apply the dashboard filter on top of the full list.
func (h *Handler) List(c echo.Context) error {
	deliveries, err := h.svc.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	term := c.QueryParam("search")
	status := c.QueryParam("status")
	if term != "" || status != "" {
		if status != "" && !models.ValidDeliveryStatus(status) {
			return utils.RespondWithError(c, http.StatusBadRequest, "Invalid delivery status")
		}
		deliveries = dashboard.Filter(deliveries, term, status)
	}

	return utils.RespondWithJSON(c, http.StatusOK, deliveries)
}

// Stats returns the aggregate dashboard statistics over the unfiltered list.
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, stats)
}

// ListByStatus returns all deliveries whose delivery status equals the path
// parameter.
func (h *Handler) ListByStatus(c echo.Context) error {
	status := c.Param("status")
	if !models.ValidDeliveryStatus(status) {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid delivery status")
	}

	deliveries, err := h.svc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, deliveries)
}

// Get returns one delivery or 404.
func (h *Handler) Get(c echo.Context) error {
	id, ok := deliveryID(c)
	if !ok {
		return utils.RespondWithError(c, http.StatusNotFound, "Delivery not found")
	}

	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

// Create validates and persists a new delivery, returning the stored record.
func (h *Handler) Create(c echo.Context) error {
	var req models.CreateDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, validation.Fields(err))
	}

	d, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		// Persistence failures on create read as a constraint violation
		// to the caller, matching the unique delivery_id case.
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusCreated, d)
}

// Update applies a partial or full field replacement to a delivery.
func (h *Handler) Update(c echo.Context) error {
	id, ok := deliveryID(c)
	if !ok {
		return utils.RespondWithError(c, http.StatusNotFound, "Delivery not found")
	}

	var req models.UpdateDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Normalize()
	// Nil groups are skipped; supplied groups go through the same nested
	// rules a create enforces.
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, validation.Fields(err))
	}

	d, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

// UpdateStatus replaces only the delivery status of a record.
func (h *Handler) UpdateStatus(c echo.Context) error {
	id, ok := deliveryID(c)
	if !ok {
		return utils.RespondWithError(c, http.StatusNotFound, "Delivery not found")
	}

	var req models.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, validation.Fields(err))
	}

	d, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

// Delete removes a delivery and returns a confirmation.
func (h *Handler) Delete(c echo.Context) error {
	id, ok := deliveryID(c)
	if !ok {
		return utils.RespondWithError(c, http.StatusNotFound, "Delivery not found")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Delivery deleted successfully"})
}
