package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mhollis/footprint/internal/domain"
	"github.com/mhollis/footprint/internal/service"
)

// CalculationHandler handles calculation HTTP requests.
type CalculationHandler struct {
	calcs *service.CalculationService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(calcs *service.CalculationService) *CalculationHandler {
	return &CalculationHandler{calcs: calcs}
}

// HandleCreate persists a calculation for the authenticated user.
// POST /api/calculations
// Request:  CalculationInput fields
// Response: 201 {"calculation": {...}} | 422 field errors
func (h *CalculationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req calculationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if errs := req.validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	calc, err := h.calcs.Create(r.Context(), user.ID, req.toInput())
	if err != nil {
		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeFieldErrors(w, fieldErrs)
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("create calculation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"calculation": toCalculationDTO(calc),
	})
}

// HandleGet returns one calculation owned by the authenticated user.
// GET /api/calculations/{id}
// Response: 200 {"calculation": {...}} | 404
func (h *CalculationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	calc, err := h.calcs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Calculation not found.")
			return
		}
		slog.Error("get calculation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	// Someone else's calculation reads as absent.
	if calc.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Calculation not found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"calculation": toCalculationDTO(calc),
	})
}

// HandleListByUser returns a user's calculations, most recent first.
// GET /api/users/{id}/calculations
// Response: 200 {"calculations": [...]} | 404
func (h *CalculationHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	// Only the owner may list their history.
	if r.PathValue("id") != user.ID {
		writeError(w, http.StatusNotFound, "User not found.")
		return
	}

	calcs, err := h.calcs.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list calculations", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"calculations": toCalculationDTOs(calcs),
	})
}
