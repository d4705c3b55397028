package get_barber_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/heitorfr/barber-booking-service/internal/api/handlers"
	"github.com/heitorfr/barber-booking-service/internal/api/middleware"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	"github.com/heitorfr/barber-booking-service/internal/service/bookings"
	"github.com/heitorfr/barber-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBarberID = "ID do barbeiro inválido"
	msgMissingUserID   = "identificação do usuário ausente"
	msgForbidden       = "acesso negado"
	msgInvalidDate     = "formato de data inválido, esperado YYYY-MM-DD"
	msgInvalidFilter   = "filtro inválido"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/bookings
// Query params: startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/bookings - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	var startDate, endDate *time.Time
	if s := query.Get("startDate"); s != "" {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		startDate = &d
	}
	if s := query.Get("endDate"); s != "" {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate = &d
	}

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	includeInactive := query.Get("includeInactive") == "true"

	result, err := h.service.GetBarberBookings(r.Context(), &models.GetBarberBookingsRequest{
		UserID:          userID,
		BarberID:        barberID,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/bookings - Access denied: barber_id=%d, user_id=%d",
				barberID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid filter: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /barbers/{id}/bookings - Failed to get bookings: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/bookings - Bookings retrieved successfully: barber_id=%d, count=%d",
		barberID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
