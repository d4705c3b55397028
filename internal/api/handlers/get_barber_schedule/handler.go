package get_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heitorfr/barber-booking-service/internal/api/handlers"
	"github.com/heitorfr/barber-booking-service/internal/api/middleware"
	"github.com/heitorfr/barber-booking-service/internal/service/schedule"
	"github.com/heitorfr/barber-booking-service/internal/service/schedule/models"
)

const (
	msgInvalidBarberID = "ID do barbeiro inválido"
	msgMissingUserID   = "identificação do usuário ausente"
	msgForbidden       = "acesso negado"
	msgBarberNotFound  = "barbeiro não encontrado"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/schedule - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), &models.GetScheduleRequest{
		UserID:   userID,
		BarberID: barberID,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/schedule - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/schedule - Access denied: barber_id=%d, user_id=%d",
				barberID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /barbers/{id}/schedule - Failed to get schedule: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/schedule - Schedule retrieved successfully: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
