package update_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heitorfr/barber-booking-service/internal/api/handlers"
	"github.com/heitorfr/barber-booking-service/internal/api/middleware"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	"github.com/heitorfr/barber-booking-service/internal/service/schedule"
	"github.com/heitorfr/barber-booking-service/internal/service/schedule/models"
)

const (
	msgInvalidBarberID    = "ID do barbeiro inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgMissingUserID      = "identificação do usuário ausente"
	msgForbidden          = "acesso negado"
	msgBarberNotFound     = "barbeiro não encontrado"
	msgInvalidSchedule    = "agenda inválida: horários devem estar no formato HH:MM"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Schedule domain.WorkScheduleConfig `json:"schedule"`
}

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

// Handle PUT /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /barbers/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), &models.UpdateScheduleRequest{
		UserID:   userID,
		BarberID: barberID,
		Schedule: req.Schedule,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id}/schedule - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /barbers/{id}/schedule - Access denied: barber_id=%d, user_id=%d",
				barberID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidSchedule):
			h.logger.Warn("PUT /barbers/{id}/schedule - Invalid schedule: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /barbers/{id}/schedule - Failed to update schedule: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/schedule - Schedule updated successfully: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
