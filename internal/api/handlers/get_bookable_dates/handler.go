package get_bookable_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heitorfr/barber-booking-service/internal/api/handlers"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	getBookableDates "github.com/heitorfr/barber-booking-service/internal/usecase/get_bookable_dates"
)

const (
	msgInvalidBarberID = "ID do barbeiro inválido"
	msgMissingService  = "o parâmetro serviceId é obrigatório"
	msgInvalidService  = "ID do serviço inválido"
	msgInvalidDays     = "o parâmetro days é inválido"
	msgBarberNotFound  = "barbeiro não encontrado"
	msgBarberInactive  = "barbeiro indisponível"
	msgServiceNotFound = "serviço não encontrado"
)

// DatesResponse HTTP модель ответа с доступными датами горизонта
type DatesResponse struct {
	BarberID    int64    `json:"barberId"`
	ServiceID   int64    `json:"serviceId"`
	HorizonDays int      `json:"horizonDays"`
	Dates       []string `json:"dates"` // "YYYY-MM-DD" по возрастанию
}

type Handler struct {
	useCase GetBookableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBookableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/bookable-dates
// Query params: serviceId (required), days (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/bookable-dates - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /barbers/{id}/bookable-dates - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/bookable-dates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidService)
		return
	}

	// days опционален, 0 включает дефолтный горизонт
	horizonDays := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		horizonDays, err = strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/bookable-dates - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getBookableDates.Request{
		BarberID:    barberID,
		ServiceID:   serviceID,
		HorizonDays: horizonDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBookableDates.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/bookable-dates - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getBookableDates.ErrBarberInactive):
			h.logger.Warn("GET /barbers/{id}/bookable-dates - Barber inactive: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberInactive)

		case errors.Is(err, getBookableDates.ErrServiceNotFound):
			h.logger.Warn("GET /barbers/{id}/bookable-dates - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getBookableDates.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/bookable-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		default:
			h.logger.Error("GET /barbers/{id}/bookable-dates - Failed to scan horizon: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	dates := make([]string, len(result.Dates))
	for i, d := range result.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	h.logger.Info("GET /barbers/{id}/bookable-dates - %d dates returned: barber_id=%d, service_id=%d, horizon=%d",
		len(dates), barberID, serviceID, result.HorizonDays)
	handlers.RespondJSON(w, http.StatusOK, &DatesResponse{
		BarberID:    barberID,
		ServiceID:   serviceID,
		HorizonDays: result.HorizonDays,
		Dates:       dates,
	})
}
