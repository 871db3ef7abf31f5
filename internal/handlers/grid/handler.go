package grid

import (
	"net/http"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/grid/model/dto"
	"hotel/internal/domains/grid/service"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Grid
	otel    otel.Otel
}

func New(service service.Grid, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/grid", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGrid)
		routerGroup.Get("/events", handler.GetEvents)
	})
}

func window(r *http.Request) (start, end time.Time, err error) {
	query := r.URL.Query()

	if start, err = shared.ParseDateParam(query.Get(constant.RequestParamStartDate), constant.RequestParamStartDate); err != nil {
		return start, end, err
	}

	end, err = shared.ParseDateParam(query.Get(constant.RequestParamEndDate), constant.RequestParamEndDate)

	return start, end, err
}

// GetGrid renders the room by date grid.
// @Summary Get the booking grid
// @Description One row per room and one cell per day of [startDate, endDate]. Every booking status is shown.
// @Tags Grid
// @Produce json
// @Param startDate query string true "First day (YYYY-MM-DD)"
// @Param endDate query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.Grid]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/grid [get]
// @Security BearerAuth
func (handler *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGrid")
	defer scope.End()

	start, end, err := window(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var grid dto.Grid

	if grid, err = handler.service.Project(ctx, start, end); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build booking grid")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, grid)
}

// GetEvents lists bookings as calendar events.
// @Summary Get calendar events
// @Tags Grid
// @Produce json
// @Param startDate query string true "First day (YYYY-MM-DD)"
// @Param endDate query string true "Last day (YYYY-MM-DD)"
// @Param status query string false "Filter by booking status"
// @Success 200 {object} response.Data[[]dto.Event]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/grid/events [get]
// @Security BearerAuth
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	start, end, err := window(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var events []dto.Event

	if events, err = handler.service.Events(ctx, start, end, r.URL.Query().Get(constant.RequestParamStatus)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar events")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, events)
}
