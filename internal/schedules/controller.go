package schedules

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studyseat/internal/shared/utils/response"
	"studyseat/internal/timeslot"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatSchedule handles GET /api/v1/seats/:id/schedule?date=&days=
func (c *Controller) GetSeatSchedule(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	date := ctx.DefaultQuery("date", time.Now().Format(timeslot.DateLayout))

	days, err := strconv.Atoi(ctx.DefaultQuery("days", "1"))
	if err != nil || days < 1 || days > 31 {
		days = 1
	}

	calendar, err := c.service.SeatCalendar(ctx.Request.Context(), seatID, date, days)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedule retrieved", calendar, nil)
}

// GetBatchSchedules handles GET /api/v1/seats/schedules/batch?seat_ids=a,b,c&date=
func (c *Controller) GetBatchSchedules(ctx *gin.Context) {
	rawIDs := ctx.Query("seat_ids")
	if rawIDs == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "seat_ids query parameter is required", nil, nil)
		return
	}

	var seatIDs []uuid.UUID
	for _, part := range strings.Split(rawIDs, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID in seat_ids", nil, nil)
			return
		}
		seatIDs = append(seatIDs, id)
	}

	date := ctx.DefaultQuery("date", time.Now().Format(timeslot.DateLayout))

	availability, err := c.service.SeatsAvailability(ctx.Request.Context(), seatIDs, date)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedules retrieved", availability, nil)
}
