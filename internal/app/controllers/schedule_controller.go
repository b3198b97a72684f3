package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/app/services"
	"github.com/emirhan/coursedeck/internal/middleware"
)

// ScheduleController handles saved-schedule operations.
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// CreateSchedule stores a new saved schedule
// @Summary Create a saved schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Schedule data"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Schedule name already used by this owner"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule data").WithDetails(err.Error()),
		})
		return
	}

	schedule, err := c.scheduleService.CreateSchedule(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      schedule,
		Timestamp: time.Now(),
	})
}

// ListSchedules lists the schedules of one owner
// @Summary List saved schedules
// @Tags schedules
// @Produce json
// @Param owner query string true "Owner identifier"
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleResponse} "Schedules retrieved"
// @Failure 400 {object} dto.ErrorResponse "Missing owner"
// @Router /schedules [get]
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	schedules, err := c.scheduleService.ListSchedules(ctx, ctx.Query("owner"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      schedules,
		Timestamp: time.Now(),
	})
}

// GetSchedule retrieves one schedule
// @Summary Get a saved schedule
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID" Format(int64) minimum(1)
// @Param owner query string true "Owner identifier"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule retrieved"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [get]
func (c *ScheduleController) GetSchedule(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule ID").WithField("id"),
		})
		return
	}

	schedule, err := c.scheduleService.GetSchedule(ctx, id, ctx.Query("owner"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      schedule,
		Timestamp: time.Now(),
	})
}

// SetFavorite flips the favorite flag of one schedule
// @Summary Mark or unmark a schedule as favorite
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID" Format(int64) minimum(1)
// @Param request body object{owner=string,favorite=bool} true "Favorite flag"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Flag updated"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id}/favorite [put]
func (c *ScheduleController) SetFavorite(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule ID").WithField("id"),
		})
		return
	}

	var req struct {
		Owner    string `json:"owner" binding:"required"`
		Favorite bool   `json:"favorite"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").WithDetails(err.Error()),
		})
		return
	}

	if err := c.scheduleService.SetFavorite(ctx, id, req.Owner, req.Favorite); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Schedule updated"},
		Timestamp: time.Now(),
	})
}

// DeleteSchedule removes one schedule
// @Summary Delete a saved schedule
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID" Format(int64) minimum(1)
// @Param owner query string true "Owner identifier"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Schedule deleted"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule ID").WithField("id"),
		})
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx, id, ctx.Query("owner")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Schedule deleted"},
		Timestamp: time.Now(),
	})
}
