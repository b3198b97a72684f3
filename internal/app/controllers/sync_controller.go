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

// SyncController exposes the administrative synchronization triggers.
type SyncController struct {
	syncService services.SyncService
}

// NewSyncController creates a new SyncController
func NewSyncController(syncService services.SyncService) *SyncController {
	return &SyncController{
		syncService: syncService,
	}
}

// GetStatus reports the state of the durable mirror
// @Summary Get sync status
// @Description Reports season/department counts and the most recent sync time
// @Tags sync
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SyncStatusResponse} "Status retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sync/status [get]
func (c *SyncController) GetStatus(ctx *gin.Context) {
	status, err := c.syncService.Status(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}

// TriggerFullSync runs the whole season/department/course sequence
// @Summary Trigger a full sync
// @Description Synchronizes seasons, departments and courses from the upstream API
// @Tags sync
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Sync completed"
// @Failure 403 {object} dto.ErrorResponse "Missing or invalid admin key"
// @Failure 409 {object} dto.ErrorResponse "Another sync is already running"
// @Failure 502 {object} dto.ErrorResponse "Upstream source unavailable"
// @Router /sync/full [post]
func (c *SyncController) TriggerFullSync(ctx *gin.Context) {
	if err := c.syncService.SyncAll(ctx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Full sync completed successfully"},
		Timestamp: time.Now(),
	})
}

// TriggerSeasonsSync synchronizes seasons only
// @Summary Trigger a seasons sync
// @Tags sync
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SyncCountsResponse} "Seasons synced"
// @Failure 409 {object} dto.ErrorResponse "Another sync is already running"
// @Failure 502 {object} dto.ErrorResponse "Upstream source unavailable"
// @Router /sync/seasons [post]
func (c *SyncController) TriggerSeasonsSync(ctx *gin.Context) {
	counts, err := c.syncService.SyncSeasons(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SyncCountsResponse{Created: counts.Created, Updated: counts.Updated},
		Timestamp: time.Now(),
	})
}

// TriggerDepartmentsSync synchronizes departments only
// @Summary Trigger a departments sync
// @Tags sync
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SyncCountsResponse} "Departments synced"
// @Failure 409 {object} dto.ErrorResponse "Another sync is already running"
// @Failure 502 {object} dto.ErrorResponse "Upstream source unavailable"
// @Router /sync/departments [post]
func (c *SyncController) TriggerDepartmentsSync(ctx *gin.Context) {
	counts, err := c.syncService.SyncDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SyncCountsResponse{Created: counts.Created, Updated: counts.Updated},
		Timestamp: time.Now(),
	})
}

// TriggerCoursesSync synchronizes the courses of the target season
// @Summary Trigger a courses sync
// @Description Synchronizes courses of the active (or first listed) season across all departments
// @Tags sync
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SyncCountsResponse} "Courses synced"
// @Failure 409 {object} dto.ErrorResponse "Another sync is already running"
// @Router /sync/courses [post]
func (c *SyncController) TriggerCoursesSync(ctx *gin.Context) {
	counts, err := c.syncService.SyncCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SyncCountsResponse{Created: counts.Created, Updated: counts.Updated},
		Timestamp: time.Now(),
	})
}

// DeleteSeason removes a season and its courses
// @Summary Delete a season
// @Description Removes a season and, through cascades, its courses and meeting blocks
// @Tags sync
// @Produce json
// @Param id path int true "Season ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Season deleted"
// @Failure 404 {object} dto.ErrorResponse "Season not found"
// @Router /sync/seasons/{id} [delete]
func (c *SyncController) DeleteSeason(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid season ID").WithField("id"),
		})
		return
	}

	if err := c.syncService.DeleteSeason(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Season deleted"},
		Timestamp: time.Now(),
	})
}

// DeleteDepartment removes a department and its courses
// @Summary Delete a department
// @Tags sync
// @Produce json
// @Param id path int true "Department ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Department deleted"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /sync/departments/{id} [delete]
func (c *SyncController) DeleteDepartment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department ID").WithField("id"),
		})
		return
	}

	if err := c.syncService.DeleteDepartment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Department deleted"},
		Timestamp: time.Now(),
	})
}
