package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/app/services"
)

// CatalogController serves the read side of the course catalog. These
// endpoints never fail: the catalog service degrades internally to fallback
// tiers or empty results.
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetSeasons lists all academic seasons
// @Summary Get all seasons
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SeasonResponse} "Seasons retrieved"
// @Router /seasons [get]
func (c *CatalogController) GetSeasons(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.catalogService.GetSeasons(ctx),
		Timestamp: time.Now(),
	})
}

// GetDepartments lists all departments
// @Summary Get all departments
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentResponse} "Departments retrieved"
// @Router /departments [get]
func (c *CatalogController) GetDepartments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.catalogService.GetDepartments(ctx),
		Timestamp: time.Now(),
	})
}

// GetCourses lists the courses of one season/department pair
// @Summary Get courses
// @Description Lists the courses one department offers in one season, with meeting blocks
// @Tags catalog
// @Produce json
// @Param seasonId query int true "Season ID" Format(int64) minimum(1)
// @Param departmentId query int true "Department ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid query parameters"
// @Router /courses [get]
func (c *CatalogController) GetCourses(ctx *gin.Context) {
	seasonID, err := strconv.ParseInt(ctx.Query("seasonId"), 10, 64)
	if err != nil || seasonID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid season ID").WithField("seasonId"),
		})
		return
	}
	departmentID, err := strconv.ParseInt(ctx.Query("departmentId"), 10, 64)
	if err != nil || departmentID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department ID").WithField("departmentId"),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.catalogService.GetCourses(ctx, seasonID, departmentID),
		Timestamp: time.Now(),
	})
}

// GetSeasonCourses lists every course of one season
// @Summary Get all courses of a season
// @Description Lists every stored course of a season; an unsynced season yields an empty list
// @Tags catalog
// @Produce json
// @Param id path int true "Season ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid season ID"
// @Router /seasons/{id}/courses [get]
func (c *CatalogController) GetSeasonCourses(ctx *gin.Context) {
	seasonID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || seasonID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid season ID").WithField("id"),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.catalogService.GetAllCoursesForSeason(ctx, seasonID),
		Timestamp: time.Now(),
	})
}

// GetCacheStatus reports the readiness gate
// @Summary Get cache readiness
// @Description True only when both seasons and departments are mirrored
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CacheStatusResponse} "Readiness retrieved"
// @Router /cache/status [get]
func (c *CatalogController) GetCacheStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.CacheStatusResponse{Ready: c.catalogService.IsReady(ctx)},
		Timestamp: time.Now(),
	})
}

// GetCacheStats reports mirror statistics
// @Summary Get cache statistics
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CacheStatsResponse} "Statistics retrieved"
// @Router /cache/stats [get]
func (c *CatalogController) GetCacheStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.catalogService.Stats(ctx),
		Timestamp: time.Now(),
	})
}
