package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// CourseController handles running routes
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

var courseMessages = validation.Messages{
	"Name.required":       "Le nom est requis",
	"Name.min":            "Le nom doit contenir au moins 3 caractères",
	"Distance.required":   "La distance est requise",
	"Distance.gt":         "La distance doit être positive",
	"Difficulty.oneof":    "La difficulté doit être Facile, Moyen ou Difficile",
	"Location.required":   "Le lieu est requis",
	"Location.min":        "Le lieu doit contenir au moins 2 caractères",
	"StartPoint.required": "Le point de départ est requis",
	"Rating.required":     "La note est requise",
	"Rating.min":          "La note doit être entre 1 et 5",
	"Rating.max":          "La note doit être entre 1 et 5",
}

// GetAllCourses lists routes, filterable by difficulty and distance range.
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	filter := repositories.CourseFilter{Difficulty: ctx.Query("difficulty")}
	if v, err := strconv.ParseFloat(ctx.Query("minDistance"), 64); err == nil {
		filter.MinDistance = &v
	}
	if v, err := strconv.ParseFloat(ctx.Query("maxDistance"), 64); err == nil {
		filter.MaxDistance = &v
	}

	courses, err := c.courseService.GetAllCourses(filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// GetCourseByID returns one route with its ratings.
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.courseService.GetCourseByID(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// CreateCourse creates a route.
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, courseMessages)))
		return
	}

	course, err := c.courseService.CreateCourse(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// UpdateCourse edits a route.
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, courseMessages)))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse removes a route and its ratings.
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Parcours supprimé"))
}

// RateCourse records the caller's score, replacing any earlier one.
func (c *CourseController) RateCourse(ctx *gin.Context) {
	var req dto.RateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, courseMessages)))
		return
	}

	summary, err := c.courseService.RateCourse(ctx.Param("id"), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}
