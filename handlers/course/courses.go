package course

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/course-catalog/database"
	"github.com/sahilchouksey/course-catalog/model"
	"github.com/sahilchouksey/course-catalog/services"
	"github.com/sahilchouksey/course-catalog/utils/response"
	"github.com/sahilchouksey/course-catalog/utils/validation"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	service *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{
		service: service,
	}
}

// GetCourseByID handles GET /courses/id/:id
func (h *CourseHandler) GetCourseByID(c *fiber.Ctx) error {
	id, err := parseCourseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	course, err := h.service.GetCourse(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, database.ErrCourseNotFound) {
			return response.StatusOnly(c, fiber.StatusNotFound)
		}
		log.Errorf("[COURSE] GetCourseByID %d failed: %v", id, err)
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// GetCoursesByCategory handles GET /courses/cat/:category
func (h *CourseHandler) GetCoursesByCategory(c *fiber.Ctx) error {
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		return response.BadRequest(c, "Invalid category")
	}

	courses, err := h.service.CoursesByCategory(c.UserContext(), category)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoCategoryResults):
			return response.NotFound(c, services.ErrorMessage(err))
		case errors.Is(err, services.ErrBlankCategory):
			return response.BadRequest(c, services.ErrorMessage(err))
		}
		log.Errorf("[COURSE] GetCoursesByCategory %q failed: %v", category, err)
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, courses)
}

// GetTopCourses handles GET /courses/top
func (h *CourseHandler) GetTopCourses(c *fiber.Ctx) error {
	courses, err := h.service.TopFeatured(c.UserContext())
	if err != nil {
		log.Errorf("[COURSE] GetTopCourses failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch featured courses")
	}

	return response.Success(c, courses)
}

// GetCategories handles GET /courses/categories
func (h *CourseHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		log.Errorf("[COURSE] GetCategories failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch categories")
	}

	return response.Success(c, categories)
}

// SearchCourses handles GET /courses/search?title=&page=
func (h *CourseHandler) SearchCourses(c *fiber.Ctx) error {
	title := c.Query("title", "")

	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		return response.BadRequest(c, services.MsgInvalidPage)
	}

	slice, err := h.service.SearchByTitle(c.UserContext(), title, page)
	if err != nil {
		if errors.Is(err, services.ErrSearchTooShort) || errors.Is(err, services.ErrInvalidPage) {
			return response.BadRequest(c, services.ErrorMessage(err))
		}
		log.Errorf("[COURSE] SearchCourses %q page %d failed: %v", title, page, err)
		return response.InternalServerError(c, "Failed to search courses")
	}

	return response.Success(c, slice)
}

// InsertCourse handles POST /courses/insert
func (h *CourseHandler) InsertCourse(c *fiber.Ctx) error {
	var req model.Course
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.service.InsertCourse(c.UserContext(), req)
	if err != nil {
		return h.writeError(c, "InsertCourse", err)
	}

	return response.Success(c, course)
}

// UpdateCourse handles PUT /courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := parseCourseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req model.Course
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.service.UpdateCourse(c.UserContext(), id, req)
	if err != nil {
		return h.writeError(c, fmt.Sprintf("UpdateCourse %d", id), err)
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := parseCourseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.service.DeleteCourse(c.UserContext(), id); err != nil {
		if errors.Is(err, database.ErrCourseNotFound) {
			return response.StatusOnly(c, fiber.StatusNotFound)
		}
		log.Errorf("[COURSE] DeleteCourse %d failed: %v", id, err)
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.Text(c, fmt.Sprintf("Course with ID %d has been successfully deleted.", id))
}

func (h *CourseHandler) writeError(c *fiber.Ctx, op string, err error) error {
	if vErr, ok := validation.AsValidationError(err); ok {
		return response.ValidationError(c, vErr, vErr.Fields)
	}
	log.Errorf("[COURSE] %s failed: %v", op, err)
	return response.InternalServerError(c, "Failed to save course")
}

// parseCourseID reads the :id path parameter as a positive integer that
// fits a BIGINT column
func parseCourseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 63)
	if err != nil || id == 0 {
		return 0, errors.New("Invalid course ID")
	}
	return uint(id), nil
}
