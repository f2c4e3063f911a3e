package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/course-catalog/database"
	"github.com/sahilchouksey/course-catalog/handlers"
	course_handlers "github.com/sahilchouksey/course-catalog/handlers/course"
	"github.com/sahilchouksey/course-catalog/services"
	"github.com/sahilchouksey/course-catalog/utils"
	"github.com/sahilchouksey/course-catalog/utils/metrics"
	"github.com/sahilchouksey/course-catalog/utils/middleware"
)

// CatalogCacheMaxAge is the client cache lifetime of the featured and
// category listings
const CatalogCacheMaxAge = 60 * time.Minute

func SetupRoutes(app *fiber.App, store database.Storage) {
	courseService := services.NewCourseService(store)
	courseHandler := course_handlers.NewCourseHandler(courseService)

	app.Use(metrics.Middleware())

	// Health check and metrics
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))
	app.Get("/metrics", metrics.Handler())

	// Course routes
	courses := app.Group("/courses")
	courses.Get("/id/:id", courseHandler.GetCourseByID)
	courses.Get("/cat/:category", courseHandler.GetCoursesByCategory)
	courses.Get("/top", middleware.CacheControl(CatalogCacheMaxAge), courseHandler.GetTopCourses)
	courses.Get("/categories", middleware.CacheControl(CatalogCacheMaxAge), courseHandler.GetCategories)
	courses.Get("/search", courseHandler.SearchCourses)
	courses.Post("/insert", courseHandler.InsertCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", courseHandler.DeleteCourse)
}
