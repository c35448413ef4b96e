package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salesproject-backend/controllers"
	"salesproject-backend/metrics"
	"salesproject-backend/middlewares"
)

// Deps are the handlers and shared handles the routes are wired to.
type Deps struct {
	DB        *gorm.DB
	Auth      *controllers.AuthController
	Customers *controllers.CustomerController
	Orders    *controllers.OrderController
	Projects  *controllers.ProjectController
}

// Register wires all HTTP routes.
func Register(app *fiber.App, d Deps) {
	app.Get("/health", health(d.DB))
	app.Get("/metrics", metrics.Handler())

	// Per-request transaction for every mutating route below.
	app.Use(middlewares.Tx(d.DB))

	// Server-rendered sales pages (public)
	app.Get("/clientes", d.Customers.Index)
	app.Get("/clientes/detalhe", d.Customers.DetailQuery)
	app.Get("/clientes/detalhe/:cpf", d.Customers.DetailPath)
	app.Post("/clientes/save", d.Customers.Save)
	app.Get("/pedidos", d.Orders.Index)
	app.Get("/pedidos/detalhe/:cpf", d.Orders.Detail)
	app.Post("/pedidos/save", d.Orders.Save)

	// Public auth endpoint
	api := app.Group("/api")
	api.Post("/auth/login", d.Auth.Login)

	// Protected endpoints (JWT auth)
	api.Get("/users/:username", middlewares.IsAuthenticatedHeader(), d.Auth.Profile)

	project := app.Group("/project", middlewares.IsAuthenticatedHeader())
	project.Get("/", d.Projects.List)
	project.Post("/", d.Projects.Create)
	// Fixed paths before /:id
	project.Get("/status-not/:status", d.Projects.StatusNot)
	project.Get("/by-task-priority/:priority", d.Projects.ByTaskPriority)
	project.Get("/latest", d.Projects.Latest)
	project.Get("/:id", d.Projects.Get)
	project.Put("/:id", d.Projects.Update)
	project.Patch("/:id", d.Projects.Patch)
	project.Delete("/:id", d.Projects.Delete)
	project.Post("/:id/tasks", d.Projects.AddTask)
	project.Delete("/:id/tasks/:taskId", d.Projects.RemoveTask)
}

func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
