// Package fiber exposes the tasko services over HTTP using the Fiber
// framework.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jlbarros/tasko"
)

type Adapter struct {
	app *fiber.App
}

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(t *tasko.Tasko) error {
	requireAuth := a.buildAuthMiddleware(t.Auth)

	auth := a.app.Group("/auth")
	auth.Post("/register", a.register(t.Auth))
	auth.Post("/login", a.login(t.Auth))

	account := auth.Group("")
	account.Use(requireAuth)
	account.Post("/logout", a.logout(t.Auth))
	account.Get("/me", a.me())

	tasks := a.app.Group("/tasks")
	tasks.Use(requireAuth)
	tasks.Get("/", a.listTasks(t.Tasks))
	tasks.Post("/", a.createTask(t.Tasks))
	tasks.Get("/:id", a.getTask(t.Tasks))
	tasks.Put("/:id", a.updateTask(t.Tasks))
	tasks.Delete("/:id", a.deleteTask(t.Tasks))
	tasks.Post("/:id/toggle", a.toggleTask(t.Tasks))

	a.app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	return nil
}
