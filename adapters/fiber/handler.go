package fiber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/jlbarros/tasko/core"
	"github.com/jlbarros/tasko/services"
)

// register returns the handler for POST /auth/register
func (a *Adapter) register(auth *services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		user, err := auth.Register(c.Context(), input)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(user)
	}
}

// login returns the handler for POST /auth/login
func (a *Adapter) login(auth *services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.LoginInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		result, err := auth.Login(c.Context(), input)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"user": fiber.Map{
				"id":    result.User.ID,
				"email": result.User.Email,
				"name":  result.User.Name,
			},
			"access_token": result.AccessToken,
			"token_type":   result.TokenType,
			"expires_in":   result.ExpiresIn,
		})
	}
}

// logout returns the handler for POST /auth/logout. Token revocation
// is a documented no-op; the endpoint always reports success.
func (a *Adapter) logout(auth *services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := auth.Logout(extractToken(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Successfully logged out"})
	}
}

// me returns the handler for GET /auth/me
func (a *Adapter) me() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(currentUser(c))
	}
}

// listTasks returns the handler for GET /tasks
func (a *Adapter) listTasks(tasks *services.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(services.DefaultPageSize)))

		result, err := tasks.List(c.Context(), currentUser(c).ID, page, limit)
		if err != nil {
			return respondError(c, err)
		}

		list := result.Tasks
		if list == nil {
			list = []*core.Task{}
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"tasks": list,
				"pagination": fiber.Map{
					"page":     result.Page,
					"limit":    result.Limit,
					"total":    result.Total,
					"has_next": result.HasNext(),
					"has_prev": result.HasPrev(),
				},
			},
		})
	}
}

// createTask returns the handler for POST /tasks
func (a *Adapter) createTask(tasks *services.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.TaskInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		task, err := tasks.Create(c.Context(), currentUser(c).ID, input)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    task,
		})
	}
}

// getTask returns the handler for GET /tasks/:id
func (a *Adapter) getTask(tasks *services.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		taskID, err := parseTaskID(c)
		if err != nil {
			return respondError(c, err)
		}

		task, err := tasks.Get(c.Context(), currentUser(c).ID, taskID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{"success": true, "data": task})
	}
}

// updateTask returns the handler for PUT /tasks/:id
func (a *Adapter) updateTask(tasks *services.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		taskID, err := parseTaskID(c)
		if err != nil {
			return respondError(c, err)
		}

		var patch core.TaskPatch
		if err := c.Bind().Body(&patch); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		task, err := tasks.Update(c.Context(), currentUser(c).ID, taskID, patch)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{"success": true, "data": task})
	}
}

// deleteTask returns the handler for DELETE /tasks/:id
func (a *Adapter) deleteTask(tasks *services.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		taskID, err := parseTaskID(c)
		if err != nil {
			return respondError(c, err)
		}

		if _, err := tasks.Delete(c.Context(), currentUser(c).ID, taskID); err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    nil,
			"message": "Task deleted successfully",
		})
	}
}

// toggleTask returns the handler for POST /tasks/:id/toggle. The flag
// is set to the supplied value, not flipped.
func (a *Adapter) toggleTask(tasks *services.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		taskID, err := parseTaskID(c)
		if err != nil {
			return respondError(c, err)
		}

		var body struct {
			Completed bool `json:"completed"`
		}
		if err := c.Bind().Body(&body); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		task, err := tasks.SetCompleted(c.Context(), currentUser(c).ID, taskID, body.Completed)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{"success": true, "data": task})
	}
}

// parseTaskID reads the :id route parameter. A non-numeric ID is
// reported as not-found rather than as a distinct error so malformed
// probes learn nothing.
func parseTaskID(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, core.ErrTaskNotFound
	}
	return id, nil
}

// respondError maps service errors to HTTP responses. 401 responses
// carry the WWW-Authenticate challenge required for bearer auth.
func respondError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status == http.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Never leak internals to the client
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// mapErrorToStatus maps core error types to HTTP status codes
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong),
		errors.Is(err, core.ErrPasswordNoUpper),
		errors.Is(err, core.ErrPasswordNoLower),
		errors.Is(err, core.ErrPasswordNoDigit),
		errors.Is(err, core.ErrPasswordNoSymbol),
		errors.Is(err, core.ErrNameRequired),
		errors.Is(err, core.ErrNameTooLong),
		errors.Is(err, core.ErrTitleRequired),
		errors.Is(err, core.ErrTitleTooLong):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrInactiveUser):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, core.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}
