package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pllus/main-blog/internal/controllers"
)

func SetupRoutesUser(app *fiber.App, h *controllers.UserHandler) {
	users := app.Group("/users")

	// curl http://localhost:3000/users/
	users.Get("/", h.List)

	// curl -X POST http://localhost:3000/users/ \
	//   -H "Content-Type: application/json" \
	//   -d '{"name":"Alice","username":"alice","password":"secret"}'
	users.Post("/", h.Create)

	// curl -X POST http://localhost:3000/users/login \
	//   -H "Content-Type: application/json" \
	//   -d '{"username":"alice","password":"secret"}'
	users.Post("/login", h.Login)

	// curl http://localhost:3000/users/USER_OBJECT_ID
	users.Get("/:id", h.Get)
}
