package routes

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// SetupStatic serves the browser client from dir, with / returning index.html.
func SetupStatic(app *fiber.App, dir string) {
	index := filepath.Join(dir, "index.html")
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
	app.Static("/", dir)
}
