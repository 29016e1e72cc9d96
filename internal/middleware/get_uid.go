package middleware

import "github.com/gofiber/fiber/v2"

// UIDFromLocals returns the user id set by JWTUidOnly, or "" when the request
// carried no token.
func UIDFromLocals(c *fiber.Ctx) string {
	uid, _ := c.Locals("user_id").(string)
	return uid
}
