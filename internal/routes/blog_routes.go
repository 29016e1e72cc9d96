package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pllus/main-blog/internal/controllers"
)

// SetupRoutesBlog mounts /blogs. uid runs only on the writes that can take
// their author or commenter from a bearer token.
func SetupRoutesBlog(app *fiber.App, h *controllers.BlogHandler, uid fiber.Handler) {
	blogs := app.Group("/blogs")

	// curl http://localhost:3000/blogs/
	// curl "http://localhost:3000/blogs/?expand=names"
	blogs.Get("/", h.List)

	// curl -X POST http://localhost:3000/blogs/ \
	//   -H "Content-Type: application/json" \
	//   -d '{"title":"Hello","content":"World","author":"USER_OBJECT_ID"}'
	blogs.Post("/", uid, h.Create)

	// curl -X PUT http://localhost:3000/blogs/like/POST_OBJECT_ID
	blogs.Put("/like/:id", h.LikePost)

	// curl -X POST http://localhost:3000/blogs/POST_OBJECT_ID/comment \
	//   -H "Content-Type: application/json" \
	//   -d '{"content":"Nice post","userId":"USER_OBJECT_ID"}'
	blogs.Post("/:id/comment", uid, h.AddComment)

	// Position-addressed. Positions hold only while comments are append-only;
	// the id route below does not depend on that.
	// curl -X PUT http://localhost:3000/blogs/POST_OBJECT_ID/comment/like/0
	blogs.Put("/:id/comment/like/:index", h.LikeCommentAt)

	// curl -X PUT http://localhost:3000/blogs/POST_OBJECT_ID/comments/COMMENT_OBJECT_ID/like
	blogs.Put("/:id/comments/:commentId/like", h.LikeComment)
}
