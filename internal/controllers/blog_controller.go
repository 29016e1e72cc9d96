package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pllus/main-blog/dto"
	"github.com/pllus/main-blog/internal/apperr"
	mid "github.com/pllus/main-blog/internal/middleware"
	"github.com/pllus/main-blog/internal/services"
)

type BlogHandler struct {
	Svc *services.BlogService
}

// List godoc
// @Summary      List blog posts
// @Description  All posts with embedded comments, oldest first. With expand=names
// @Description  each post carries authorName and each comment userName (dto.BlogPostView).
// @Tags         blogs
// @Produce      json
// @Param        expand  query     string  false  "names"
// @Success      200     {array}   models.BlogPost
// @Router       /blogs/ [get]
func (h *BlogHandler) List(c *fiber.Ctx) error {
	if strings.EqualFold(c.Query("expand"), "names") {
		views, err := h.Svc.ListExpanded(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(views)
	}

	posts, err := h.Svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// Create godoc
// @Summary      Create a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBlogReq  true  "New post"
// @Success      201   {object}  models.BlogPost
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse  "invalid bearer token"
// @Router       /blogs/ [post]
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateBlogReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid body")
	}
	if body.Author == "" {
		body.Author = mid.UIDFromLocals(c)
	}
	post, err := h.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost godoc
// @Summary      Like a blog post
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Blog post ID"
// @Success      200  {object}  models.BlogPost
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /blogs/like/{id} [put]
func (h *BlogHandler) LikePost(c *fiber.Ctx) error {
	post, err := h.Svc.LikePost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// AddComment godoc
// @Summary      Comment on a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Blog post ID"
// @Param        body  body      dto.CreateCommentReq  true  "Comment"
// @Success      200   {object}  models.BlogPost
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse  "invalid bearer token"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /blogs/{id}/comment [post]
func (h *BlogHandler) AddComment(c *fiber.Ctx) error {
	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid body")
	}
	if body.UserID == "" {
		body.UserID = mid.UIDFromLocals(c)
	}
	post, err := h.Svc.AddComment(c.UserContext(), c.Params("id"), body)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// LikeCommentAt godoc
// @Summary      Like a comment by position
// @Tags         blogs
// @Produce      json
// @Param        id     path      string  true  "Blog post ID"
// @Param        index  path      int     true  "Comment index"
// @Success      200    {object}  models.BlogPost
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /blogs/{id}/comment/like/{index} [put]
func (h *BlogHandler) LikeCommentAt(c *fiber.Ctx) error {
	post, err := h.Svc.LikeCommentAt(c.UserContext(), c.Params("id"), c.Params("index"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// LikeComment godoc
// @Summary      Like a comment by id
// @Tags         blogs
// @Produce      json
// @Param        id         path      string  true  "Blog post ID"
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  models.BlogPost
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /blogs/{id}/comments/{commentId}/like [put]
func (h *BlogHandler) LikeComment(c *fiber.Ctx) error {
	post, err := h.Svc.LikeComment(c.UserContext(), c.Params("id"), c.Params("commentId"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}
