package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pllus/main-blog/dto"
	"github.com/pllus/main-blog/internal/apperr"
	"github.com/pllus/main-blog/internal/services"
)

type UserHandler struct {
	Svc *services.UserService
	// Tokens is nil when JWT_SECRET is unset.
	Tokens *services.TokenIssuer
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.User
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /users/ [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Get godoc
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      400  {object}  dto.ErrorResponse  "malformed id"
// @Failure      404  {object}  dto.ErrorResponse  "user not found"
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Create godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserReq  true  "New user"
// @Success      201   {object}  models.User
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /users/ [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateUserReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid body")
	}
	user, err := h.Svc.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Log in
// @Description  Returns the matching user. When access tokens are enabled the
// @Description  Authorization response header carries a bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginReq  true  "Credentials"
// @Success      200   {object}  models.User
// @Failure      401   {object}  dto.ErrorResponse  "invalid credentials"
// @Router       /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid body")
	}
	user, err := h.Svc.Login(c.UserContext(), body)
	if err != nil {
		return err
	}

	if h.Tokens != nil {
		tok, err := h.Tokens.Issue(user.ID)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	return c.JSON(user)
}
