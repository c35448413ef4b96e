package controllers

import (
	"salesproject-backend/dto"
	"salesproject-backend/middlewares"
	"salesproject-backend/services"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := ac.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Profile handles GET /api/users/:username.
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	p, err := ac.auth.Profile(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}
