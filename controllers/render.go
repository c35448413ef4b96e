package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// PageAttrs are the attributes every server-rendered page receives.
type PageAttrs struct {
	Username  string
	AvatarURL string
}

// render answers with the named view, or with the JSON of model when the client
// prefers JSON.
func (a PageAttrs) render(c *fiber.Ctx, view string, bind fiber.Map, model any) error {
	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.JSON(model)
	}
	bind["username"] = a.Username
	bind["urlAvatar"] = a.AvatarURL
	return c.Render(view, bind)
}
