package controllers

import (
	"net/url"

	"salesproject-backend/dto"
	"salesproject-backend/middlewares"
	"salesproject-backend/services"

	"github.com/gofiber/fiber/v2"
)

type CustomerController struct {
	customers *services.CustomerService
	attrs     PageAttrs
}

func NewCustomerController(customers *services.CustomerService, attrs PageAttrs) *CustomerController {
	return &CustomerController{customers: customers, attrs: attrs}
}

// Index handles GET /clientes.
func (cc *CustomerController) Index(c *fiber.Ctx) error {
	list, err := cc.customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return cc.attrs.render(c, "cliente", fiber.Map{"clientes": list}, list)
}

// DetailQuery handles GET /clientes/detalhe?cpf=.
func (cc *CustomerController) DetailQuery(c *fiber.Ctx) error {
	return cc.detail(c, c.Query("cpf"))
}

// DetailPath handles GET /clientes/detalhe/:cpf.
func (cc *CustomerController) DetailPath(c *fiber.Ctx) error {
	cpf, err := url.PathUnescape(c.Params("cpf"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cpf")
	}
	return cc.detail(c, cpf)
}

func (cc *CustomerController) detail(c *fiber.Ctx, cpf string) error {
	view, err := cc.customers.Detail(c.UserContext(), cpf)
	if err != nil {
		return err
	}
	return cc.attrs.render(c, "detalhe-cliente", fiber.Map{"cliente": view}, view)
}

// Save handles POST /clientes/save with a form or JSON body.
func (cc *CustomerController) Save(c *fiber.Ctx) error {
	var view dto.CustomerView
	if err := middlewares.BindAndValidate(c, &view); err != nil {
		return err
	}
	saved, err := cc.customers.Save(c.UserContext(), view)
	if err != nil {
		return err
	}
	return c.Redirect("/pedidos/detalhe/"+url.PathEscape(saved.Cpf), fiber.StatusFound)
}
