package controller

import (
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetUserData(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IAuthService
	auth    fiber.Handler
}

func NewUserController(service service.IAuthService, auth fiber.Handler) IUserController {
	return &userController{service: service, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user")
	h.Use(c.auth)
	h.Get("/data", c.GetUserData)
}

func (c *userController) GetUserData(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetUserData(ctx.UserContext(), caller.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get user data", res))
}
