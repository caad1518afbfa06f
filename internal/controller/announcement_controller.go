package controller

import (
	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnnouncementController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type announcementController struct {
	service service.IAnnouncementService
	auth    fiber.Handler
}

func NewAnnouncementController(service service.IAnnouncementService, auth fiber.Handler) IAnnouncementController {
	return &announcementController{service: service, auth: auth}
}

func (c *announcementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/announcements")
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Post("/", c.auth, serverutils.RequireAdmin, c.Create)
	h.Put("/:id", c.auth, serverutils.RequireAdmin, c.Update)
	h.Delete("/:id", c.auth, serverutils.RequireAdmin, c.Delete)
}

func (c *announcementController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get announcements", res))
}

func (c *announcementController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get announcement", res))
}

func (c *announcementController) Create(ctx *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Announcement created", res))
}

func (c *announcementController) Update(ctx *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.service.Update(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Announcement updated", res))
}

func (c *announcementController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Announcement deleted successfully", nil))
}
