package controller

import (
	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICalendarEventController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ListLegacy(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	CreateLegacy(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateLegacy(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	DeleteLegacy(ctx *fiber.Ctx) error
}

type calendarEventController struct {
	service service.ICalendarEventService
	auth    fiber.Handler
}

func NewCalendarEventController(service service.ICalendarEventService, auth fiber.Handler) ICalendarEventController {
	return &calendarEventController{service: service, auth: auth}
}

// RegisterRoutes serves two response shapes. The root routes speak the
// calendar widget format; /all, /create, /update/:id and /delete/:id keep the
// older {success, ...} bodies. Legacy paths are registered first so /:id does
// not swallow them.
func (c *calendarEventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/events")
	admin := []fiber.Handler{c.auth, serverutils.RequireAdmin}

	h.Get("/all", c.ListLegacy)
	h.Post("/create", append(admin, c.CreateLegacy)...)
	h.Put("/update/:id", append(admin, c.UpdateLegacy)...)
	h.Delete("/delete/:id", append(admin, c.DeleteLegacy)...)

	h.Get("/", c.List)
	h.Post("/", append(admin, c.Create)...)
	h.Put("/:id", append(admin, c.Update)...)
	h.Delete("/:id", append(admin, c.Delete)...)
}

func calendarFormat(records []*dto.CalendarEventRecord) []*dto.CalendarEventResponse {
	res := make([]*dto.CalendarEventResponse, 0, len(records))
	for _, r := range records {
		res = append(res, r.CalendarFormat())
	}
	return res
}

func (c *calendarEventController) List(ctx *fiber.Ctx) error {
	records, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(calendarFormat(records))
}

func (c *calendarEventController) ListLegacy(ctx *fiber.Ctx) error {
	records, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(dto.CalendarEventListResponse{Success: true, Events: records})
}

func (c *calendarEventController) create(ctx *fiber.Ctx) (*dto.CalendarEventRecord, error) {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return nil, err
	}

	var req dto.CalendarEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return c.service.Create(ctx.UserContext(), caller, &req)
}

func (c *calendarEventController) Create(ctx *fiber.Ctx) error {
	record, err := c.create(ctx)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(record.CalendarFormat())
}

func (c *calendarEventController) CreateLegacy(ctx *fiber.Ctx) error {
	record, err := c.create(ctx)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.CalendarEventItemResponse{Success: true, Event: record})
}

func (c *calendarEventController) update(ctx *fiber.Ctx) (*dto.CalendarEventRecord, error) {
	var req dto.CalendarEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return c.service.Update(ctx.UserContext(), ctx.Params("id"), &req)
}

func (c *calendarEventController) Update(ctx *fiber.Ctx) error {
	record, err := c.update(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(record.CalendarFormat())
}

func (c *calendarEventController) UpdateLegacy(ctx *fiber.Ctx) error {
	record, err := c.update(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.CalendarEventItemResponse{Success: true, Event: record})
}

func (c *calendarEventController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"ok": true})
}

func (c *calendarEventController) DeleteLegacy(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(dto.CalendarEventMessageResponse{Success: true, Message: "Event deleted successfully"})
}
