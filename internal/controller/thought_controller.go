package controller

import (
	"strconv"
	"strings"

	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/pkg/serverutils"
	"ai-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IThoughtController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	DailyCounts(ctx *fiber.Ctx) error
}

type thoughtController struct {
	thoughtService  service.IThoughtService
	authMiddleware  fiber.Handler
	touchMiddleware fiber.Handler
}

func NewThoughtController(
	thoughtService service.IThoughtService,
	authMiddleware fiber.Handler,
	touchMiddleware fiber.Handler,
) IThoughtController {
	return &thoughtController{
		thoughtService:  thoughtService,
		authMiddleware:  authMiddleware,
		touchMiddleware: touchMiddleware,
	}
}

func (c *thoughtController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/thought/v1")
	h.Use(c.authMiddleware)
	h.Use(c.touchMiddleware)
	h.Get("stats/daily", c.DailyCounts)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/status", c.Status)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *thoughtController) Create(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)

	var req dto.CreateThoughtRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.thoughtService.Create(ctx.Context(), uid, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create thought", res))
}

func (c *thoughtController) Show(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	res, err := c.thoughtService.Show(ctx.Context(), uid, id)
	if err != nil {
		return mapNotFound(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show thought", res))
}

func (c *thoughtController) List(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)

	query := dto.ListThoughtsQuery{
		Cursor:    ctx.Query("cursor"),
		Limit:     ctx.QueryInt("limit"),
		Tags:      splitTags(ctx.Query("tags")),
		Day:       ctx.Query("day"),
		Month:     ctx.Query("month"),
		OffsetMin: ctx.QueryFloat("offset_min"),
	}

	res, err := c.thoughtService.List(ctx.Context(), uid, &query)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list thoughts", res))
}

func (c *thoughtController) Update(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateThoughtRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.thoughtService.Update(ctx.Context(), uid, &req)
	if err != nil {
		return mapNotFound(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update thought", res))
}

func (c *thoughtController) Delete(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	if err := c.thoughtService.Delete(ctx.Context(), uid, id); err != nil {
		return mapNotFound(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete thought", nil))
}

func (c *thoughtController) Status(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	res, err := c.thoughtService.Status(ctx.Context(), uid, id)
	if err != nil {
		return mapNotFound(err)
	}

	// res is nil for a thought with no jobs; the envelope carries null data.
	return ctx.JSON(serverutils.SuccessResponse("Success show thought status", res))
}

func (c *thoughtController) DailyCounts(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)

	query := dto.DailyCountsQuery{
		Month:     ctx.Query("month"),
		OffsetMin: ctx.QueryFloat("offset_min"),
		Tags:      splitTags(ctx.Query("tags")),
	}
	if query.Month == "" {
		return fiber.NewError(fiber.StatusBadRequest, "month is required")
	}

	res, err := c.thoughtService.DailyCounts(ctx.Context(), uid, &query)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success daily counts", res))
}

func parseId(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func mapNotFound(err error) error {
	if service.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
