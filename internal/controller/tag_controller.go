package controller

import (
	"ai-journal-be/internal/pkg/serverutils"
	"ai-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService      service.ITagService
	authMiddleware  fiber.Handler
	touchMiddleware fiber.Handler
}

func NewTagController(
	tagService service.ITagService,
	authMiddleware fiber.Handler,
	touchMiddleware fiber.Handler,
) ITagController {
	return &tagController{
		tagService:      tagService,
		authMiddleware:  authMiddleware,
		touchMiddleware: touchMiddleware,
	}
}

func (c *tagController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tag/v1")
	h.Use(c.authMiddleware)
	h.Use(c.touchMiddleware)
	h.Get("", c.List)
}

func (c *tagController) List(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)

	res, err := c.tagService.List(ctx.Context(), uid, ctx.Query("cursor"), ctx.QueryInt("limit"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tags", res))
}
