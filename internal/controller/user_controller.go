package controller

import (
	"log"

	"ai-journal-be/internal/pkg/serverutils"
	"ai-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Me(ctx *fiber.Ctx) error
}

type userController struct {
	userService     service.IUserService
	authMiddleware  fiber.Handler
	touchMiddleware fiber.Handler
}

func NewUserController(
	userService service.IUserService,
	authMiddleware fiber.Handler,
	touchMiddleware fiber.Handler,
) IUserController {
	return &userController{
		userService:     userService,
		authMiddleware:  authMiddleware,
		touchMiddleware: touchMiddleware,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(c.authMiddleware)
	h.Use(c.touchMiddleware)
	h.Get("me", c.Me)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	uid := serverutils.Uid(ctx)

	res, err := c.userService.Me(ctx.Context(), uid)
	if err != nil {
		return mapNotFound(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}

// TouchMiddleware upserts the caller's profile row from the verified token
// claims so last_seen_at tracks activity. Failures never block the request.
func TouchMiddleware(userService service.IUserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		uid := serverutils.Uid(ctx)
		if uid != "" {
			email, _ := ctx.Locals("email").(string)
			name, _ := ctx.Locals("name").(string)
			var avatar *string
			if picture, ok := ctx.Locals("picture").(string); ok && picture != "" {
				avatar = &picture
			}
			if err := userService.Touch(ctx.Context(), uid, email, name, avatar); err != nil {
				log.Printf("[WARN] Failed to touch user %s: %v", uid, err)
			}
		}
		return ctx.Next()
	}
}
