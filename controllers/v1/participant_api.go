package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"wbl-portal-backend/controllers"
	participanthandler "wbl-portal-backend/lib/participant"
	"wbl-portal-backend/middleware"
	apimodels "wbl-portal-backend/models/api"
	participantapimodels "wbl-portal-backend/models/api/participant"
)

type participantApiController struct {
	controllers.BaseAPIController
}

func InitParticipantApiRouters(app *fiber.App) {
	controller := participantApiController{}
	app.Route("participants", func(router fiber.Router) {
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Get("me", controller.me)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", middleware.AdminRequired(), controller.get)
			idRouter.Post("enrollment", middleware.AdminRequired(), controller.enroll)
		})
	})
}

func (c *participantApiController) create(ctx *fiber.Ctx) error {
	var payload participantapimodels.ParticipantCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	id, err := participanthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error creating participant")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

func (c *participantApiController) me(ctx *fiber.Ctx) error {
	view, err := participanthandler.Instance.Get(middleware.GetUserID(ctx))
	if err != nil {
		if errors.Is(err, participanthandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error fetching participant profile")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *participantApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := participanthandler.Instance.Get(id)
	if err != nil {
		if errors.Is(err, participanthandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error fetching participant")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *participantApiController) enroll(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload participantapimodels.EnrollmentCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	enrollmentID, err := participanthandler.Instance.Enroll(id, payload)
	if err != nil {
		if errors.Is(err, participanthandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error creating enrollment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(enrollmentID))
}
