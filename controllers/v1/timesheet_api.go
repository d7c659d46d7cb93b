package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"wbl-portal-backend/controllers"
	timesheethandler "wbl-portal-backend/lib/timesheet"
	"wbl-portal-backend/middleware"
	"wbl-portal-backend/models"
	apimodels "wbl-portal-backend/models/api"
	timesheetapimodels "wbl-portal-backend/models/api/timesheet"
)

type timesheetApiController struct {
	controllers.BaseAPIController
}

func InitTimesheetApiRouters(app *fiber.App) {
	controller := timesheetApiController{}
	app.Route("timesheets", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("pending", middleware.AdminRequired(), controller.listPending) // review queue, oldest first
		router.Get("export", middleware.AdminRequired(), controller.export)      // xlsx listing
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Put("submit", controller.submit)
			idRouter.Put("review", middleware.AdminRequired(), controller.review)
			idRouter.Put("sign", controller.sign)
			idRouter.Get("document", controller.document) // filled DOCX form
			idRouter.Get("pdf", controller.pdf)           // fallback when no template is uploaded
			idRouter.Post("send", controller.send)        // email the filled form to the counselor
		})
	})
}

func (c *timesheetApiController) create(ctx *fiber.Ctx) error {
	var payload timesheetapimodels.TimesheetCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	id, err := timesheethandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error creating timesheet")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

func (c *timesheetApiController) list(ctx *fiber.Ctx) error {
	var payload timesheetapimodels.TimesheetFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := timesheethandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error listing timesheets")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

func (c *timesheetApiController) listPending(ctx *fiber.Ctx) error {
	list, err := timesheethandler.Instance.ListPending()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error listing pending timesheets")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *timesheetApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := timesheethandler.Instance.Get(id)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error fetching timesheet")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *timesheetApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload timesheetapimodels.TimesheetUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = timesheethandler.Instance.Edit(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error updating timesheet")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *timesheetApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = timesheethandler.Instance.Submit(id, middleware.GetUserID(ctx))
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error submitting timesheet")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *timesheetApiController) review(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload timesheetapimodels.TimesheetReviewData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = timesheethandler.Instance.Review(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error reviewing timesheet")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *timesheetApiController) sign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload timesheetapimodels.TimesheetSignData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = timesheethandler.Instance.Sign(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error signing timesheet")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *timesheetApiController) document(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, file, err := timesheethandler.Instance.RenderDocument(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error rendering timesheet document")
	}
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(file)
}

func (c *timesheetApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, file, err := timesheethandler.Instance.RenderPDF(id)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error rendering timesheet pdf")
	}
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(file)
}

func (c *timesheetApiController) send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = timesheethandler.Instance.SendDocument(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, timesheethandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error sending timesheet document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *timesheetApiController) export(ctx *fiber.Ctx) error {
	status := models.TimesheetStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(fmt.Sprintf("unknown status %q", status)))
	}

	data, err := timesheethandler.Instance.ExportXLS(status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error exporting timesheets to Excel")
	}
	fileName := fmt.Sprintf("timesheets-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
