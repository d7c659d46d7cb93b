package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"wbl-portal-backend/config"
	"wbl-portal-backend/controllers"
	templatestorage "wbl-portal-backend/lib/template-storage"
	apimodels "wbl-portal-backend/models/api"
)

type templateApiController struct {
	controllers.BaseAPIController
}

func InitTemplateApiRouters(app *fiber.App) {
	controller := templateApiController{}
	app.Route("template", func(router fiber.Router) {
		router.Post("", controller.upload) // replace the form template, takes effect on the next render
		router.Get("", controller.get)
	})
}

func (c *templateApiController) upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("template")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("error opening template file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("error reading template file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = templatestorage.Instance.PutTemplate(ctx.UserContext(), config.Conf.Portal.TemplateKey, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error storing template")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *templateApiController) get(ctx *fiber.Ctx) error {
	body, err := templatestorage.Instance.GetTemplate(ctx.UserContext(), config.Conf.Portal.TemplateKey)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error fetching template")
	}
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="timesheet-template.docx"`)
	return ctx.Send(body)
}
