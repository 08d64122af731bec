package controller

import (
	"agri-assist-be/internal/pkg/serverutils"
	"agri-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistController interface {
	RegisterRoutes(r fiber.Router)
	Ping(ctx *fiber.Ctx) error
	DetectLanguage(ctx *fiber.Ctx) error
	TranslateToEnglish(ctx *fiber.Ctx) error
	TranslateFromEnglish(ctx *fiber.Ctx) error
	DetectIntent(ctx *fiber.Ctx) error
	Schemes(ctx *fiber.Ctx) error
	AgricultureInfo(ctx *fiber.Ctx) error
	MandiPrices(ctx *fiber.Ctx) error
	Weather(ctx *fiber.Ctx) error
}

type assistController struct {
	service service.IAssistService
}

func NewAssistController(service service.IAssistService) IAssistController {
	return &assistController{service: service}
}

func (c *assistController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assist/v1")
	h.Get("/ping", c.Ping)
	h.Get("/detect-language", c.DetectLanguage)
	h.Get("/translate-to-english", c.TranslateToEnglish)
	h.Get("/translate-from-english", c.TranslateFromEnglish)
	h.Get("/detect-intent", c.DetectIntent)
	h.Get("/schemes", c.Schemes)
	h.Get("/agriculture-info", c.AgricultureInfo)
	h.Get("/mandi-prices", c.MandiPrices)
	h.Get("/weather", c.Weather)
}

func (c *assistController) Ping(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("pong", nil))
}

func (c *assistController) DetectLanguage(ctx *fiber.Ctx) error {
	res, err := c.service.DetectLanguage(ctx.Context(), ctx.Query("text"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success detect language", res))
}

func (c *assistController) TranslateToEnglish(ctx *fiber.Ctx) error {
	res, err := c.service.TranslateToEnglish(ctx.Context(), ctx.Query("text"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success translate text", res))
}

func (c *assistController) TranslateFromEnglish(ctx *fiber.Ctx) error {
	res, err := c.service.TranslateFromEnglish(ctx.Context(), ctx.Query("text"), ctx.Query("target_lang"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success translate text", res))
}

func (c *assistController) DetectIntent(ctx *fiber.Ctx) error {
	res, err := c.service.DetectIntent(ctx.Context(), ctx.Query("query"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success detect intent", res))
}

func (c *assistController) Schemes(ctx *fiber.Ctx) error {
	res, err := c.service.Schemes(ctx.Context(), ctx.Query("query"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success answer schemes query", res))
}

func (c *assistController) AgricultureInfo(ctx *fiber.Ctx) error {
	res, err := c.service.AgricultureInfo(ctx.Context(), ctx.Query("query"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success answer agriculture query", res))
}

func (c *assistController) MandiPrices(ctx *fiber.Ctx) error {
	res, err := c.service.MandiPrices(ctx.Context(), ctx.Query("city"), ctx.Query("crop"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetch mandi prices", res))
}

func (c *assistController) Weather(ctx *fiber.Ctx) error {
	res, err := c.service.Weather(ctx.Context(), ctx.Query("city"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetch weather forecast", res))
}
