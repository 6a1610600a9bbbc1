package controllers

import (
	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/models"
)

func errorJSON(ctx *fiber.Ctx, status int, code, message string) error {
	return ctx.Status(status).JSON(models.ErrorResponse{
		Status:    "error",
		ErrorCode: code,
		Message:   message,
	})
}
