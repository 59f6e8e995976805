package errors

import (
	"errors"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/constants"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/service"
	"github.com/gofiber/fiber/v2"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    constants.ErrCodeInternalError,
				"message": fiberErr.Message,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    constants.ErrCodeInternalError,
			"message": constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	status := constants.GetHTTPStatus(err.Code)

	message := constants.GetErrorMessage(err.Code)
	if err.Code == constants.ErrCodeInvalidRequestBody && err.Cause != nil {
		message = err.Cause.Error()
	}

	payload := fiber.Map{
		"code":    err.Code,
		"message": message,
	}
	if err.MessageID != "" {
		payload["messageId"] = err.MessageID
	}
	if err.VendorCode != "" {
		payload["statusCode"] = err.VendorCode
		payload["statusDesc"] = err.VendorDesc
	}
	if err.AuditIncomplete {
		payload["auditIncomplete"] = true
	}

	return c.Status(status).JSON(payload)
}
