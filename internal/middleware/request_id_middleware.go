package middleware

import (
	"github.com/fadilmartias/resume-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestID assigns every request an X-Request-ID, generated when absent.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// PropagateRequestID must run after RequestID.
func PropagateRequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.GetRespHeader(fiber.HeaderXRequestID)
		c.SetUserContext(util.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}
