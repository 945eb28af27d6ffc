package utils

import "github.com/gofiber/fiber/v2"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends a 200 success envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success envelope with the provided HTTP status.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	if message == "" {
		message = statusSuccess
	}

	return c.Status(status).JSON(APIResponse{
		Status:  statusSuccess,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error envelope with the given status code. Data is always
// omitted on errors.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = statusError
	}

	return c.Status(status).JSON(APIResponse{
		Status:  statusError,
		Message: message,
	})
}
