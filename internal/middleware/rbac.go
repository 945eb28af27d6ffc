package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// RequireRole rejects requests whose authenticated role is not in the allowed
// set. It runs after the JWT middleware, so a missing role means the token
// carried none and the request is refused.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make([]string, 0, len(roles))
	for _, role := range roles {
		if normalized := normalizeRoleValue(role); normalized != "" {
			allowed = append(allowed, normalized)
		}
	}

	return func(c *fiber.Ctx) error {
		current := normalizeRoleValue(c.Locals("user_role"))
		for _, role := range allowed {
			if current == role {
				return c.Next()
			}
		}
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
