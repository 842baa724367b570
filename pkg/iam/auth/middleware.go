package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tobyt50/PPALink-sub000/pkg/errx"
)

const authContextKey = "auth_context"

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing authentication token")
	CodeInvalidToken = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
)

func ErrMissingToken() *errx.Error { return ErrRegistry.New(CodeMissingToken) }
func ErrInvalidToken() *errx.Error { return ErrRegistry.New(CodeInvalidToken) }

// TokenMiddleware authenticates requests and stores the AuthContext in the
// request locals.
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Handle validates the bearer token (or, for websocket upgrades, the "token"
// query parameter) and rejects unauthenticated requests.
func (m *TokenMiddleware) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			return ErrMissingToken()
		}

		authCtx, err := m.tokens.Validate(raw)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, authCtx)
		return c.Next()
	}
}

// GetAuthContext retrieves the authenticated actor stored by the middleware.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
