package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/pkg/errx"
)

const authContextKey = "portal_auth_context"

// AuthContext is the verified identity attached to a request.
type AuthContext struct {
	UserID string
	Roles  []Role
}

var errRegistry = errx.NewRegistry("AUTH")

var (
	codeMissingToken = errRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing or malformed authorization header")
	codeInvalidToken = errRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	codeForbidden    = errRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient role for this resource")
)

// ErrMissingToken reports an absent or malformed authorization header.
func ErrMissingToken() *errx.Error {
	return errRegistry.New(codeMissingToken)
}

// ErrForbidden reports a role check failure.
func ErrForbidden() *errx.Error {
	return errRegistry.New(codeForbidden)
}

// Middleware verifies the bearer token and stores the AuthContext on the
// request.
type Middleware struct {
	tokens *TokenService
}

func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate requires a valid bearer token.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return errRegistry.New(codeMissingToken)
		}

		claims, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return errRegistry.NewWithCause(codeInvalidToken, err)
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID.String(),
			Roles:  claims.Roles,
		})
		return c.Next()
	}
}

// RequireRole gates a route on a role predicate. Must run after Authenticate.
func (m *Middleware) RequireRole(pred RolePredicate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return errRegistry.New(codeMissingToken)
		}
		if !pred(authCtx.Roles) {
			return errRegistry.New(codeForbidden).WithDetail("user_id", authCtx.UserID)
		}
		return c.Next()
	}
}

// GetAuthContext retrieves the verified identity from the request, if any.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
