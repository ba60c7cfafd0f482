package middleware

import (
	"log/slog"
	"strings"

	"joylist/config"
	deliverycontext "joylist/internal/delivery/context"
	"joylist/internal/delivery/http/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for handlers to use.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
)

// AuthMiddleware validates the session tokens minted by the identity
// provider. Tokens are HS256 JWTs signed with the shared session secret;
// the subject claim carries the provider's user id.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Identity.SessionSecret)}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return m.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Failed to parse token claims")
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "User ID missing from token")
		}

		// Username is optional in the token; enrichment falls back to the
		// identity provider when absent.
		username, _ := claims["username"].(string)

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUsername, username)

		// Tag the request-scoped logger so every mutation log line carries
		// the authenticated identity.
		ctx := c.Request().Context()
		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, slog.Default()).
			With(slog.String("userID", userID))
		if username != "" {
			reqLogger = reqLogger.With(slog.String("username", username))
		}
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}
