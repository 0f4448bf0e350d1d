package middleware

import (
	"strconv"
	"strings"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the session token for HTML views.
const SessionCookie = "session"

// LoginURL is where unauthenticated requests to protected views are sent.
const LoginURL = "/auth/login/"

// TokenIssuer identifies tokens minted by this application.
const TokenIssuer = "yatube"

// ParseToken validates tokenString against secret and returns the user
// ID and username claims.
func ParseToken(secret, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return 0, "", models.NewUnauthorizedError("Invalid token issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", models.NewUnauthorizedError("Invalid user ID in token")
	}

	username, _ := claims["username"].(string)
	return uint(userID), username, nil
}

// sessionToken extracts the token for the request: the session cookie
// for HTML views, or a Bearer header for API clients.
func sessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return ""
}

// LoadUser attaches the authenticated user's ID and username to the
// request context when valid credentials are present. It never blocks
// the request; anonymous visitors continue as-is.
func LoadUser(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := sessionToken(c); tokenString != "" {
			if userID, username, err := ParseToken(secret, tokenString); err == nil {
				c.Locals("userID", userID)
				c.Locals("username", username)
			}
		}
		return c.Next()
	}
}

// RequireLogin guards HTML views. Unauthenticated requests are
// redirected to the login view with a "next" parameter pointing back at
// the original URL, mirroring the classic login-required behavior.
func RequireLogin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := sessionToken(c)
		if tokenString == "" {
			return c.Redirect(LoginURL+"?next="+c.OriginalURL(), fiber.StatusFound)
		}

		userID, username, err := ParseToken(secret, tokenString)
		if err != nil {
			return c.Redirect(LoginURL+"?next="+c.OriginalURL(), fiber.StatusFound)
		}

		c.Locals("userID", userID)
		c.Locals("username", username)
		return c.Next()
	}
}

// RequireAPIAuth guards JSON endpoints. Unauthenticated requests get a
// 401 response instead of a redirect.
func RequireAPIAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := sessionToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, username, err := ParseToken(secret, tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", userID)
		c.Locals("username", username)
		return c.Next()
	}
}

// UserID returns the authenticated user's ID from the request context.
// The bool is false for anonymous requests.
func UserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}
