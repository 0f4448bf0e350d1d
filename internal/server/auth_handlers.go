package server

import (
	"fmt"
	"strconv"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionLifetime = 7 * 24 * time.Hour

// LoginPage handles GET /auth/login/
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Next": c.Query("next"),
	})
}

// Login handles POST /auth/login/
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	next := c.FormValue("next")

	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return c.Render("login", fiber.Map{
			"Next":  next,
			"Error": "Invalid username or password.",
		})
	}

	if err := s.setSession(c, user); err != nil {
		return err
	}

	if next == "" {
		next = "/"
	}
	return c.Redirect(next, fiber.StatusFound)
}

// SignupPage handles GET /auth/signup/
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{})
}

// Signup handles POST /auth/signup/
func (s *Server) Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if username == "" || email == "" || password == "" {
		return c.Render("signup", fiber.Map{
			"Error": "Username, email and password are required.",
		})
	}

	existing, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return err
	}
	if existing == nil {
		existing, err = s.userRepo.GetByEmail(c.Context(), email)
		if err != nil {
			return err
		}
	}
	if existing != nil {
		return c.Render("signup", fiber.Map{
			"Error": "A user with that username or email already exists.",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return err
	}

	if err := s.setSession(c, user); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /auth/logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/", fiber.StatusFound)
}

// setSession mints a session token for the user and stores it in the
// session cookie.
func (s *Server) setSession(c *fiber.Ctx, user *models.User) error {
	token, err := s.generateToken(user)
	if err != nil {
		return models.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// generateToken creates a signed JWT for the given user.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      middleware.TokenIssuer,
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(sessionLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
