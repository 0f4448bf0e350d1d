package server

import (
	"net/url"
	"strings"
	"testing"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupCreatesUserAndSetsSession(t *testing.T) {
	srv, app := newTestApp(t, nil)

	resp, err := app.Test(formRequest("/auth/signup/", "", url.Values{
		"username": {"sarah"},
		"email":    {"sarah@test.com"},
		"password": {"12345"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "session=")

	user, err := srv.userRepo.GetByUsername(testCtx, "sarah")
	require.NoError(t, err)
	require.NotNil(t, user)
	// Stored as a bcrypt hash, never the raw password.
	assert.NotEqual(t, "12345", user.Password)
}

func TestSignupDuplicateUsernameRejected(t *testing.T) {
	srv, app := newTestApp(t, nil)
	createUser(t, srv.db, "sarah")

	resp, err := app.Test(formRequest("/auth/signup/", "", url.Values{
		"username": {"sarah"},
		"email":    {"other@test.com"},
		"password": {"12345"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "already exists")

	var count int64
	require.NoError(t, srv.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignupMissingFieldsRejected(t *testing.T) {
	_, app := newTestApp(t, nil)

	resp, err := app.Test(formRequest("/auth/signup/", "", url.Values{
		"username": {"sarah"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "required")
}

func TestLoginSuccessFollowsNext(t *testing.T) {
	srv, app := newTestApp(t, nil)
	createUser(t, srv.db, "sarah")

	resp, err := app.Test(formRequest("/auth/login/", "", url.Values{
		"username": {"sarah"},
		"password": {"12345"},
		"next":     {"/new/"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/new/", resp.Header.Get("Location"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "session=")
}

func TestLoginDefaultsToIndex(t *testing.T) {
	srv, app := newTestApp(t, nil)
	createUser(t, srv.db, "sarah")

	resp, err := app.Test(formRequest("/auth/login/", "", url.Values{
		"username": {"sarah"},
		"password": {"12345"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	srv, app := newTestApp(t, nil)
	createUser(t, srv.db, "sarah")

	resp, err := app.Test(formRequest("/auth/login/", "", url.Values{
		"username": {"sarah"},
		"password": {"wrong"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Invalid username or password.")
	assert.NotContains(t, resp.Header.Get("Set-Cookie"), "session=")
}

func TestLoginUnknownUser(t *testing.T) {
	_, app := newTestApp(t, nil)

	resp, err := app.Test(formRequest("/auth/login/", "", url.Values{
		"username": {"nobody"},
		"password": {"12345"},
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Invalid username or password.")
}

func TestLoginPageCarriesNext(t *testing.T) {
	_, app := newTestApp(t, nil)

	resp, err := app.Test(getRequest("/auth/login/?next=/new/", ""), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), `value="/new/"`)
}

func TestLogoutExpiresSession(t *testing.T) {
	srv, app := newTestApp(t, nil)
	user := createUser(t, srv.db, "sarah")
	session := sessionFor(t, srv, user)

	resp, err := app.Test(getRequest("/auth/logout/", session), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	setCookie := resp.Header.Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(setCookie, "session=;"), setCookie)
}
