//go:build integration

// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	app "user-registration/internal"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// client does not follow redirects so tests can assert on them.
var client = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// TestMain initializes the application against a real PostgreSQL database.
// Run with: go test -tags integration ./internal/api/...
func TestMain(m *testing.M) {
	setupEnvVars()

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)

	code := m.Run()

	testServer.Close()
	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// setupEnvVars points the application at the test database unless the
// environment already does.
func setupEnvVars() {
	defaults := map[string]string{
		"DB_HOST":         "localhost",
		"DB_PORT":         "5432",
		"DB_USER":         "user",
		"DB_PASSWORD":     "password",
		"DB_NAME":         "registrationdb_test",
		"DB_SSLMODE":      "disable",
		"DB_AUTO_MIGRATE": "true",
		"BCRYPT_COST":     "4",
	}
	for key, value := range defaults {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func clearDatabase(t *testing.T) {
	_, err := testApp.DB.Exec("TRUNCATE TABLE users RESTART IDENTITY CASCADE;")
	require.NoError(t, err, "Failed to truncate users")
}

func countUsers(t *testing.T) int {
	var n int
	require.NoError(t, testApp.DB.Get(&n, "SELECT COUNT(*) FROM users"))
	return n
}

func register(t *testing.T, values url.Values) (*http.Response, string) {
	resp, err := client.PostForm(testServer.URL+"/register", values)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func submission(username, email string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {"s3cret!"},
		"full_name": {"Test User"},
		"phone":     {""},
	}
}

func TestRegisterFormIntegration(t *testing.T) {
	resp, err := client.Get(testServer.URL + "/register")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Registration Form")
}

func TestRegisterIntegration(t *testing.T) {
	clearDatabase(t)

	t.Run("SuccessfulRegistration", func(t *testing.T) {
		resp, _ := register(t, submission("  jane_doe  ", "jane@example.com"))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/register/success", resp.Header.Get("Location"))
		assert.Equal(t, 1, countUsers(t))

		var row struct {
			Username     string `db:"username"`
			PasswordHash string `db:"password_hash"`
		}
		require.NoError(t, testApp.DB.Get(&row, "SELECT username, password_hash FROM users WHERE email = $1", "jane@example.com"))
		assert.Equal(t, "jane_doe", row.Username)
		assert.NotEqual(t, "s3cret!", row.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte("s3cret!")))
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		resp, body := register(t, submission("jane_doe", "other@example.com"))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "Username already exists")
		assert.Equal(t, 1, countUsers(t))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		resp, body := register(t, submission("someone_else", "jane@example.com"))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "Email already exists")
		assert.Equal(t, 1, countUsers(t))
	})

	t.Run("InvalidSubmission", func(t *testing.T) {
		resp, body := register(t, url.Values{
			"username": {"ab"}, "email": {"bad"}, "password": {"123"}, "full_name": {""},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		for _, msg := range []string{
			"Username must be at least 4 characters",
			"Email is invalid",
			"Password must be at least 6 characters",
			"Full name is required",
		} {
			assert.Contains(t, body, msg)
		}
		assert.Equal(t, 1, countUsers(t))
	})
}

func TestConcurrentDuplicateRegistrationIntegration(t *testing.T) {
	clearDatabase(t)

	const attempts = 8
	statuses := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.PostForm(testServer.URL+"/register", submission("racer", "racer@example.com"))
			if err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	created := 0
	for code := range statuses {
		if code == http.StatusSeeOther {
			created++
		} else {
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, countUsers(t))
}
