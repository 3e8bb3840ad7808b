package folio_test

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/media/mediatest"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for folio end-to-end tests.
 * This includes container setup, account helpers, and assertions.
 */

const (
	testImageName = "folio-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "owner@folio.test"
	adminPassword  = "Admin123!"
	userPassword   = "Password1!"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Folio Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Folio Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/folio/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// relaxedLimits keeps the rapid request bursts of the e2e tests clear of the
// production rate limits.
var relaxedLimits = map[string]string{
	"LOGIN_RATE_LIMIT_MAX":        "1000",
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
	"RATELIMIT_PUBLIC_REQUESTS":   "1000",
	"RATELIMIT_PUBLIC_BURST":      "1000",
}

// setupFolioContainer starts folio with relaxed rate limits and returns an
// SDK client pointed at it.
func setupFolioContainer(t *testing.T) *foliosdk.Client {
	t.Helper()
	return startContainer(t, relaxedLimits)
}

// setupFolioContainerWithDefaultRateLimits uses the production limits, for
// tests that check rate limiting itself.
func setupFolioContainerWithDefaultRateLimits(t *testing.T) *foliosdk.Client {
	t.Helper()
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) *foliosdk.Client {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"JWT_SECRET":        "e2e-secret-e2e-secret-e2e-secret-0001",
		"BOOTSTRAP_TOKEN":   bootstrapToken,
		"DATABASE_URL":      "/data/folio.db",
		"PEPPER_FILE":       "/data/pepper",
		"MEDIA_DIR":         "/data/Media",
		"DEFAULT_IMAGE_URL": "/api/Media/default.webp",
		"ENV":               "test",
		"LOG_LEVEL":         "info",
		"LOG_FORMAT":        "json",
	}
	maps.Copy(env, extraEnv)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"5000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("5000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "5000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return foliosdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// bootstrapAdmin creates the site owner and logs in as them.
func bootstrapAdmin(t *testing.T, client *foliosdk.Client) *foliosdk.Session {
	t.Helper()
	ctx := t.Context()

	admin, err := client.Bootstrap(ctx, bootstrapToken, foliosdk.BootstrapRequest{
		FirstName: "Site",
		LastName:  "Owner",
		Username:  "owner",
		Email:     adminEmail,
		Phone:     "+61 400 000 001",
		Password:  adminPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.Equal(t, "admin", admin.Role)

	session, err := client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err, "Admin login should succeed")
	return session
}

// registerUser creates a regular account and logs in as it.
func registerUser(t *testing.T, client *foliosdk.Client, username string) (*foliosdk.Session, *foliosdk.UserResponse) {
	t.Helper()
	ctx := t.Context()

	user, err := client.Register(ctx, foliosdk.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     username + "@folio.test",
		Phone:     "+61 400 000 000",
		Password:  userPassword,
	})
	require.NoError(t, err, "Registration should succeed")

	session, err := client.Login(ctx, user.Email, userPassword)
	require.NoError(t, err, "Login should succeed")
	return session, user
}

func pngImage(name string) *foliosdk.File {
	return &foliosdk.File{Name: name, Data: mediatest.PNG}
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *foliosdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError verifies err carries the given status and error code.
func assertAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *foliosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code)
}
