package api_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
)

/*
 * Common constants and helper functions for API end-to-end tests.
 * This includes container setup, account helpers, and assertions.
 */

const (
	testImageName  = "pixelfeed-api-test:latest"
	minioImageName = "minio/minio:latest"

	testJWTSecret = "e2e-signing-secret-not-for-production"
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
	mediaBucket   = "pixelfeed-media"

	defaultPassword = "CorrectHorse9"
)

// tinyPNG is a 1x1 transparent PNG, small but structurally valid.
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building API Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up API Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/api/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupAPIStack starts MinIO and the API service on a shared network and
// returns the API base URL. Containers and the network are torn down via
// t.Cleanup.
func setupAPIStack(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	net, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = net.Remove(ctx) })

	// Pre-creating the bucket directory makes MinIO serve it on startup.
	minioReq := testcontainers.ContainerRequest{
		Image:        minioImageName,
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     minioUser,
			"MINIO_ROOT_PASSWORD": minioPassword,
		},
		Entrypoint: []string{"sh", "-c",
			fmt.Sprintf("mkdir -p /data/%s && minio server /data", mediaBucket)},
		Networks:       []string{net.Name},
		NetworkAliases: map[string][]string{net.Name: {"minio"}},
		WaitingFor: wait.ForHTTP("/minio/health/live").
			WithPort("9000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: minioReq,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := minioContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	})

	apiReq := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"API_JWT_SECRET":    testJWTSecret,
			"API_DATABASE_FILE": "/pixelfeed.db",
			"S3_ENDPOINT":       "http://minio:9000",
			"S3_ACCESS_KEY":     minioUser,
			"S3_SECRET_KEY":     minioPassword,
			"S3_BUCKET":         mediaBucket,
			"ENV":               "test",
			"LOG_LEVEL":         "info",
			"LOG_FORMAT":        "json",
		},
		Networks: []string{net.Name},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	apiContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: apiReq,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := apiContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate api container: %v", err)
		}
	})

	mappedPort, err := apiContainer.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := apiContainer.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// registerUser creates an account with the default password.
func registerUser(t *testing.T, client *apisdk.SDKClient, username string) *apisdk.UserResponse {
	t.Helper()

	user, err := client.Register(context.Background(), apisdk.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: defaultPassword,
	})
	require.NoError(t, err, "Registration should succeed")
	require.NotEmpty(t, user.ID)
	return user
}

// loginUser logs in with the default password and returns the access token.
func loginUser(t *testing.T, client *apisdk.SDKClient, username string) string {
	t.Helper()

	token, err := client.Login(context.Background(), apisdk.LoginRequest{
		Email:    username + "@example.com",
		Password: defaultPassword,
	})
	require.NoError(t, err, "Login should succeed")
	assertTokenResponse(t, token)
	return token.AccessToken
}

// assertTokenResponse verifies a token response has all required fields.
func assertTokenResponse(t *testing.T, resp *apisdk.TokenResponse) {
	t.Helper()
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.AccessToken, "Access token should not be empty")
	require.Equal(t, "bearer", resp.TokenType, "Token type should be bearer")
	require.Positive(t, resp.ExpiresIn, "Expiry should be set")
}

// assertAPIError verifies err is an APIError with the given status and code.
func assertAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
