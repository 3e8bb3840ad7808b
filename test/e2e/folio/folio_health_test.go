package folio_test

import (
	"testing"
)

// TestLivezEndpoint verifies the liveness check works before bootstrap.
func TestLivezEndpoint(t *testing.T) {
	client := setupFolioContainer(t)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the readiness check reports a healthy database.
func TestReadyzEndpoint(t *testing.T) {
	client := setupFolioContainer(t)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	if health.Checks != nil {
		t.Logf("database check: %s", health.Checks.Database)
	}
}
