package utils

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Config is loaded lazily by the helpers under test; the secret must be
	// present before the first access and Redis stays disabled.
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("REDIS_HOST", "")
	os.Exit(m.Run())
}
