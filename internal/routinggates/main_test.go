package routinggates

import (
	"os"
	"testing"
)

// productionEnv is applied before configuration.Use runs for the first time,
// so every gate sees the server as it runs in production.
var productionEnv = map[string]string{
	"GO_APP_ENV":        "production",
	"OPS_GUARD_ENABLED": "true",
	"OPS_GUARD_TOKEN":   opsToken,
	"OPS_GUARD_CIDRS":   "10.0.0.0/8",
}

const opsToken = "ops-secret"

func TestMain(m *testing.M) {
	for k, v := range productionEnv {
		if err := os.Setenv(k, v); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}
