package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alchemorsel/nutriplan/internal/infrastructure/config"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

const testConfig = `
app:
  log_level: error
database:
  driver: sqlite
  path: ":memory:"
  seed: true
redis:
  enabled: false
monitoring:
  enable_tracing: false
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func TestModule_GraphIsComplete(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Module))
}

func TestOptions_WiresSeededService(t *testing.T) {
	var (
		service inbound.NutritionService
		server  *apiserver.Server
	)

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(ConfigPath(writeConfig(t))),
		ConfigModule,
		LoggerModule,
		DatabaseModule,
		CacheModule,
		MonitoringModule,
		RepositoryModule,
		NutritionModule,
		ServiceModule,
		HTTPModule,
		fx.Populate(&service, &server),
	)
	app.RequireStart()
	defer app.RequireStop()

	profile, err := service.GetProfile(context.Background(), sqlite.DemoProfileID)
	require.NoError(t, err)
	assert.Equal(t, sqlite.DemoProfileID, profile.ID)

	week, err := service.AdjustWeek(context.Background(), sqlite.DemoProfileID, 1, inbound.PolicyParams{})
	require.NoError(t, err)
	assert.Len(t, week.Days, 7)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"healthy"`)
}

func TestLoggerConfig_ProductionNeverDevelopment(t *testing.T) {
	tests := []struct {
		environment string
		debug       bool
		expected    bool
	}{
		{"development", true, true},
		{"development", false, false},
		{"production", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			cfg := &config.Config{App: config.AppConfig{
				Environment: tt.environment,
				Debug:       tt.debug,
				LogLevel:    "debug",
				LogFormat:   "console",
			}}

			got := loggerConfig(cfg)

			assert.Equal(t, tt.expected, got.Development)
			assert.Equal(t, "debug", got.Level)
			assert.Equal(t, "console", got.Format)
		})
	}
}
