package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/easemart/easemart-backend/api/routes"
	"github.com/easemart/easemart-backend/internal/auth"
	"github.com/easemart/easemart-backend/internal/items"
	"github.com/easemart/easemart-backend/internal/users"
	"github.com/easemart/easemart-backend/pkg/config"
	"github.com/easemart/easemart-backend/pkg/db/models"
	"github.com/easemart/easemart-backend/pkg/logger"
	"github.com/easemart/easemart-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080", LogLevel: "info"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "easemart",
			ExpirationMinutes: 7200,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:     8 * 1024,
			ArgonTime:         1,
			ArgonParallelism:  1,
			ArgonSaltLen:      16,
			ArgonKeyLen:       32,
			MinLogonKeyLength: 6,
		},
	}
}

type testEnv struct {
	handler http.Handler
	db      *gorm.DB
	repo    *users.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Item{}))
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test"})

	usersRepo := users.NewRepository(gdb)
	itemsRepo := items.NewRepository(gdb)

	authService := auth.NewService(usersRepo, cfg.JWT, cfg.Password, logg)
	usersService := users.NewService(usersRepo, cfg.Password, logg)
	itemsService := items.NewService(itemsRepo, logg)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(cfg, logg, nil, registry, httpMetrics,
		usersRepo, authService, usersService, itemsService)

	return &testEnv{handler: handler, db: gdb, repo: usersRepo}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, email string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"full_name":"Test User","logon_key":"hunter2secret"}`, email)
	rec := e.do(t, http.MethodPost, "/api/v1/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"logon_key":"hunter2secret"}`, email)
	rec := e.do(t, http.MethodPost, "/api/v1/login", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Result struct {
			AccessToken string `json:"access_token"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Result.AccessToken)
	return envelope.Result.AccessToken
}

func (e *testEnv) promote(t *testing.T, email string) {
	t.Helper()
	res := e.db.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true)
	require.NoError(t, res.Error)
	require.EqualValues(t, 1, res.RowsAffected)
}

func TestWelcomeAndHealthArePublic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Welcome to Ease Mart API!")

	rec = env.do(t, http.MethodGet, "/health/live", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogRequiresBearerToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/item", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env.register(t, "shopper@example.com")
	token := env.login(t, "shopper@example.com")

	rec = env.do(t, http.MethodGet, "/api/v1/item", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":[]}`, rec.Body.String())
}

func TestCatalogMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "shopper@example.com")
	env.register(t, "manager@example.com")
	env.promote(t, "manager@example.com")

	shopper := env.login(t, "shopper@example.com")
	manager := env.login(t, "manager@example.com")

	body := `{"name":"rice","price":4.99,"quantity":12}`
	rec := env.do(t, http.MethodPost, "/api/v1/item", shopper, body)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/item", manager, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The create response carries only the new identifier.
	var envelope struct {
		Result map[string]string `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Result, 1)
	require.NotEmpty(t, envelope.Result["id"])

	// Both roles can read what the admin created.
	rec = env.do(t, http.MethodGet, "/api/v1/item/"+envelope.Result["id"], shopper, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "rice")

	rec = env.do(t, http.MethodPut, "/api/v1/item/"+envelope.Result["id"], manager, `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":1}`, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/v1/item/"+envelope.Result["id"], shopper, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/item/"+envelope.Result["id"], manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":1}`, rec.Body.String())
}

func TestAccountReadsAreOpenMutationsAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "shopper@example.com")
	env.register(t, "manager@example.com")
	env.promote(t, "manager@example.com")

	shopper := env.login(t, "shopper@example.com")
	manager := env.login(t, "manager@example.com")

	// Any authenticated caller may read accounts; the hash never leaks.
	rec := env.do(t, http.MethodGet, "/api/v1/user", shopper, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "manager@example.com")
	require.NotContains(t, rec.Body.String(), "logon_key")

	var self models.User
	require.NoError(t, env.db.Where("email = ?", "shopper@example.com").First(&self).Error)

	rec = env.do(t, http.MethodPut, "/api/v1/user/"+self.ID.String(), shopper, `{"full_name":"Sneaky"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/user/"+self.ID.String(), manager, `{"full_name":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":1}`, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/v1/user/"+self.ID.String(), shopper, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/user/"+self.ID.String(), manager, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":1}`, rec.Body.String())
}

func TestDeletedCallerLosesAccess(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "manager@example.com")
	env.promote(t, "manager@example.com")
	manager := env.login(t, "manager@example.com")

	var self models.User
	require.NoError(t, env.db.Where("email = ?", "manager@example.com").First(&self).Error)

	rec := env.do(t, http.MethodDelete, "/api/v1/user/"+self.ID.String(), manager, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// The token still parses but the stored access record is gone, so the
	// admin gate rejects the next privileged call.
	rec = env.do(t, http.MethodDelete, "/api/v1/user/"+self.ID.String(), manager, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "dupe@example.com")
	rec := env.do(t, http.MethodPost, "/api/v1/register", "",
		`{"email":"dupe@example.com","full_name":"Again","logon_key":"hunter2secret"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRequestMetricsAreRecorded(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}
