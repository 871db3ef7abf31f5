package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
)

const routes = `{
	"endpoints": [
		{"path": "/api/rooms", "method": "GET", "skip": true},
		{"path": "/api/rooms/{id}", "method": "DELETE", "permissions": ["admin"]},
		{"path": "/api/grid", "method": "GET", "permissions": ["admin", "staff"]},
		{"path": "/api/auth/password", "method": "PUT", "permissions": []}
	]
}`

func newRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	data, err := permissions.Parse([]byte(routes))
	require.NoError(t, err)

	tokens := jwt.New(cfg)
	authRole := middleware.NewAuthRoleMiddleware(tokens, mocks.NewOtel(), data, cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/api", func(api chi.Router) {
		api.Use(authRole.APIKey)
		api.Use(authRole.Auth)
		api.Use(authRole.RBAC)

		api.Get("/rooms", whoami)
		api.Delete("/rooms/{id}", whoami)
		api.Get("/grid", whoami)
		api.Put("/auth/password", whoami)
	})

	return router, tokens
}

func TestAuthRole(t *testing.T) {
	router, tokens := newRouter(t)

	admin, err := tokens.GenerateTokenPair(jwt.Subject{UserID: "u-admin", Email: "admin@hotel.local", Role: constant.RoleAdmin})
	require.NoError(t, err)

	staff, err := tokens.GenerateTokenPair(jwt.Subject{UserID: "u-staff", Email: "desk@hotel.local", Role: constant.RoleStaff})
	require.NoError(t, err)

	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		code    int
		user    string
	}{
		{name: "public route without token", method: http.MethodGet, path: "/api/rooms", code: http.StatusOK},
		{name: "missing header", method: http.MethodDelete, path: "/api/rooms/1", code: http.StatusUnauthorized},
		{
			name:    "malformed header",
			method:  http.MethodDelete,
			path:    "/api/rooms/1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Token " + admin.AccessToken},
			code:    http.StatusUnauthorized,
		},
		{
			name:    "refresh token used as access token",
			method:  http.MethodDelete,
			path:    "/api/rooms/1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + admin.RefreshToken},
			code:    http.StatusUnauthorized,
		},
		{
			name:    "staff on admin route",
			method:  http.MethodDelete,
			path:    "/api/rooms/1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + staff.AccessToken},
			code:    http.StatusForbidden,
		},
		{
			name:    "admin on admin route",
			method:  http.MethodDelete,
			path:    "/api/rooms/1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + admin.AccessToken},
			code:    http.StatusOK,
			user:    "u-admin",
		},
		{
			name:    "staff on shared route",
			method:  http.MethodGet,
			path:    "/api/grid",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + staff.AccessToken},
			code:    http.StatusOK,
			user:    "u-staff",
		},
		{
			name:    "any role on open route",
			method:  http.MethodPut,
			path:    "/api/auth/password",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + staff.AccessToken},
			code:    http.StatusOK,
			user:    "u-staff",
		},
		{
			name:    "internal api key",
			method:  http.MethodDelete,
			path:    "/api/rooms/1",
			headers: map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			code:    http.StatusOK,
			user:    constant.ContextSystem,
		},
		{
			name:    "wrong api key",
			method:  http.MethodDelete,
			path:    "/api/rooms/1",
			headers: map[string]string{constant.RequestHeaderAPIKey: "guess"},
			code:    http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.user, rec.Header().Get("X-User"))
		})
	}
}
