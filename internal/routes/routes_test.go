package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-admin/internal/models"
	"hospital-admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func stubTable() []Route {
	table := Table(nil)
	for i := range table {
		table[i].Handler = func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	}
	return table
}

func TestTable_UniqueRoutes(t *testing.T) {
	seen := map[string]bool{}
	for _, route := range Table(nil) {
		key := route.Method + " " + route.Path
		assert.False(t, seen[key], "duplicate route %s", key)
		seen[key] = true
	}
}

func TestTable_RoleSets(t *testing.T) {
	roles := map[string][]models.Role{}
	for _, route := range Table(nil) {
		roles[route.Method+" "+route.Path] = route.Roles
	}

	assert.Nil(t, roles["GET /login"])
	assert.Nil(t, roles["POST /registrar"])
	assert.Nil(t, roles["GET /logout"])
	assert.Equal(t, []models.Role{models.RoleAdmin}, roles["GET /usuarios"])
	assert.Equal(t, []models.Role{models.RoleAdmin}, roles["POST /eliminar-registros"])
	assert.ElementsMatch(t, []models.Role{models.RoleAdmin, models.RoleMedico}, roles["POST /submit-data"])
	assert.ElementsMatch(t, []models.Role{models.RoleAdmin, models.RoleIngeniero}, roles["POST /gestionar"])
	assert.Equal(t, []models.Role{models.RolePaciente}, roles["GET /ver-mis-datos"])
	assert.Equal(t, []models.Role{models.RoleIngeniero}, roles["GET /buscar-equipos"])
	assert.Equal(t, []models.Role{models.RoleMedico}, roles["POST /upload-pdf"])
	assert.ElementsMatch(t, models.Roles, roles["GET /medicos"])
	for _, key := range []string{"GET /equipos-e-x", "POST /upload-e-x", "GET /download-e-x"} {
		assert.ElementsMatch(t, []models.Role{models.RoleAdmin, models.RoleMedico}, roles[key], key)
	}
}

// Every protected route answers 403 to roles outside its set and runs the
// handler for roles inside it.
func TestRegister_EveryRouteRolePair(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), []byte("secret"), time.Hour, false)
	table := stubTable()

	r := gin.New()
	Register(r, mgr, zap.NewNop(), table)

	tokens := map[models.Role]string{}
	for i, role := range models.Roles {
		token, err := mgr.Create(context.Background(), session.Identity{ID: uint64(i + 1), Username: "u", Role: role})
		require.NoError(t, err)
		tokens[role] = token
	}

	for _, route := range table {
		for _, role := range models.Roles {
			req := httptest.NewRequest(route.Method, route.Path, nil)
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tokens[role]})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			want := http.StatusForbidden
			if route.Roles == nil || lo.Contains(route.Roles, role) {
				want = http.StatusOK
			}
			assert.Equal(t, want, w.Code, "%s %s as %s", route.Method, route.Path, role)
		}
	}
}

func TestRegister_AnonymousRequests(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), []byte("secret"), time.Hour, false)
	table := stubTable()

	r := gin.New()
	Register(r, mgr, zap.NewNop(), table)

	for _, route := range table {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.Method, route.Path, nil))

		if route.Roles == nil {
			assert.Equal(t, http.StatusOK, w.Code, route.Path)
			continue
		}
		assert.Equal(t, http.StatusFound, w.Code, route.Path)
		assert.Equal(t, "/login", w.Header().Get("Location"), route.Path)
	}
}
