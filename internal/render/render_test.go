package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, r *Renderer, name string, data Page) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		"login", "registro", "index", "listado", "gestionar", "form-medico",
		"form-hospital", "form-equipo", "carga-excel", "carga-pdf", "tabla", "mensaje",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestNav(t *testing.T) {
	paths := func(role models.Role) []string {
		return lo.Map(Nav(role), func(item NavItem, _ int) string { return item.Path })
	}

	assert.Equal(t, []string{"/", "/usuarios", "/gestionar", "/logout"}, paths(models.RoleAdmin))
	assert.Equal(t, []string{"/", "/mis-equipos", "/mis-pacientes", "/pacientes", "/logout"}, paths(models.RoleMedico))
	assert.Equal(t, []string{"/", "/equipos", "/medicos", "/logout"}, paths(models.RoleIngeniero))
	assert.Equal(t, []string{"/", "/medicos", "/ver-mis-datos", "/logout"}, paths(models.RolePaciente))
	assert.Empty(t, Nav(models.Role("pacientes")))
}

func TestRender_EscapesCells(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	body := renderPage(t, r, "tabla", Page{
		Title: "Pacientes",
		Nav:   Nav(models.RoleMedico),
		Data: Table{
			Heading: "Mis pacientes",
			Columns: []string{"nombre_paciente"},
			Rows:    [][]any{{"<script>alert(1)</script>"}, {nil}},
			Back:    "/",
		},
	})

	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, `href="/mis-pacientes"`)
	assert.NotContains(t, body, `href="/usuarios"`)
}

func TestRender_EmptyTable(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	body := renderPage(t, r, "tabla", Page{Title: "x", Data: Table{Heading: "Vacío", Columns: []string{"a", "b"}}})
	assert.Contains(t, body, "Sin registros")
}

func TestRender_LoginWithoutNav(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	body := renderPage(t, r, "login", Page{Title: "Login", Data: AuthPage{Error: "Usuario o contraseña incorrectos", Username: "ana"}})
	assert.Contains(t, body, "Usuario o contraseña incorrectos")
	assert.Contains(t, body, `value="ana"`)
	assert.NotContains(t, body, "nav-menu")
}

func TestRender_ListingUsesTextContent(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	body := renderPage(t, r, "listado", Page{
		Title: "Pacientes",
		Data: SearchPage{
			Heading:    "Pacientes registrados",
			SearchPath: "/buscar-pacientes",
			FilterPath: "/filtrar-pacientes",
			Filters:    []Option{{Value: "all", Label: "Todos"}},
		},
	})
	assert.Contains(t, body, `data-search="/buscar-pacientes"`)
	assert.Contains(t, body, "textContent")
	assert.NotContains(t, body, "innerHTML")
}

func TestRender_ThroughGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, err := New()
	require.NoError(t, err)

	engine := gin.New()
	engine.HTMLRender = r
	engine.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "mensaje", Page{Title: "Hecho", Data: Message{Heading: "Paciente guardado", Back: "/"}})
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "Paciente guardado")
}

func TestStylesheet(t *testing.T) {
	assert.Contains(t, string(Stylesheet()), ".nav-menu")
}
