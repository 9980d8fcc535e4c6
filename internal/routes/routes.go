package routes

import (
	"fmt"
	"net/http"
	"time"

	"hospital-admin/internal/handlers"
	"hospital-admin/internal/middleware"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Route is one row of the routing table. A nil Roles means public.
type Route struct {
	Method  string
	Path    string
	Roles   []models.Role
	Handler gin.HandlerFunc
}

var (
	anyRole        = models.Roles
	admin          = []models.Role{models.RoleAdmin}
	medico         = []models.Role{models.RoleMedico}
	ingeniero      = []models.Role{models.RoleIngeniero}
	paciente       = []models.Role{models.RolePaciente}
	adminMedico    = []models.Role{models.RoleAdmin, models.RoleMedico}
	adminIngeniero = []models.Role{models.RoleAdmin, models.RoleIngeniero}
)

// Table lists every route with the roles allowed on it.
func Table(h *handlers.Handler) []Route {
	return []Route{
		// Public
		{http.MethodGet, "/login", nil, h.LoginPage},
		{http.MethodPost, "/login", nil, h.Login},
		{http.MethodGet, "/registrar", nil, h.RegisterPage},
		{http.MethodPost, "/registrar", nil, h.Register},
		{http.MethodGet, "/logout", nil, h.Logout},
		{http.MethodGet, "/styles.css", nil, stylesheet},

		// Any authenticated user
		{http.MethodGet, "/", anyRole, h.Home},
		{http.MethodGet, "/tipo-usuario", anyRole, h.UserRole},
		{http.MethodGet, "/medicos", anyRole, h.DoctorsPage},
		{http.MethodGet, "/buscar-medicos", anyRole, h.SearchDoctors},
		{http.MethodGet, "/filtrar-medicos", anyRole, h.FilterDoctors},

		// Users and generic edits
		{http.MethodGet, "/usuarios", admin, h.UsersPage},
		{http.MethodGet, "/buscar-usuarios", admin, h.SearchUsers},
		{http.MethodGet, "/gestionar", adminIngeniero, h.ManagePage},
		{http.MethodPost, "/gestionar", adminIngeniero, h.UpdateField},
		{http.MethodPost, "/eliminar-registros", admin, h.DeleteRecord},

		// Patients
		{http.MethodGet, "/ver-mis-datos", paciente, h.MyPatientData},
		{http.MethodPost, "/submit-data", adminMedico, h.CreatePatient},
		{http.MethodGet, "/pacientes", adminMedico, h.PatientsPage},
		{http.MethodGet, "/buscar-pacientes", adminMedico, h.SearchPatients},
		{http.MethodGet, "/filtrar-pacientes", adminMedico, h.FilterPatients},
		{http.MethodGet, "/ordenar-pacientes", adminMedico, h.SortedPatients},
		{http.MethodGet, "/promedio-pacientes", adminMedico, h.PatientAverages},
		{http.MethodGet, "/mis-pacientes", medico, h.MyPatients},

		// Doctors and hospitals
		{http.MethodGet, "/registrarme", medico, h.DoctorForm},
		{http.MethodPost, "/insertar-medico", adminMedico, h.CreateDoctor},
		{http.MethodGet, "/hospital", admin, h.HospitalForm},
		{http.MethodPost, "/hospital", admin, h.CreateHospital},

		// Equipment
		{http.MethodGet, "/g-equipos", adminIngeniero, h.EquipmentForm},
		{http.MethodPost, "/insertar-equipo", adminIngeniero, h.CreateEquipment},
		{http.MethodGet, "/equipos", ingeniero, h.EquipmentPage},
		{http.MethodGet, "/buscar-equipos", ingeniero, h.SearchEquipment},
		{http.MethodGet, "/filtrar-equipos", ingeniero, h.FilterEquipment},
		{http.MethodGet, "/mis-equipos", medico, h.MyEquipment},

		// Bulk transfer
		{http.MethodGet, "/pacientes-x", adminMedico, h.PatientSheetPage},
		{http.MethodPost, "/upload-x", adminMedico, h.ImportPatients},
		{http.MethodGet, "/download-x", adminMedico, h.ExportPatients},
		{http.MethodGet, "/equipos-e-x", adminMedico, h.EquipmentSheetPage},
		{http.MethodPost, "/upload-e-x", adminMedico, h.ImportEquipment},
		{http.MethodGet, "/download-e-x", adminMedico, h.ExportEquipment},
		{http.MethodGet, "/pacientes-pdf", adminMedico, h.DocumentsPage},
		{http.MethodPost, "/upload-pdf", medico, h.UploadDocument},
		{http.MethodGet, "/download-pdf", medico, h.PatientReport},
		{http.MethodGet, "/download-e-pdf", medico, h.EquipmentReport},
	}
}

// Register mounts the table. Protected routes get the session check followed
// by the role check, in that order, ahead of the handler.
func Register(r gin.IRoutes, mgr *session.Manager, log *zap.Logger, table []Route) {
	requireLogin := middleware.RequireLogin(mgr, log)
	for _, route := range table {
		if route.Roles == nil {
			r.Handle(route.Method, route.Path, route.Handler)
			continue
		}
		r.Handle(route.Method, route.Path, requireLogin, middleware.RequireRole(route.Roles...), route.Handler)
	}
}

// Options configure the global middleware chain. Forwarded-for headers are
// honoured only from TrustedProxies; with none, the client IP is the peer address.
type Options struct {
	RequestTimeout time.Duration
	Limiter        *middleware.IPRateLimiter
	TrustedProxies []string
}

// NewRouter builds the engine with the global middleware, the HTML renderer
// and every route.
func NewRouter(h *handlers.Handler, mgr *session.Manager, log *zap.Logger, opts Options) (*gin.Engine, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.HTMLRender = renderer
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.RequestTimeout(opts.RequestTimeout))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}

	Register(r, mgr, log, Table(h))
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Página no encontrada")
	})
	return r, nil
}

func stylesheet(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", render.Stylesheet())
}
