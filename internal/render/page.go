package render

import (
	"hospital-admin/internal/models"

	"github.com/samber/lo"
)

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Path  string
	Label string
	roles []models.Role
}

var allRoles = models.Roles

var navigation = []NavItem{
	{Path: "/", Label: "Inicio", roles: allRoles},
	{Path: "/usuarios", Label: "Usuarios", roles: []models.Role{models.RoleAdmin}},
	{Path: "/gestionar", Label: "Gestionar", roles: []models.Role{models.RoleAdmin}},
	{Path: "/mis-equipos", Label: "Mis equipos", roles: []models.Role{models.RoleMedico}},
	{Path: "/mis-pacientes", Label: "Mis pacientes", roles: []models.Role{models.RoleMedico}},
	{Path: "/pacientes", Label: "Pacientes", roles: []models.Role{models.RoleMedico}},
	{Path: "/equipos", Label: "Equipos", roles: []models.Role{models.RoleIngeniero}},
	{Path: "/medicos", Label: "Ver médicos", roles: []models.Role{models.RolePaciente, models.RoleIngeniero}},
	{Path: "/ver-mis-datos", Label: "Ver mis datos", roles: []models.Role{models.RolePaciente}},
	{Path: "/logout", Label: "Cerrar sesión", roles: allRoles},
}

// Nav returns the menu entries visible to role.
func Nav(role models.Role) []NavItem {
	return lo.Filter(navigation, func(item NavItem, _ int) bool {
		return lo.Contains(item.roles, role)
	})
}

// Page is the data every template receives.
type Page struct {
	Title    string
	Role     models.Role
	Username string
	Nav      []NavItem
	Data     any
}

// Message is the body of the mensaje page.
type Message struct {
	Heading string
	Text    string
	Back    string
}

// Table is the body of the tabla page.
type Table struct {
	Heading string
	Columns []string
	Rows    [][]any
	Back    string
}

// TransferPage configures the spreadsheet upload page.
type TransferPage struct {
	Heading      string
	UploadPath   string
	DownloadPath string
	Columns      []string
}

// SearchPage configures a listing page whose rows load from JSON endpoints.
type SearchPage struct {
	Heading     string
	Placeholder string
	SearchPath  string
	FilterPath  string
	Filters     []Option
}

// Option is a select entry.
type Option struct {
	Value string
	Label string
}

// ManagePage feeds the gestionar form.
type ManagePage struct {
	EditTables   map[string][]string
	DeleteTables []string
	CanDelete    bool
}

// AuthPage feeds the login and registration forms.
type AuthPage struct {
	Error    string
	Username string
}
