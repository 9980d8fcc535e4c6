package models

// Role is the closed set of user kinds stored in usuarios.tipo_usuario.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleMedico    Role = "médico"
	RoleIngeniero Role = "ingeniero"
	RolePaciente  Role = "paciente"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleMedico, RoleIngeniero, RolePaciente}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMedico, RoleIngeniero, RolePaciente:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
