// Package records holds the allowlist behind the generic field update and
// record delete forms, and the statements that apply them.
package records

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/pkg/utils"

	"github.com/samber/lo"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrInvalidValue  = errors.New("invalid value")
	ErrInvalidID     = errors.New("invalid id")
)

// Kind is the type a column value is parsed into before the write.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindDecimal
	KindDate
	KindRole
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "entero"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "fecha (AAAA-MM-DD)"
	case KindRole:
		return "tipo de usuario"
	default:
		return "texto"
	}
}

// Table describes what may be edited in one table and by whom.
type Table struct {
	Name      string
	Columns   map[string]Kind
	Editors   []models.Role
	Deletable bool
}

var allowlist = map[string]Table{
	"usuarios": {
		Name: "usuarios",
		Columns: map[string]Kind{
			"nombre_usuario": KindText,
			"tipo_usuario":   KindRole,
		},
		Editors:   []models.Role{models.RoleAdmin},
		Deletable: true,
	},
	"pacientes": {
		Name: "pacientes",
		Columns: map[string]Kind{
			"nombre_paciente":     KindText,
			"apellido":            KindText,
			"edad":                KindInteger,
			"peso":                KindDecimal,
			"altura":              KindDecimal,
			"frecuencia_cardiaca": KindInteger,
			"id_ma":               KindInteger,
		},
		Editors:   []models.Role{models.RoleAdmin},
		Deletable: true,
	},
	"medicos": {
		Name: "medicos",
		Columns: map[string]Kind{
			"nombre_medico": KindText,
			"especialidad":  KindText,
			"id_hospital":   KindInteger,
		},
		Editors:   []models.Role{models.RoleAdmin},
		Deletable: true,
	},
	"hospital": {
		Name: "hospital",
		Columns: map[string]Kind{
			"nombre_hospital": KindText,
			"ubicación":       KindText,
		},
		Editors:   []models.Role{models.RoleAdmin},
		Deletable: true,
	},
	"equipos": {
		Name: "equipos",
		Columns: map[string]Kind{
			"nombre_equipo":        KindText,
			"estado":               KindText,
			"descripcion":          KindText,
			"ultimo_mantenimiento": KindDate,
			"id_ma":                KindInteger,
			"id_hospital":          KindInteger,
		},
		Editors:   []models.Role{models.RoleAdmin, models.RoleIngeniero},
		Deletable: true,
	},
	"archivos_pdf": {
		Name:      "archivos_pdf",
		Columns:   map[string]Kind{},
		Deletable: true,
	},
}

// Tables returns the table names in a stable order for form dropdowns.
func Tables() []string {
	return []string{"usuarios", "pacientes", "medicos", "hospital", "equipos", "archivos_pdf"}
}

// EditableTables lists the tables role may edit.
func EditableTables(role models.Role) []string {
	return lo.Filter(Tables(), func(name string, _ int) bool {
		t := allowlist[name]
		return len(t.Columns) > 0 && lo.Contains(t.Editors, role)
	})
}

// Columns lists the editable columns of table, sorted.
func Columns(table string) []string {
	t, ok := allowlist[table]
	if !ok {
		return nil
	}
	cols := lo.Keys(t.Columns)
	sort.Strings(cols)
	return cols
}

// Update is a validated single-column write.
type Update struct {
	Table  string
	Column string
	Value  interface{}
	ID     uint64
}

// Delete is a validated single-row delete.
type Delete struct {
	Table string
	ID    uint64
}

// PrepareUpdate checks table and column against the allowlist, checks role may
// edit the table and parses raw into the column's kind.
func PrepareUpdate(role models.Role, table, column, raw, id string) (Update, error) {
	t, ok := allowlist[strings.TrimSpace(table)]
	if !ok {
		return Update{}, apperror.Wrap(apperror.KindValidation, "tabla no permitida", ErrUnknownTable)
	}
	kind, ok := t.Columns[strings.TrimSpace(column)]
	if !ok {
		return Update{}, apperror.Wrap(apperror.KindValidation, "columna no permitida", ErrUnknownColumn)
	}
	if !lo.Contains(t.Editors, role) {
		return Update{}, apperror.New(apperror.KindAuthorization, "no autorizado.")
	}

	rowID, err := parseID(id)
	if err != nil {
		return Update{}, err
	}
	value, err := ParseValue(kind, raw)
	if err != nil {
		return Update{}, apperror.Wrap(apperror.KindValidation,
			fmt.Sprintf("valor inválido para %s: se esperaba %s", column, kind), err)
	}
	return Update{Table: t.Name, Column: strings.TrimSpace(column), Value: value, ID: rowID}, nil
}

// PrepareDelete checks table against the deletable set.
func PrepareDelete(table, id string) (Delete, error) {
	t, ok := allowlist[strings.TrimSpace(table)]
	if !ok || !t.Deletable {
		return Delete{}, apperror.Wrap(apperror.KindValidation, "tabla no permitida", ErrUnknownTable)
	}
	rowID, err := parseID(id)
	if err != nil {
		return Delete{}, err
	}
	return Delete{Table: t.Name, ID: rowID}, nil
}

// ParseValue converts raw into the Go value stored for kind.
func ParseValue(kind Kind, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindInteger:
		n, err := utils.StringToInt(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		return n, nil
	case KindDecimal:
		f, err := utils.StringToFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		return f, nil
	case KindDate:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		return raw, nil
	case KindRole:
		r, ok := models.ParseRole(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		return string(r), nil
	default:
		if raw == "" {
			return nil, fmt.Errorf("%w: empty", ErrInvalidValue)
		}
		return raw, nil
	}
}

func parseID(raw string) (uint64, error) {
	id := utils.StringToUint64(raw)
	if id == 0 {
		return 0, apperror.Wrap(apperror.KindValidation, "id inválido", ErrInvalidID)
	}
	return id, nil
}
