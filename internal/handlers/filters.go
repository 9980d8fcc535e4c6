package handlers

import (
	"fmt"
	"strings"

	"hospital-admin/internal/render"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns user text into a LIKE "contains" pattern with the
// wildcards in the text matched literally.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// containing adds a case-insensitive substring match on column, which is
// always a constant from this package. An empty query leaves the listing
// unfiltered.
func containing(db *gorm.DB, column, query string) *gorm.DB {
	query = strings.TrimSpace(query)
	if query == "" {
		return db
	}
	return db.Where(fmt.Sprintf("LOWER(`%s`) LIKE LOWER(?)", column), likePattern(query))
}

type filter struct {
	key   string
	label string
	sql   string
}

// filterSet is a closed enumeration of listing queries. The first entry is the
// fallback for unknown keys.
type filterSet []filter

func (s filterSet) query(key string) string {
	for _, f := range s {
		if f.key == key {
			return f.sql
		}
	}
	return s[0].sql
}

func (s filterSet) options() []render.Option {
	opts := make([]render.Option, len(s))
	for i, f := range s {
		opts[i] = render.Option{Value: f.key, Label: f.label}
	}
	return opts
}

var patientFilters = filterSet{
	{"all", "Todos los pacientes", "SELECT * FROM vista_pacientes_medicos"},
	{"a_sort", "Ordenar alfabéticamente", "SELECT * FROM vista_pacientes_medicos ORDER BY nombre_paciente ASC"},
	{"avg_all", "Promedios generales",
		"SELECT AVG(edad) AS edad, AVG(peso) AS peso, AVG(altura) AS altura, AVG(frecuencia_cardiaca) AS frecuencia_cardiaca FROM pacientes"},
	{"medic_alph", "Ordenar por médico", "SELECT * FROM vista_pacientes_medicos ORDER BY nombre_medico ASC"},
	{"avg_weight", "Peso promedio por médico",
		"SELECT medicos.nombre_medico, AVG(pacientes.peso) AS peso FROM pacientes JOIN medicos ON pacientes.id_ma = medicos.id GROUP BY medicos.nombre_medico"},
	{"avg_height", "Altura promedio por médico",
		"SELECT medicos.nombre_medico, AVG(pacientes.altura) AS altura FROM pacientes JOIN medicos ON pacientes.id_ma = medicos.id GROUP BY medicos.nombre_medico"},
	{"avg_f_c", "Frecuencia cardiaca promedio por médico",
		"SELECT medicos.nombre_medico, AVG(pacientes.frecuencia_cardiaca) AS frecuencia_cardiaca FROM pacientes JOIN medicos ON pacientes.id_ma = medicos.id GROUP BY medicos.nombre_medico"},
	{"avg_age", "Edad promedio por médico",
		"SELECT medicos.nombre_medico, AVG(pacientes.edad) AS edad FROM pacientes JOIN medicos ON pacientes.id_ma = medicos.id GROUP BY medicos.nombre_medico"},
	{"total_patients", "Pacientes por médico",
		"SELECT medicos.nombre_medico, COUNT(pacientes.id) AS id FROM pacientes JOIN medicos ON pacientes.id_ma = medicos.id GROUP BY medicos.nombre_medico"},
}

var doctorFilters = filterSet{
	{"all", "Todos los médicos", "SELECT * FROM vista_medicos_hospitales"},
	{"a_sort", "Ordenar alfabéticamente", "SELECT * FROM vista_medicos_hospitales ORDER BY nombre_medico ASC"},
	{"by_hospital", "Agrupar por hospital", "SELECT * FROM vista_medicos_hospitales ORDER BY nombre_hospital ASC, nombre_medico ASC"},
	{"total_by_hospital", "Médicos por hospital",
		"SELECT nombre_hospital, COUNT(id) AS total FROM vista_medicos_hospitales GROUP BY nombre_hospital"},
	{"total_by_specialty", "Médicos por especialidad",
		"SELECT especialidad, COUNT(id) AS total FROM medicos GROUP BY especialidad"},
}

var equipmentFilters = filterSet{
	{"all", "Todos los equipos", "SELECT * FROM vista_equipos_hospitales"},
	{"a_sort", "Ordenar alfabéticamente", "SELECT * FROM vista_equipos_hospitales ORDER BY nombre_equipo ASC"},
	{"by_status", "Agrupar por estado", "SELECT * FROM vista_equipos_hospitales ORDER BY estado ASC, nombre_equipo ASC"},
	{"total_by_status", "Equipos por estado", "SELECT estado, COUNT(id) AS total FROM equipos GROUP BY estado"},
	{"total_by_hospital", "Equipos por hospital",
		"SELECT nombre_hospital, COUNT(id) AS total FROM vista_equipos_hospitales GROUP BY nombre_hospital"},
	{"oldest_maintenance", "Mantenimiento más antiguo",
		"SELECT * FROM vista_equipos_hospitales ORDER BY ultimo_mantenimiento ASC"},
}

// runFilter executes one of the set's fixed queries.
func runFilter(db *gorm.DB, set filterSet, key string) ([]map[string]interface{}, error) {
	rows := []map[string]interface{}{}
	if err := db.Raw(set.query(key)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
