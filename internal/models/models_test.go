package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(string(r))
		assert.True(t, ok, r)
		assert.Equal(t, r, got)
	}

	_, ok := ParseRole("pacientes")
	assert.False(t, ok)
	_, ok = ParseRole("medico")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "usuarios", User{}.TableName())
	assert.Equal(t, "codigos_acceso", AccessCode{}.TableName())
	assert.Equal(t, "pacientes", Patient{}.TableName())
	assert.Equal(t, "vista_pacientes_medicos", PatientDoctorView{}.TableName())
	assert.Equal(t, "medicos", Doctor{}.TableName())
	assert.Equal(t, "vista_medicos_hospitales", DoctorHospitalView{}.TableName())
	assert.Equal(t, "hospital", Hospital{}.TableName())
	assert.Equal(t, "equipos", Equipment{}.TableName())
	assert.Equal(t, "vista_equipos_hospitales", EquipmentHospitalView{}.TableName())
	assert.Equal(t, "vista_equipos_medicos", EquipmentDoctorView{}.TableName())
	assert.Equal(t, "archivos_pdf", Document{}.TableName())
}
