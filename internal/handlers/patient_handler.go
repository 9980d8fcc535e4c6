package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var patientViewColumns = []string{"Nombre", "Apellido", "Edad", "Frecuencia cardiaca (bpm)", "Altura (m)", "Peso (kg)", "Médico asignado"}

func patientViewRows(patients []models.PatientDoctorView) [][]any {
	return lo.Map(patients, func(p models.PatientDoctorView, _ int) []any {
		return []any{p.Name, p.LastName, p.Age, p.HeartRate, formatFloat(p.Height), formatFloat(p.Weight), p.DoctorName}
	})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CreatePatient saves the patient form from the home page.
func (h *Handler) CreatePatient(c *gin.Context) {
	var input models.CreatePatientInput

	// 1. Validate the form
	if err := bindForm(c, &input); err != nil {
		h.fail(c, "create patient", err, "/")
		return
	}
	patient, err := parsePatientInput(input)
	if err != nil {
		h.fail(c, "create patient", err, "/")
		return
	}

	// 2. Save
	if err := h.store(c).Create(&patient).Error; err != nil {
		h.fail(c, "create patient", apperror.Store("Error al guardar el paciente", err), "/")
		return
	}

	// 3. Echo what was saved
	h.log.Info("patient created", zap.Uint64("id", patient.ID), zap.Uint64("by", h.identity(c).ID))
	h.table(c, "Paciente guardado exitosamente",
		[]string{"Nombre", "Apellido", "Edad", "Frecuencia cardiaca (bpm)", "Altura (m)", "Peso (kg)"},
		[][]any{{patient.Name, patient.LastName, patient.Age, patient.HeartRate, formatFloat(patient.Height), formatFloat(patient.Weight)}})
}

func parsePatientInput(in models.CreatePatientInput) (models.Patient, error) {
	invalid := func(field string) error {
		return apperror.Validation(fmt.Sprintf("Valor inválido en el campo %s", field))
	}

	p := models.Patient{Name: in.Name, LastName: in.LastName}
	var err error
	if p.Age, err = utils.StringToInt(in.Age); err != nil || p.Age < 0 {
		return p, invalid("age")
	}
	if p.HeartRate, err = utils.StringToInt(in.HeartRate); err != nil || p.HeartRate < 0 {
		return p, invalid("heart_rate")
	}
	if p.Height, err = utils.StringToFloat(in.Height); err != nil || p.Height < 0 {
		return p, invalid("height")
	}
	if p.Weight, err = utils.StringToFloat(in.Weight); err != nil || p.Weight < 0 {
		return p, invalid("weight")
	}
	if p.DoctorID = utils.StringToUint64(in.DoctorID); p.DoctorID == 0 {
		return p, invalid("id_ma")
	}
	return p, nil
}

func (h *Handler) PatientsPage(c *gin.Context) {
	h.page(c, http.StatusOK, "listado", "Pacientes", render.SearchPage{
		Heading:     "Pacientes registrados",
		Placeholder: "Buscar pacientes...",
		SearchPath:  "/buscar-pacientes",
		FilterPath:  "/filtrar-pacientes",
		Filters:     patientFilters.options(),
	})
}

func (h *Handler) SearchPatients(c *gin.Context) {
	patients := []models.PatientDoctorView{}
	if err := containing(h.store(c), "nombre_paciente", c.Query("query")).Find(&patients).Error; err != nil {
		h.failJSON(c, "search patients", apperror.Store("Error al buscar pacientes", err))
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) FilterPatients(c *gin.Context) {
	rows, err := runFilter(h.store(c), patientFilters, c.DefaultQuery("filter", "all"))
	if err != nil {
		h.failJSON(c, "filter patients", apperror.Store("Error al filtrar pacientes", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SortedPatients lists patients by name, descending.
func (h *Handler) SortedPatients(c *gin.Context) {
	var patients []models.PatientDoctorView
	if err := h.store(c).Order("nombre_paciente DESC").Find(&patients).Error; err != nil {
		h.fail(c, "sort patients", apperror.Store("Error al obtener los datos", err), "/")
		return
	}
	h.table(c, "Pacientes ordenados", patientViewColumns, patientViewRows(patients))
}

type patientAverages struct {
	Age       float64 `gorm:"column:edad"`
	Weight    float64 `gorm:"column:peso"`
	Height    float64 `gorm:"column:altura"`
	HeartRate float64 `gorm:"column:frecuencia_cardiaca"`
}

func (h *Handler) PatientAverages(c *gin.Context) {
	var avg patientAverages
	err := h.store(c).Model(&models.Patient{}).
		Select("COALESCE(AVG(edad), 0) AS edad, COALESCE(AVG(peso), 0) AS peso, COALESCE(AVG(altura), 0) AS altura, COALESCE(AVG(frecuencia_cardiaca), 0) AS frecuencia_cardiaca").
		Scan(&avg).Error
	if err != nil {
		h.fail(c, "patient averages", apperror.Store("Error al obtener los datos", err), "/")
		return
	}
	round := func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
	h.table(c, "Promedios de pacientes",
		[]string{"Edad", "Peso (kg)", "Altura (m)", "Frecuencia cardiaca (bpm)"},
		[][]any{{round(avg.Age), round(avg.Weight), round(avg.Height), round(avg.HeartRate)}})
}

// MyPatientData shows the rows whose patient name contains the session username.
func (h *Handler) MyPatientData(c *gin.Context) {
	var patients []models.PatientDoctorView
	err := h.store(c).Where("nombre_paciente LIKE ?", likePattern(h.identity(c).Username)).Find(&patients).Error
	if err != nil {
		h.fail(c, "own patient data", apperror.Store("Error al obtener los datos", err), "/")
		return
	}
	h.table(c, "Mis datos", patientViewColumns, patientViewRows(patients))
}

// MyPatients shows the patients whose doctor name contains the session username.
func (h *Handler) MyPatients(c *gin.Context) {
	var patients []models.PatientDoctorView
	err := h.store(c).Where("nombre_medico LIKE ?", likePattern(h.identity(c).Username)).Find(&patients).Error
	if err != nil {
		h.fail(c, "doctor patients", apperror.Store("Error al obtener los datos", err), "/")
		return
	}
	h.table(c, "Mis pacientes", patientViewColumns, patientViewRows(patients))
}
