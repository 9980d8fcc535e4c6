package handlers

import (
	"net/http"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) DoctorForm(c *gin.Context) {
	h.page(c, http.StatusOK, "form-medico", "Registrar médico", nil)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var input models.CreateDoctorInput
	if err := bindForm(c, &input); err != nil {
		h.fail(c, "create doctor", err, "/registrarme")
		return
	}
	doctor := models.Doctor{Name: input.Name, Specialty: input.Specialty, HospitalID: utils.StringToUint64(input.HospitalID)}
	if doctor.HospitalID == 0 {
		h.fail(c, "create doctor", apperror.Validation("Valor inválido en el campo id_hospital"), "/registrarme")
		return
	}

	if err := h.store(c).Create(&doctor).Error; err != nil {
		h.fail(c, "create doctor", apperror.Store("Error al guardar el médico", err), "/registrarme")
		return
	}

	h.table(c, "Médico registrado exitosamente",
		[]string{"Id", "Nombre", "Especialidad", "Id hospital"},
		[][]any{{doctor.ID, doctor.Name, doctor.Specialty, doctor.HospitalID}})
}

func (h *Handler) DoctorsPage(c *gin.Context) {
	h.page(c, http.StatusOK, "listado", "Médicos", render.SearchPage{
		Heading:     "Médicos registrados",
		Placeholder: "Buscar médicos...",
		SearchPath:  "/buscar-medicos",
		FilterPath:  "/filtrar-medicos",
		Filters:     doctorFilters.options(),
	})
}

func (h *Handler) SearchDoctors(c *gin.Context) {
	doctors := []models.DoctorHospitalView{}
	if err := containing(h.store(c), "nombre_medico", c.Query("query")).Find(&doctors).Error; err != nil {
		h.failJSON(c, "search doctors", apperror.Store("Error al buscar médicos", err))
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) FilterDoctors(c *gin.Context) {
	rows, err := runFilter(h.store(c), doctorFilters, c.DefaultQuery("filter", "all"))
	if err != nil {
		h.failJSON(c, "filter doctors", apperror.Store("Error al filtrar médicos", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}
