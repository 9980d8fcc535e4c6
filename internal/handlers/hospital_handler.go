package handlers

import (
	"net/http"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HospitalForm(c *gin.Context) {
	h.page(c, http.StatusOK, "form-hospital", "Registrar hospital", nil)
}

func (h *Handler) CreateHospital(c *gin.Context) {
	var input models.CreateHospitalInput
	if err := bindForm(c, &input); err != nil {
		h.fail(c, "create hospital", err, "/hospital")
		return
	}

	hospital := models.Hospital{Name: input.Name, Location: input.Location}
	if err := h.store(c).Create(&hospital).Error; err != nil {
		h.fail(c, "create hospital", apperror.Store("Error al guardar el hospital", err), "/hospital")
		return
	}

	h.table(c, "Hospital registrado exitosamente",
		[]string{"Id", "Nombre", "Ubicación"},
		[][]any{{hospital.ID, hospital.Name, hospital.Location}})
}
