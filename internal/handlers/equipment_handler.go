package handlers

import (
	"net/http"
	"time"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

var equipmentColumns = []string{"Id", "Nombre", "Estado", "Descripción", "Último mantenimiento", "Id médico", "Id hospital"}

func (h *Handler) EquipmentForm(c *gin.Context) {
	h.page(c, http.StatusOK, "form-equipo", "Registrar equipo", nil)
}

func (h *Handler) CreateEquipment(c *gin.Context) {
	var input models.CreateEquipmentInput
	if err := bindForm(c, &input); err != nil {
		h.fail(c, "create equipment", err, "/g-equipos")
		return
	}
	equipment, err := parseEquipmentInput(input)
	if err != nil {
		h.fail(c, "create equipment", err, "/g-equipos")
		return
	}

	if err := h.store(c).Create(&equipment).Error; err != nil {
		h.fail(c, "create equipment", apperror.Store("Error al guardar el equipo", err), "/g-equipos")
		return
	}

	h.table(c, "Equipo registrado exitosamente", equipmentColumns, [][]any{equipmentRow(equipment)})
}

func parseEquipmentInput(in models.CreateEquipmentInput) (models.Equipment, error) {
	e := models.Equipment{
		Name:            in.Name,
		Status:          in.Status,
		Description:     in.Description,
		LastMaintenance: in.LastMaintenance,
		DoctorID:        utils.StringToUint64(in.DoctorID),
		HospitalID:      utils.StringToUint64(in.HospitalID),
	}
	if _, err := time.Parse("2006-01-02", e.LastMaintenance); err != nil {
		return e, apperror.Validation("Valor inválido en el campo u_m")
	}
	if e.DoctorID == 0 {
		return e, apperror.Validation("Valor inválido en el campo id_M")
	}
	if e.HospitalID == 0 {
		return e, apperror.Validation("Valor inválido en el campo id_hospital")
	}
	return e, nil
}

func equipmentRow(e models.Equipment) []any {
	return []any{e.ID, e.Name, e.Status, e.Description, e.LastMaintenance, e.DoctorID, e.HospitalID}
}

func (h *Handler) EquipmentPage(c *gin.Context) {
	h.page(c, http.StatusOK, "listado", "Equipos", render.SearchPage{
		Heading:     "Equipos registrados",
		Placeholder: "Buscar equipos...",
		SearchPath:  "/buscar-equipos",
		FilterPath:  "/filtrar-equipos",
		Filters:     equipmentFilters.options(),
	})
}

func (h *Handler) SearchEquipment(c *gin.Context) {
	equipment := []models.EquipmentHospitalView{}
	if err := containing(h.store(c), "nombre_equipo", c.Query("query")).Find(&equipment).Error; err != nil {
		h.failJSON(c, "search equipment", apperror.Store("Error al buscar equipos", err))
		return
	}
	c.JSON(http.StatusOK, equipment)
}

func (h *Handler) FilterEquipment(c *gin.Context) {
	rows, err := runFilter(h.store(c), equipmentFilters, c.DefaultQuery("filter", "all"))
	if err != nil {
		h.failJSON(c, "filter equipment", apperror.Store("Error al filtrar equipos", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MyEquipment lists equipment whose doctor name contains the session username.
func (h *Handler) MyEquipment(c *gin.Context) {
	var equipment []models.EquipmentDoctorView
	err := h.store(c).Where("nombre_medico LIKE ?", likePattern(h.identity(c).Username)).Find(&equipment).Error
	if err != nil {
		h.fail(c, "doctor equipment", apperror.Store("Error al obtener los datos", err), "/")
		return
	}
	rows := lo.Map(equipment, func(e models.EquipmentDoctorView, _ int) []any {
		return append(equipmentRow(e.Equipment), e.DoctorName)
	})
	h.table(c, "Mis equipos", append(equipmentColumns, "Médico"), rows)
}
