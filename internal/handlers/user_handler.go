package handlers

import (
	"net/http"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UsersPage(c *gin.Context) {
	h.page(c, http.StatusOK, "listado", "Usuarios", render.SearchPage{
		Heading:     "Usuarios registrados",
		Placeholder: "Buscar usuarios...",
		SearchPath:  "/buscar-usuarios",
	})
}

// SearchUsers lists users by name. Password hashes are never selected.
func (h *Handler) SearchUsers(c *gin.Context) {
	users := []models.User{}
	q := containing(h.store(c).Select("id", "nombre_usuario", "tipo_usuario"), "nombre_usuario", c.Query("query"))
	if err := q.Order("id").Find(&users).Error; err != nil {
		h.failJSON(c, "search users", apperror.Store("Error al buscar usuarios", err))
		return
	}
	c.JSON(http.StatusOK, users)
}
