package handlers

import (
	"net/http"

	"hospital-admin/internal/models"
	"hospital-admin/internal/records"
	"hospital-admin/internal/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ManagePage shows the edit form, and the delete form for admins.
func (h *Handler) ManagePage(c *gin.Context) {
	role := h.identity(c).Role
	edit := make(map[string][]string)
	for _, table := range records.EditableTables(role) {
		edit[table] = records.Columns(table)
	}
	h.page(c, http.StatusOK, "gestionar", "Gestionar", render.ManagePage{
		EditTables:   edit,
		DeleteTables: records.Tables(),
		CanDelete:    role == models.RoleAdmin,
	})
}

// UpdateField writes one allowlisted column of one row.
func (h *Handler) UpdateField(c *gin.Context) {
	identity := h.identity(c)

	// 1. Validate identifiers and value against the allowlist
	upd, err := records.PrepareUpdate(identity.Role, c.PostForm("tabla"), c.PostForm("columna"), c.PostForm("nvalor"), c.PostForm("id"))
	if err != nil {
		h.fail(c, "update field", err, "/gestionar")
		return
	}

	// 2. Write
	if err := records.Apply(c.Request.Context(), h.db, upd); err != nil {
		h.fail(c, "update field", err, "/gestionar")
		return
	}

	h.log.Info("record updated",
		zap.String("table", upd.Table), zap.String("column", upd.Column),
		zap.Uint64("id", upd.ID), zap.Uint64("by", identity.ID))
	h.message(c, http.StatusOK, "Registro actualizado exitosamente", "", "/gestionar")
}

// DeleteRecord removes one row from an allowlisted table.
func (h *Handler) DeleteRecord(c *gin.Context) {
	del, err := records.PrepareDelete(c.PostForm("registro"), c.PostForm("id"))
	if err != nil {
		h.fail(c, "delete record", err, "/gestionar")
		return
	}

	if err := records.Remove(c.Request.Context(), h.db, del); err != nil {
		h.fail(c, "delete record", err, "/gestionar")
		return
	}

	h.log.Info("record deleted", zap.String("table", del.Table), zap.Uint64("id", del.ID), zap.Uint64("by", h.identity(c).ID))
	h.message(c, http.StatusOK, "Registro eliminado exitosamente", "", "/gestionar")
}
