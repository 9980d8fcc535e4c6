package records

import (
	"context"

	"hospital-admin/internal/apperror"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageNotFound is shown when an update or delete matches no row.
const MessageNotFound = "registro no encontrado"

// MessageDuplicate is shown when an update would repeat a unique value.
const MessageDuplicate = "el valor ya existe en otro registro"

// Apply runs the update. Identifiers are quoted by gorm, the value and id are bound.
func Apply(ctx context.Context, db *gorm.DB, u Update) error {
	res := db.WithContext(ctx).Exec("UPDATE ? SET ? = ? WHERE id = ?",
		clause.Table{Name: u.Table}, clause.Column{Name: u.Column}, u.Value, u.ID)
	if apperror.IsDuplicateKey(res.Error) {
		return apperror.Wrap(apperror.KindConflict, MessageDuplicate, res.Error)
	}
	if res.Error != nil {
		return apperror.Store("no se pudo actualizar el registro", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.New(apperror.KindNotFound, MessageNotFound)
	}
	return nil
}

// Remove runs the delete.
func Remove(ctx context.Context, db *gorm.DB, d Delete) error {
	res := db.WithContext(ctx).Exec("DELETE FROM ? WHERE id = ?", clause.Table{Name: d.Table}, d.ID)
	if res.Error != nil {
		return apperror.Store("no se pudo eliminar el registro", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.New(apperror.KindNotFound, MessageNotFound)
	}
	return nil
}
