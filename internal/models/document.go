package models

// Document maps 'archivos_pdf'; FileName is the stored name inside the upload dir.
type Document struct {
	ID       uint64 `gorm:"column:id;primaryKey" json:"id"`
	FileName string `gorm:"column:nombre_archivo;size:255;not null" json:"nombre_archivo"`
}

func (Document) TableName() string { return "archivos_pdf" }
