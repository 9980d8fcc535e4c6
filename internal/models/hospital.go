package models

type Hospital struct {
	ID       uint64 `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:nombre_hospital;size:150;not null" json:"nombre_hospital"`
	Location string `gorm:"column:ubicación;size:255" json:"ubicación"`
}

func (Hospital) TableName() string { return "hospital" }

type CreateHospitalInput struct {
	Name     string `form:"hospital_name" binding:"required"`
	Location string `form:"ubicacion" binding:"required"`
}
