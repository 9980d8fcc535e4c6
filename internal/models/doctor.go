package models

type Doctor struct {
	ID         uint64 `gorm:"column:id;primaryKey" json:"id"`
	Name       string `gorm:"column:nombre_medico;size:100;not null" json:"nombre_medico"`
	Specialty  string `gorm:"column:especialidad;size:100" json:"especialidad"`
	HospitalID uint64 `gorm:"column:id_hospital" json:"id_hospital"`
}

func (Doctor) TableName() string { return "medicos" }

// DoctorHospitalView maps 'vista_medicos_hospitales'.
type DoctorHospitalView struct {
	ID           uint64 `gorm:"column:id" json:"id"`
	Name         string `gorm:"column:nombre_medico" json:"nombre_medico"`
	Specialty    string `gorm:"column:especialidad" json:"especialidad"`
	HospitalName string `gorm:"column:nombre_hospital" json:"nombre_hospital"`
}

func (DoctorHospitalView) TableName() string { return "vista_medicos_hospitales" }

type CreateDoctorInput struct {
	Name       string `form:"medico_name" binding:"required"`
	Specialty  string `form:"especialidad" binding:"required"`
	HospitalID string `form:"id_hospital" binding:"required"`
}
