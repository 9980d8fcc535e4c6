package models

// Equipment maps the 'equipos' table. LastMaintenance is a YYYY-MM-DD string.
type Equipment struct {
	ID              uint64 `gorm:"column:id;primaryKey" json:"id"`
	Name            string `gorm:"column:nombre_equipo;size:100;not null" json:"nombre_equipo"`
	Status          string `gorm:"column:estado;size:50" json:"estado"`
	Description     string `gorm:"column:descripcion;type:text" json:"descripcion"`
	LastMaintenance string `gorm:"column:ultimo_mantenimiento;type:date" json:"ultimo_mantenimiento"`
	DoctorID        uint64 `gorm:"column:id_ma" json:"id_ma"`
	HospitalID      uint64 `gorm:"column:id_hospital" json:"id_hospital"`
}

func (Equipment) TableName() string { return "equipos" }

var EquipmentColumns = []string{"nombre_equipo", "estado", "descripcion", "ultimo_mantenimiento", "id_ma", "id_hospital"}

// EquipmentHospitalView maps 'vista_equipos_hospitales'.
type EquipmentHospitalView struct {
	Equipment
	HospitalName string `gorm:"column:nombre_hospital" json:"nombre_hospital"`
	Location     string `gorm:"column:ubicación" json:"ubicación"`
}

func (EquipmentHospitalView) TableName() string { return "vista_equipos_hospitales" }

// EquipmentDoctorView maps 'vista_equipos_medicos'.
type EquipmentDoctorView struct {
	Equipment
	DoctorName string `gorm:"column:nombre_medico" json:"nombre_medico"`
}

func (EquipmentDoctorView) TableName() string { return "vista_equipos_medicos" }

type CreateEquipmentInput struct {
	Name            string `form:"equipo_name" binding:"required"`
	Status          string `form:"estado" binding:"required"`
	Description     string `form:"descripcion"`
	LastMaintenance string `form:"u_m" binding:"required"`
	DoctorID        string `form:"id_M" binding:"required"`
	HospitalID      string `form:"id_hospital" binding:"required"`
}
