package models

// Patient maps the 'pacientes' table. DoctorID (id_ma) references medicos.id.
type Patient struct {
	ID        uint64  `gorm:"column:id;primaryKey" json:"id"`
	Name      string  `gorm:"column:nombre_paciente;size:100;not null" json:"nombre_paciente"`
	LastName  string  `gorm:"column:apellido;size:100;not null" json:"apellido"`
	Age       int     `gorm:"column:edad" json:"edad"`
	Weight    float64 `gorm:"column:peso;type:decimal(6,2)" json:"peso"`
	Height    float64 `gorm:"column:altura;type:decimal(4,2)" json:"altura"`
	HeartRate int     `gorm:"column:frecuencia_cardiaca" json:"frecuencia_cardiaca"`
	DoctorID  uint64  `gorm:"column:id_ma" json:"id_ma"`
}

func (Patient) TableName() string { return "pacientes" }

// PatientColumns is the insert order used by the form and by spreadsheet import.
var PatientColumns = []string{"nombre_paciente", "apellido", "edad", "peso", "altura", "frecuencia_cardiaca", "id_ma"}

// PatientDoctorView maps 'vista_pacientes_medicos'.
type PatientDoctorView struct {
	Patient
	DoctorName string `gorm:"column:nombre_medico" json:"nombre_medico"`
}

func (PatientDoctorView) TableName() string { return "vista_pacientes_medicos" }

// CreatePatientInput is the patient form on the home page. Numbers arrive as
// text and are parsed by the handler so the error can name the field.
type CreatePatientInput struct {
	Name      string `form:"name" binding:"required"`
	LastName  string `form:"sname" binding:"required"`
	Age       string `form:"age" binding:"required"`
	HeartRate string `form:"heart_rate" binding:"required"`
	Height    string `form:"height" binding:"required"`
	Weight    string `form:"weight" binding:"required"`
	DoctorID  string `form:"id_ma" binding:"required"`
}
