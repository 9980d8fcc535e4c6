package models

// User maps the 'usuarios' table.
type User struct {
	ID           uint64 `gorm:"column:id;primaryKey" json:"id"`
	Username     string `gorm:"column:nombre_usuario;size:100;uniqueIndex;not null" json:"nombre_usuario"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"` // never serialized
	Role         Role   `gorm:"column:tipo_usuario;size:20;not null" json:"tipo_usuario"`
}

func (User) TableName() string { return "usuarios" }

// AccessCode maps 'codigos_acceso'. The code decides the role of whoever registers with it.
type AccessCode struct {
	Code string `gorm:"column:codigo;primaryKey;size:100" json:"codigo"`
	Role Role   `gorm:"column:tipo_usuario;size:20;not null" json:"tipo_usuario"`
}

func (AccessCode) TableName() string { return "codigos_acceso" }

// RegisterInput is the registration form.
type RegisterInput struct {
	Username   string `form:"nombre_usuario" binding:"required"`
	Password   string `form:"password" binding:"required"`
	AccessCode string `form:"codigo_acceso" binding:"required"`
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `form:"nombre_usuario" binding:"required"`
	Password string `form:"password" binding:"required"`
}
