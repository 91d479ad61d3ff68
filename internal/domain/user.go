package domain

import "time"

// User representa a un usuario registrado en Bricksy.
// PasswordHash nunca se serializa en respuestas de la API.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Nombre          string    `gorm:"size:255" json:"nombre"`
	Apellidos       string    `gorm:"size:255" json:"apellidos"`
	Residencia      string    `gorm:"size:255" json:"residencia"`
	FechaNacimiento *string   `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento"`
	Email           string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Telefono        *string   `gorm:"size:32" json:"telefono"`
	PasswordHash    string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName fija el nombre de tabla heredado del esquema original.
func (User) TableName() string {
	return "users"
}
