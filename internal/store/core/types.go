package core

import "time"

// User es la identidad persistida. PasswordHash es bcrypt y nunca viaja
// en respuestas HTTP.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Role es un nombre de rol del vocabulario de la aplicación
// (NORMAL_USER, MANAGER, ADMIN, SUPER_ADMIN en el seed por defecto).
// El core de tokens lo trata como string opaco.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
