package models

// UserDoc es la cuenta en Mongo. UserID es un string opaco (UUID) y es
// el mismo identificador que se usa como clave de fila en la matriz
// user-item: una vez elegido el tipo string, todo el sistema lo usa.
type UserDoc struct {
	UserID       string `json:"userId" bson:"userId"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"`
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
}
