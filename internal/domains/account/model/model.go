package model

import "klinik/shared/model"

const (
	TableName  = "accounts"
	EntityName = "account"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldAvatarURL = "avatar_url"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type Account struct {
	ID        string  `db:"id"`
	Email     string  `db:"email"`
	Password  string  `db:"password"`
	Role      string  `db:"role"`
	AvatarURL *string `db:"avatar_url"`
	LastLogin *string `db:"last_login"`
	Active    bool    `db:"active"`
	model.Metadata
}
