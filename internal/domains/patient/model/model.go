package model

import (
	"time"

	"klinik/shared/model"
)

const (
	TableName  = "patients"
	EntityName = "patient"

	FieldID        = "id"
	FieldAccountID = "account_id"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldGender    = "gender"
	FieldBirthDate = "birth_date"
	FieldAddress   = "address"
)

type Patient struct {
	ID        string     `db:"id"`
	AccountID *string    `db:"account_id"`
	FullName  string     `db:"full_name"`
	Phone     string     `db:"phone"`
	Email     string     `db:"email"`
	Gender    string     `db:"gender"`
	BirthDate *time.Time `db:"birth_date"`
	Address   string     `db:"address"`
	model.Metadata
}
