package model

import "klinik/shared/model"

const (
	TableName  = "clinics"
	EntityName = "clinic"

	FieldID       = "id"
	FieldOwnerID  = "owner_id"
	FieldName     = "name"
	FieldAddress  = "address"
	FieldPhone    = "phone"
	FieldImageURL = "image_url"
	FieldActive   = "active"
)

type Clinic struct {
	ID       string  `db:"id"`
	OwnerID  string  `db:"owner_id"`
	Name     string  `db:"name"`
	Address  string  `db:"address"`
	Phone    string  `db:"phone"`
	ImageURL *string `db:"image_url"`
	Active   bool    `db:"active"`
	model.Metadata
}
