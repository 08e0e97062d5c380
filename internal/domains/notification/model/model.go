package model

import "klinik/shared/model"

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldAccountID = "account_id"
	FieldTitle     = "title"
	FieldBody      = "body"
	FieldRead      = "read"
)

type Notification struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	Read      bool   `db:"read"`
	model.Metadata
}
