package model

import "klinik/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID            = "id"
	FieldServiceTypeID = "service_type_id"
	FieldName          = "name"
	FieldPrice         = "price"
	FieldUnit          = "unit"
	FieldDescription   = "description"
)

type Service struct {
	ID            string  `db:"id"`
	ServiceTypeID string  `db:"service_type_id"`
	Name          string  `db:"name"`
	Price         float64 `db:"price"`
	Unit          string  `db:"unit"`
	Description   string  `db:"description"`
	TypeName      string  `db:"type_name" table:"service_types" column:"name"`
	model.Metadata
}

func (Service) GetJoinQuery() string {
	return "LEFT JOIN " + TypeTableName + " ON " + TypeTableName + ".id = " + TableName + ".service_type_id"
}

const (
	TypeTableName  = "service_types"
	TypeEntityName = "service_type"

	FieldTypeID   = "id"
	FieldTypeName = "name"
)

type ServiceType struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
