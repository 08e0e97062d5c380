package model

import (
	clinicModel "klinik/internal/domains/clinic/model"
	"klinik/shared/model"
)

const (
	TableName  = "doctors"
	EntityName = "doctor"

	FieldID         = "id"
	FieldClinicID   = "clinic_id"
	FieldFullName   = "full_name"
	FieldTitle      = "title"
	FieldExperience = "experience"
	FieldImageURL   = "image_url"
)

type Doctor struct {
	ID         string  `db:"id"`
	ClinicID   string  `db:"clinic_id"`
	FullName   string  `db:"full_name"`
	Title      string  `db:"title"`
	Experience int     `db:"experience"`
	ImageURL   *string `db:"image_url"`
	ClinicName string  `db:"clinic_name" table:"clinics" column:"name"`
	model.Metadata
}

func (Doctor) GetJoinQuery() string {
	return "LEFT JOIN " + clinicModel.TableName + " ON " + clinicModel.TableName + ".id = " + TableName + ".clinic_id"
}
