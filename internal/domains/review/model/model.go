package model

import (
	clinicModel "klinik/internal/domains/clinic/model"
	patientModel "klinik/internal/domains/patient/model"
	"klinik/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldClinicID  = "clinic_id"
	FieldPatientID = "patient_id"
	FieldRating    = "rating"
	FieldComment   = "comment"
)

type Review struct {
	ID          string `db:"id"`
	ClinicID    string `db:"clinic_id"`
	PatientID   string `db:"patient_id"`
	Rating      int    `db:"rating"`
	Comment     string `db:"comment"`
	ClinicName  string `db:"clinic_name"  table:"clinics"  column:"name"`
	PatientName string `db:"patient_name" table:"patients" column:"full_name"`
	model.Metadata
}

func (Review) GetJoinQuery() string {
	return "LEFT JOIN " + clinicModel.TableName + " ON " + clinicModel.TableName + ".id = " + TableName + ".clinic_id" +
		" LEFT JOIN " + patientModel.TableName + " ON " + patientModel.TableName + ".id = " + TableName + ".patient_id"
}
