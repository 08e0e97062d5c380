package model

import (
	"time"

	clinicModel "klinik/internal/domains/clinic/model"
	doctorModel "klinik/internal/domains/doctor/model"
	"klinik/shared/model"
)

const (
	TableName  = "shifts"
	EntityName = "shift"

	FieldID        = "id"
	FieldClinicID  = "clinic_id"
	FieldDoctorID  = "doctor_id"
	FieldExamDate  = "exam_date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldNote      = "note"
)

// Shift is a bookable examination slot. A nil DoctorID marks the slot as
// waiting for staff assignment.
type Shift struct {
	ID         string    `db:"id"`
	ClinicID   string    `db:"clinic_id"`
	DoctorID   *string   `db:"doctor_id"`
	ExamDate   time.Time `db:"exam_date"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	Note       string    `db:"note"`
	ClinicName *string   `db:"clinic_name" table:"clinics" column:"name"`
	DoctorName *string   `db:"doctor_name" table:"doctors" column:"full_name"`
	model.Metadata
}

func (Shift) GetJoinQuery() string {
	return "LEFT JOIN " + clinicModel.TableName + " ON " + clinicModel.TableName + ".id = " + TableName + ".clinic_id" +
		" LEFT JOIN " + doctorModel.TableName + " ON " + doctorModel.TableName + ".id = " + TableName + ".doctor_id"
}
