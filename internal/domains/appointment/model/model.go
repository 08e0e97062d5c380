package model

import (
	"time"

	patientModel "klinik/internal/domains/patient/model"
	shiftModel "klinik/internal/domains/shift/model"
	"klinik/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID           = "id"
	FieldShiftID      = "shift_id"
	FieldPatientID    = "patient_id"
	FieldBookedBy     = "booked_by"
	FieldRelationship = "relationship"
	FieldSymptom      = "symptom"
	FieldBookingDate  = "booking_date"
	FieldStatus       = "status"
)

const (
	StatusPending   = "pending"
	StatusBooked    = "booked"
	StatusArrived   = "arrived"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the states that keep a shift occupied. A cancelled
// appointment frees its slot.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusBooked, StatusArrived, StatusConfirmed}
}

type Appointment struct {
	ID           string    `db:"id"`
	ShiftID      string    `db:"shift_id"`
	PatientID    string    `db:"patient_id"`
	BookedBy     string    `db:"booked_by"`
	Relationship string    `db:"relationship"`
	Symptom      string    `db:"symptom"`
	BookingDate  time.Time `db:"booking_date"`
	Status       string    `db:"status"`
	ExamDate     time.Time `db:"exam_date"   table:"shifts"`
	StartTime    time.Time `db:"start_time"  table:"shifts"`
	EndTime      time.Time `db:"end_time"    table:"shifts"`
	DoctorID     *string   `db:"doctor_id"   table:"shifts"`
	PatientName  string    `db:"patient_name" table:"patients" column:"full_name"`
	model.Metadata
}

func (Appointment) GetJoinQuery() string {
	return "LEFT JOIN " + shiftModel.TableName + " ON " + shiftModel.TableName + ".id = " + TableName + ".shift_id" +
		" LEFT JOIN " + patientModel.TableName + " ON " + patientModel.TableName + ".id = " + TableName + ".patient_id"
}
