package model

import "time"

// PendingAssignmentRow is one unstaffed upcoming appointment joined to its
// shift window and patient demographics.
type PendingAssignmentRow struct {
	AppointmentID string     `db:"appointment_id"`
	ShiftID       string     `db:"shift_id"`
	ClinicID      string     `db:"clinic_id"`
	ExamDate      time.Time  `db:"exam_date"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       time.Time  `db:"end_time"`
	Status        string     `db:"status"`
	Symptom       string     `db:"symptom"`
	PatientID     string     `db:"patient_id"`
	PatientName   string     `db:"patient_name"`
	PatientPhone  string     `db:"patient_phone"`
	PatientEmail  string     `db:"patient_email"`
	PatientGender string     `db:"patient_gender"`
	PatientBirth  *time.Time `db:"patient_birth_date"`
}

// ScheduleRow is one appointment on a doctor's schedule.
type ScheduleRow struct {
	AppointmentID string    `db:"appointment_id"`
	ShiftID       string    `db:"shift_id"`
	ExamDate      time.Time `db:"exam_date"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	Status        string    `db:"status"`
	Symptom       string    `db:"symptom"`
	PatientID     string    `db:"patient_id"`
	PatientName   string    `db:"patient_name"`
	PatientPhone  string    `db:"patient_phone"`
}

// PatientVisitRow aggregates a doctor's history with one patient.
type PatientVisitRow struct {
	PatientID   string    `db:"patient_id"`
	PatientName string    `db:"patient_name"`
	Phone       string    `db:"phone"`
	VisitCount  int       `db:"visit_count"`
	LastVisit   time.Time `db:"last_visit"`
}
