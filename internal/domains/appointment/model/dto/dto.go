package dto

import (
	"time"

	"klinik/internal/domains/appointment/model"
	examItemModel "klinik/internal/domains/exam/model"
	shiftModel "klinik/internal/domains/shift/model"
	"klinik/shared"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

// bookingDateLayouts are the accepted spellings of a booking date. Whatever
// the client sends is normalized to the calendar form before comparison.
var bookingDateLayouts = []string{
	constant.CalendarFormat,
	time.RFC3339,
	"02/01/2006",
}

// ParseBookingDate parses a client-supplied booking date in any accepted
// layout and truncates it to its calendar day.
func ParseBookingDate(value string) (time.Time, bool) {
	for _, layout := range bookingDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		year, month, day := parsed.Date()

		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

type CreateAppointmentRequest struct {
	ShiftID      string `json:"shift_id"     validate:"required,uuid"`
	PatientID    string `json:"patient_id"   validate:"required,uuid"`
	Relationship string `json:"relationship" validate:"omitempty,max=50"`
	Symptom      string `json:"symptom"      validate:"omitempty,max=500"`
	BookingDate  string `json:"booking_date" validate:"required"`
	Status       string `json:"status"       validate:"omitempty,oneof=pending booked arrived confirmed cancelled"`
}

func (c *CreateAppointmentRequest) ToModel(actor string, bookingDate time.Time) model.Appointment {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Appointment{
		ID:           uuid.NewString(),
		ShiftID:      c.ShiftID,
		PatientID:    c.PatientID,
		BookedBy:     actor,
		Relationship: c.Relationship,
		Symptom:      c.Symptom,
		BookingDate:  bookingDate,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

// CreateFlexibleAppointmentRequest books a patient into a brand new shift
// that has no doctor yet. The shift and the appointment are written together.
type CreateFlexibleAppointmentRequest struct {
	ClinicID     string `json:"clinic_id"    validate:"required,uuid"`
	PatientID    string `json:"patient_id"   validate:"required,uuid"`
	ExamDate     string `json:"exam_date"    validate:"required"`
	StartTime    string `json:"start_time"   validate:"required"`
	EndTime      string `json:"end_time"     validate:"required"`
	Relationship string `json:"relationship" validate:"omitempty,max=50"`
	Symptom      string `json:"symptom"      validate:"omitempty,max=500"`
	Note         string `json:"note"         validate:"omitempty,max=255"`
}

func (c *CreateFlexibleAppointmentRequest) ToShiftModel(actor string) (shiftModel.Shift, error) {
	createShift := shiftDtoRequest{
		ClinicID:  c.ClinicID,
		ExamDate:  c.ExamDate,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Note:      c.Note,
	}

	return createShift.toModel(actor)
}

// shiftDtoRequest mirrors the shift creation payload for the flexible path
// without importing the shift dto package.
type shiftDtoRequest struct {
	ClinicID  string
	ExamDate  string
	StartTime string
	EndTime   string
	Note      string
}

func (c *shiftDtoRequest) toModel(actor string) (shiftModel.Shift, error) {
	examDate, err := time.Parse(constant.CalendarFormat, c.ExamDate)
	if err != nil {
		return shiftModel.Shift{}, err
	}

	startTime, err := time.Parse(constant.ClockFormat, c.StartTime)
	if err != nil {
		return shiftModel.Shift{}, err
	}

	endTime, err := time.Parse(constant.ClockFormat, c.EndTime)
	if err != nil {
		return shiftModel.Shift{}, err
	}

	return shiftModel.Shift{
		ID:        uuid.NewString(),
		ClinicID:  c.ClinicID,
		ExamDate:  examDate,
		StartTime: startTime,
		EndTime:   endTime,
		Note:      c.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

func (c *CreateFlexibleAppointmentRequest) ToAppointmentModel(actor, shiftID string, bookingDate time.Time) model.Appointment {
	return model.Appointment{
		ID:           uuid.NewString(),
		ShiftID:      shiftID,
		PatientID:    c.PatientID,
		BookedBy:     actor,
		Relationship: c.Relationship,
		Symptom:      c.Symptom,
		BookingDate:  bookingDate,
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateAppointmentRequest struct {
	Relationship string `db:"relationship" json:"relationship" validate:"omitempty,max=50"`
	Symptom      string `db:"symptom"      json:"symptom"      validate:"omitempty,max=500"`
	Status       string `db:"status"       json:"status"       validate:"omitempty,oneof=pending booked arrived confirmed cancelled"`
}

type CreateAppointmentResponse struct {
	ID      string `json:"id"`
	ShiftID string `json:"shift_id"`
}

type AppointmentResponse struct {
	ID           string  `json:"id"`
	ShiftID      string  `json:"shift_id"`
	PatientID    string  `json:"patient_id"`
	PatientName  string  `json:"patient_name"`
	BookedBy     string  `json:"booked_by"`
	Relationship string  `json:"relationship"`
	Symptom      string  `json:"symptom"`
	BookingDate  string  `json:"booking_date"`
	Status       string  `json:"status"`
	ExamDate     string  `json:"exam_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	DoctorID     *string `json:"doctor_id,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.ShiftID = model.ShiftID
	r.PatientID = model.PatientID
	r.PatientName = model.PatientName
	r.BookedBy = model.BookedBy
	r.Relationship = model.Relationship
	r.Symptom = model.Symptom
	r.BookingDate = model.BookingDate.Format(constant.CalendarFormat)
	r.Status = model.Status
	r.ExamDate = model.ExamDate.Format(constant.CalendarFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.EndTime = model.EndTime.Format(constant.ClockFormat)
	r.DoctorID = model.DoctorID
	r.Metadata.FromModel(model.Metadata)
}

type PendingAssignmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	ShiftID       string `json:"shift_id"`
	ClinicID      string `json:"clinic_id"`
	ExamDate      string `json:"exam_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	Symptom       string `json:"symptom"`
	PatientID     string `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	PatientPhone  string `json:"patient_phone"`
	PatientEmail  string `json:"patient_email"`
	PatientGender string `json:"patient_gender"`
	PatientBirth  string `json:"patient_birth_date,omitempty"`
}

func (r *PendingAssignmentResponse) FromRow(row model.PendingAssignmentRow) {
	r.AppointmentID = row.AppointmentID
	r.ShiftID = row.ShiftID
	r.ClinicID = row.ClinicID
	r.ExamDate = row.ExamDate.Format(constant.CalendarFormat)
	r.StartTime = row.StartTime.Format(constant.ClockFormat)
	r.EndTime = row.EndTime.Format(constant.ClockFormat)
	r.Status = row.Status
	r.Symptom = row.Symptom
	r.PatientID = row.PatientID
	r.PatientName = row.PatientName
	r.PatientPhone = row.PatientPhone
	r.PatientEmail = row.PatientEmail
	r.PatientGender = row.PatientGender

	if row.PatientBirth != nil {
		r.PatientBirth = row.PatientBirth.Format(constant.CalendarFormat)
	}
}

type GetPendingAssignmentsResponse struct {
	Appointments []PendingAssignmentResponse `json:"appointments"`
}

func (r *GetPendingAssignmentsResponse) FromRows(rows []model.PendingAssignmentRow) {
	r.Appointments = make([]PendingAssignmentResponse, len(rows))
	for i, row := range rows {
		r.Appointments[i].FromRow(row)
	}
}

type ScheduleEntryResponse struct {
	AppointmentID string `json:"appointment_id"`
	ShiftID       string `json:"shift_id"`
	ExamDate      string `json:"exam_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	Symptom       string `json:"symptom"`
	PatientID     string `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	PatientPhone  string `json:"patient_phone"`
}

func (r *ScheduleEntryResponse) FromRow(row model.ScheduleRow) {
	r.AppointmentID = row.AppointmentID
	r.ShiftID = row.ShiftID
	r.ExamDate = row.ExamDate.Format(constant.CalendarFormat)
	r.StartTime = row.StartTime.Format(constant.ClockFormat)
	r.EndTime = row.EndTime.Format(constant.ClockFormat)
	r.Status = row.Status
	r.Symptom = row.Symptom
	r.PatientID = row.PatientID
	r.PatientName = row.PatientName
	r.PatientPhone = row.PatientPhone
}

type GetDoctorScheduleResponse struct {
	Schedule []ScheduleEntryResponse `json:"schedule"`
}

func (r *GetDoctorScheduleResponse) FromRows(rows []model.ScheduleRow) {
	r.Schedule = make([]ScheduleEntryResponse, len(rows))
	for i, row := range rows {
		r.Schedule[i].FromRow(row)
	}
}

type PatientVisitResponse struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Phone       string `json:"phone"`
	VisitCount  int    `json:"visit_count"`
	LastVisit   string `json:"last_visit"`
}

func (r *PatientVisitResponse) FromRow(row model.PatientVisitRow) {
	r.PatientID = row.PatientID
	r.PatientName = row.PatientName
	r.Phone = row.Phone
	r.VisitCount = row.VisitCount
	r.LastVisit = row.LastVisit.Format(constant.CalendarFormat)
}

type GetDoctorPatientsResponse struct {
	Patients []PatientVisitResponse `json:"patients"`
}

func (r *GetDoctorPatientsResponse) FromRows(rows []model.PatientVisitRow) {
	r.Patients = make([]PatientVisitResponse, len(rows))
	for i, row := range rows {
		r.Patients[i].FromRow(row)
	}
}

// AggregatedAppointmentResponse carries an appointment together with every
// exam record written for it. Child collections are always present, never null.
type AggregatedAppointmentResponse struct {
	AppointmentResponse
	ExamRecords []AggregatedExamRecordResponse `json:"exam_records"`
}

type AggregatedExamRecordResponse struct {
	ID           string                      `json:"id"`
	Diagnosis    string                      `json:"diagnosis"`
	FollowUpDate string                      `json:"follow_up_date,omitempty"`
	Items        []AggregatedItemResponse    `json:"items"`
	Invoices     []AggregatedInvoiceResponse `json:"invoices"`
}

type AggregatedItemResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

type AggregatedInvoiceResponse struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
	PaidAt string  `json:"paid_at,omitempty"`
}

func (r *AggregatedExamRecordResponse) FromModels(record examItemModel.ExamRecord, items []examItemModel.ExamItem, invoices []examItemModel.Invoice) {
	r.ID = record.ID
	r.Diagnosis = record.Diagnosis

	if record.FollowUpDate != nil {
		r.FollowUpDate = record.FollowUpDate.Format(constant.CalendarFormat)
	}

	r.Items = make([]AggregatedItemResponse, len(items))
	for i, item := range items {
		r.Items[i] = AggregatedItemResponse{
			ID:        item.ID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			Note:      item.Note,
		}
	}

	r.Invoices = make([]AggregatedInvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		r.Invoices[i] = AggregatedInvoiceResponse{
			ID:     invoice.ID,
			Amount: invoice.Amount,
			Method: invoice.Method,
			Status: invoice.Status,
		}

		if invoice.PaidAt != nil {
			r.Invoices[i].PaidAt = invoice.PaidAt.Format(time.RFC3339)
		}
	}
}

type GetAppointmentsResponse struct {
	Appointments []AggregatedAppointmentResponse `json:"appointments"`
	TotalPage    int                             `json:"total_page"`
	TotalData    int                             `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AggregatedAppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].AppointmentResponse.FromModel(mod)
		r.Appointments[i].ExamRecords = []AggregatedExamRecordResponse{}
	}
}

// AppointmentEvent is the payload published to the appointment events topic.
type AppointmentEvent struct {
	Type          string `json:"type"`
	AppointmentID string `json:"appointment_id"`
	ShiftID       string `json:"shift_id"`
	PatientID     string `json:"patient_id"`
	BookedBy      string `json:"booked_by"`
	Status        string `json:"status"`
	BookingDate   string `json:"booking_date"`
	OccurredAt    string `json:"occurred_at"`
}

const (
	EventTypeCreated       = "appointment.created"
	EventTypeStatusChanged = "appointment.status_changed"
)
