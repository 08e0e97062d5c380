package dto_test

import (
	"testing"
	"time"

	"klinik/internal/domains/appointment/model"
	"klinik/internal/domains/appointment/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingDate(t *testing.T) {
	want := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		value  string
		want   time.Time
		wantOk bool
	}{
		{
			name:   "calendar format",
			value:  "2025-12-01",
			want:   want,
			wantOk: true,
		},
		{
			name:   "rfc3339 truncated to its calendar day",
			value:  "2025-12-01T15:30:00Z",
			want:   want,
			wantOk: true,
		},
		{
			name:   "day first format",
			value:  "01/12/2025",
			want:   want,
			wantOk: true,
		},
		{
			name:   "unrecognized value",
			value:  "tomorrow",
			wantOk: false,
		},
		{
			name:   "empty value",
			value:  "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := dto.ParseBookingDate(tt.value)

			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.True(t, parsed.Equal(tt.want), "expected %v, got %v", tt.want, parsed)
			}
		})
	}
}

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		ShiftID:     "test-shift-id",
		PatientID:   "test-patient-id",
		Symptom:     "headache",
		BookingDate: "2025-12-01",
	}

	bookingDate := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	actor := "test-account-id"

	appointment := req.ToModel(actor, bookingDate)

	assert.NotEmpty(t, appointment.ID, "expected ID to be generated")
	assert.Equal(t, req.ShiftID, appointment.ShiftID)
	assert.Equal(t, req.PatientID, appointment.PatientID)
	assert.Equal(t, req.Symptom, appointment.Symptom)
	assert.Equal(t, actor, appointment.BookedBy)
	assert.Equal(t, model.StatusPending, appointment.Status)
	assert.True(t, appointment.BookingDate.Equal(bookingDate))
	assert.Equal(t, actor, appointment.CreatedBy)
}

func TestCreateAppointmentRequest_ToModelWithStatus(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		ShiftID:     "test-shift-id",
		PatientID:   "test-patient-id",
		BookingDate: "2025-12-01",
		Status:      model.StatusBooked,
	}

	appointment := req.ToModel("test-account-id", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, model.StatusBooked, appointment.Status)
}

func TestCreateFlexibleAppointmentRequest_ToShiftModel(t *testing.T) {
	req := dto.CreateFlexibleAppointmentRequest{
		ClinicID:  "test-clinic-id",
		PatientID: "test-patient-id",
		ExamDate:  "2025-12-01",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	shift, err := req.ToShiftModel("test-account-id")

	assert.NoError(t, err)
	assert.NotEmpty(t, shift.ID, "expected ID to be generated")
	assert.Equal(t, req.ClinicID, shift.ClinicID)
	assert.Nil(t, shift.DoctorID, "expected flexible shift to start without a doctor")
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), shift.ExamDate)
}

func TestCreateFlexibleAppointmentRequest_ToShiftModelInvalidDate(t *testing.T) {
	req := dto.CreateFlexibleAppointmentRequest{
		ClinicID:  "test-clinic-id",
		PatientID: "test-patient-id",
		ExamDate:  "01/12/2025",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	_, err := req.ToShiftModel("test-account-id")

	assert.Error(t, err)
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	models := []model.Appointment{
		{
			ID:          "test-appointment-id",
			ShiftID:     "test-shift-id",
			PatientID:   "test-patient-id",
			BookingDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			Status:      model.StatusBooked,
		},
	}

	var response dto.GetAppointmentsResponse
	response.FromModels(models, 15, 10)

	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Appointments, 1)
	assert.Equal(t, "2025-12-01", response.Appointments[0].BookingDate)
	assert.NotNil(t, response.Appointments[0].ExamRecords, "expected exam records to be initialized")
	assert.Empty(t, response.Appointments[0].ExamRecords)
}
