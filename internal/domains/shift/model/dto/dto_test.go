package dto_test

import (
	"testing"
	"time"

	"klinik/internal/domains/shift/model"
	"klinik/internal/domains/shift/model/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateShiftRequest_ToModel(t *testing.T) {
	doctorID := "test-doctor-id"

	tests := []struct {
		name    string
		req     dto.CreateShiftRequest
		wantErr error
	}{
		{
			name: "valid shift",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				DoctorID:  &doctorID,
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
		},
		{
			name: "start time equal to end time",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "09:00",
			},
			wantErr: dto.ErrShiftWindow,
		},
		{
			name: "start time after end time",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "10:00",
				EndTime:   "09:00",
			},
			wantErr: dto.ErrShiftWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, err := tt.req.ToModel("test-account-id")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, shift.ID, "expected ID to be generated")
			assert.Equal(t, tt.req.ClinicID, shift.ClinicID)
			assert.Equal(t, tt.req.DoctorID, shift.DoctorID)
			assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), shift.ExamDate)
			assert.True(t, shift.StartTime.Before(shift.EndTime))
		})
	}
}

func TestCreateShiftRequest_ToModelInvalidFormats(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateShiftRequest
	}{
		{
			name: "bad exam date",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "01-12-2025",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
		},
		{
			name: "bad start time",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "9am",
				EndTime:   "10:00",
			},
		},
		{
			name: "bad end time",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "ten",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToModel("test-account-id")

			assert.Error(t, err)
		})
	}
}

func TestShiftResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	doctorID := "test-doctor-id"

	shiftModel := model.Shift{
		ID:        "test-shift-id",
		ClinicID:  "test-clinic-id",
		DoctorID:  &doctorID,
		ExamDate:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		Note:      "bring previous lab results",
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-account",
			ModifiedBy: "test-account",
		},
	}

	var response dto.ShiftResponse
	response.FromModel(shiftModel)

	assert.Equal(t, shiftModel.ID, response.ID)
	assert.Equal(t, shiftModel.ClinicID, response.ClinicID)
	assert.Equal(t, shiftModel.DoctorID, response.DoctorID)
	assert.Equal(t, "2025-12-01", response.ExamDate)
	assert.Equal(t, "09:00", response.StartTime)
	assert.Equal(t, "10:00", response.EndTime)
	assert.Equal(t, shiftModel.Note, response.Note)
}
