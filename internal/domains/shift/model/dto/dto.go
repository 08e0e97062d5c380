package dto

import (
	"errors"
	"time"

	"klinik/internal/domains/shift/model"
	"klinik/shared"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

var ErrShiftWindow = errors.New("shift start time must be before end time")

type CreateShiftRequest struct {
	ClinicID  string  `json:"clinic_id"  validate:"required,uuid"`
	DoctorID  *string `json:"doctor_id"  validate:"omitempty,uuid"`
	ExamDate  string  `json:"exam_date"  validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time"   validate:"required"`
	Note      string  `json:"note"       validate:"omitempty,max=255"`
}

func (c *CreateShiftRequest) ToModel(actor string) (model.Shift, error) {
	examDate, err := time.Parse(constant.CalendarFormat, c.ExamDate)
	if err != nil {
		return model.Shift{}, err
	}

	startTime, err := time.Parse(constant.ClockFormat, c.StartTime)
	if err != nil {
		return model.Shift{}, err
	}

	endTime, err := time.Parse(constant.ClockFormat, c.EndTime)
	if err != nil {
		return model.Shift{}, err
	}

	if !startTime.Before(endTime) {
		return model.Shift{}, ErrShiftWindow
	}

	return model.Shift{
		ID:        uuid.NewString(),
		ClinicID:  c.ClinicID,
		DoctorID:  c.DoctorID,
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

type UpdateShiftRequest struct {
	ExamDate  string `db:"exam_date"  json:"exam_date"  validate:"omitempty"`
	StartTime string `db:"start_time" json:"start_time" validate:"omitempty"`
	EndTime   string `db:"end_time"   json:"end_time"   validate:"omitempty"`
	Note      string `db:"note"       json:"note"       validate:"omitempty,max=255"`
}

// AssignDoctorRequest staffs a pending shift. Window and note overrides are
// optional; the booked appointment is left untouched.
type AssignDoctorRequest struct {
	DoctorID  string `db:"doctor_id"  json:"doctor_id"  validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"omitempty"`
	EndTime   string `json:"end_time"   validate:"omitempty"`
	Note      string `db:"note"       json:"note"       validate:"omitempty,max=255"`
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	ClinicID   string  `json:"clinic_id"`
	ClinicName *string `json:"clinic_name,omitempty"`
	DoctorID   *string `json:"doctor_id,omitempty"`
	DoctorName *string `json:"doctor_name,omitempty"`
	ExamDate   string  `json:"exam_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Note       string  `json:"note"`
	gDto.Metadata
}

func (r *ShiftResponse) FromModel(model model.Shift) {
	r.ID = model.ID
	r.ClinicID = model.ClinicID
	r.ClinicName = model.ClinicName
	r.DoctorID = model.DoctorID
	r.DoctorName = model.DoctorName
	r.ExamDate = model.ExamDate.Format(constant.CalendarFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.EndTime = model.EndTime.Format(constant.ClockFormat)
	r.Note = model.Note
	r.Metadata.FromModel(model.Metadata)
}

type GetShiftsResponse struct {
	Shifts    []ShiftResponse `json:"shifts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetShiftsResponse) FromModels(models []model.Shift, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Shifts = make([]ShiftResponse, len(models))
	for i, mod := range models {
		r.Shifts[i].FromModel(mod)
	}
}

type GetOpenShiftsResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

func (r *GetOpenShiftsResponse) FromModels(models []model.Shift) {
	r.Shifts = make([]ShiftResponse, len(models))
	for i, mod := range models {
		r.Shifts[i].FromModel(mod)
	}
}
