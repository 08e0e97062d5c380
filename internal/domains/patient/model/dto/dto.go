package dto

import (
	"time"

	"klinik/internal/domains/patient/model"
	"klinik/shared"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	AccountID *string `json:"account_id" validate:"omitempty,uuid"`
	FullName  string  `json:"full_name"  validate:"required,max=100"`
	Phone     string  `json:"phone"      validate:"omitempty,max=20"`
	Email     string  `json:"email"      validate:"omitempty,email,max=100"`
	Gender    string  `json:"gender"     validate:"omitempty,oneof=male female other"`
	BirthDate string  `json:"birth_date" validate:"omitempty"`
	Address   string  `json:"address"    validate:"omitempty,max=255"`
}

func (c *CreatePatientRequest) ToModel(actor string) (model.Patient, error) {
	var birthDate *time.Time

	if c.BirthDate != "" {
		parsed, err := time.Parse(constant.CalendarFormat, c.BirthDate)
		if err != nil {
			return model.Patient{}, err
		}

		birthDate = &parsed
	}

	return model.Patient{
		ID:        uuid.NewString(),
		AccountID: c.AccountID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		Gender:    c.Gender,
		BirthDate: birthDate,
		Address:   c.Address,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

type UpdatePatientRequest struct {
	FullName  string `db:"full_name"  json:"full_name"  validate:"omitempty,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
	Gender    string `db:"gender"     json:"gender"     validate:"omitempty,oneof=male female other"`
	BirthDate string `db:"birth_date" json:"birth_date" validate:"omitempty"`
	Address   string `db:"address"    json:"address"    validate:"omitempty,max=255"`
}

type PatientResponse struct {
	ID        string  `json:"id"`
	AccountID *string `json:"account_id,omitempty"`
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Gender    string  `json:"gender"`
	BirthDate string  `json:"birth_date,omitempty"`
	Address   string  `json:"address"`
	gDto.Metadata
}

func (r *PatientResponse) FromModel(model model.Patient) {
	r.ID = model.ID
	r.AccountID = model.AccountID
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Email = model.Email
	r.Gender = model.Gender
	r.Address = model.Address

	if model.BirthDate != nil {
		r.BirthDate = model.BirthDate.Format(constant.CalendarFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetPatientsResponse struct {
	Patients  []PatientResponse `json:"patients"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPatientsResponse) FromModels(models []model.Patient, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Patients = make([]PatientResponse, len(models))
	for i, mod := range models {
		r.Patients[i].FromModel(mod)
	}
}
