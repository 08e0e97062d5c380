package dto

import (
	"mime/multipart"

	"klinik/internal/domains/doctor/model"
	"klinik/shared"
	gDto "klinik/shared/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateDoctorRequest struct {
	ClinicID   string `json:"clinic_id"  validate:"required,uuid"`
	FullName   string `json:"full_name"  validate:"required,max=100"`
	Title      string `json:"title"      validate:"omitempty,max=100"`
	Experience int    `json:"experience" validate:"omitempty,min=0,max=80"`
}

func (c *CreateDoctorRequest) ToModel(actor string) model.Doctor {
	return model.Doctor{
		ID:         uuid.NewString(),
		ClinicID:   c.ClinicID,
		FullName:   c.FullName,
		Title:      c.Title,
		Experience: c.Experience,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateDoctorRequest struct {
	ClinicID   string `db:"clinic_id"  json:"clinic_id"  validate:"omitempty,uuid"`
	FullName   string `db:"full_name"  json:"full_name"  validate:"omitempty,max=100"`
	Title      string `db:"title"      json:"title"      validate:"omitempty,max=100"`
	Experience int    `db:"experience" json:"experience" validate:"omitempty,min=0,max=80"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DoctorResponse struct {
	ID         string  `json:"id"`
	ClinicID   string  `json:"clinic_id"`
	ClinicName string  `json:"clinic_name"`
	FullName   string  `json:"full_name"`
	Title      string  `json:"title"`
	Experience int     `json:"experience"`
	ImageURL   *string `json:"image_url,omitempty"`
	gDto.Metadata
}

func (r *DoctorResponse) FromModel(model model.Doctor) {
	r.ID = model.ID
	r.ClinicID = model.ClinicID
	r.ClinicName = model.ClinicName
	r.FullName = model.FullName
	r.Title = model.Title
	r.Experience = model.Experience
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

type GetDoctorsResponse struct {
	Doctors   []DoctorResponse `json:"doctors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetDoctorsResponse) FromModels(models []model.Doctor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Doctors = make([]DoctorResponse, len(models))
	for i, mod := range models {
		r.Doctors[i].FromModel(mod)
	}
}
