package dto

import (
	"mime/multipart"

	"klinik/internal/domains/clinic/model"
	"klinik/shared"
	gDto "klinik/shared/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateClinicRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid"`
	Name    string `json:"name"     validate:"required,max=100"`
	Address string `json:"address"  validate:"omitempty,max=255"`
	Phone   string `json:"phone"    validate:"omitempty,max=20"`
}

func (c *CreateClinicRequest) ToModel(actor string) model.Clinic {
	return model.Clinic{
		ID:      uuid.NewString(),
		OwnerID: c.OwnerID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Active:  true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateClinicRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Address string `db:"address" json:"address" validate:"omitempty,max=255"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Active  *bool  `db:"active"  json:"active"  validate:"omitempty"`
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

type ClinicResponse struct {
	ID       string  `json:"id"`
	OwnerID  string  `json:"owner_id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	ImageURL *string `json:"image_url,omitempty"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *ClinicResponse) FromModel(model model.Clinic) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Address = model.Address
	r.Phone = model.Phone
	r.ImageURL = model.ImageURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetClinicsResponse struct {
	Clinics   []ClinicResponse `json:"clinics"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetClinicsResponse) FromModels(models []model.Clinic, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Clinics = make([]ClinicResponse, len(models))
	for i, mod := range models {
		r.Clinics[i].FromModel(mod)
	}
}
