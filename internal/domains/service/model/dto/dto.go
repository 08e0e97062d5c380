package dto

import (
	"klinik/internal/domains/service/model"
	"klinik/shared"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	ServiceTypeID string  `json:"service_type_id" validate:"required,uuid"`
	Name          string  `json:"name"            validate:"required,max=255"`
	Price         float64 `json:"price"           validate:"required,gt=0"`
	Unit          string  `json:"unit"            validate:"omitempty,max=50"`
	Description   string  `json:"description"     validate:"omitempty,max=1000"`
}

func (c *CreateServiceRequest) ToModel(actor string) model.Service {
	return model.Service{
		ID:            uuid.NewString(),
		ServiceTypeID: c.ServiceTypeID,
		Name:          c.Name,
		Price:         c.Price,
		Unit:          c.Unit,
		Description:   c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateServiceRequest struct {
	ServiceTypeID string  `db:"service_type_id" json:"service_type_id" validate:"omitempty,uuid"`
	Name          string  `db:"name"            json:"name"            validate:"omitempty,max=255"`
	Price         float64 `db:"price"           json:"price"           validate:"omitempty,gt=0"`
	Unit          string  `db:"unit"            json:"unit"            validate:"omitempty,max=50"`
	Description   string  `db:"description"     json:"description"     validate:"omitempty,max=1000"`
}

type CreateServiceTypeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (c *CreateServiceTypeRequest) ToModel(actor string) model.ServiceType {
	return model.ServiceType{
		ID:   uuid.NewString(),
		Name: c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateServiceTypeRequest struct {
	Name string `db:"name" json:"name" validate:"omitempty,max=255"`
}

type ServiceResponse struct {
	ID            string  `json:"id"`
	ServiceTypeID string  `json:"service_type_id"`
	TypeName      string  `json:"type_name"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Unit          string  `json:"unit"`
	Description   string  `json:"description"`
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.ServiceTypeID = model.ServiceTypeID
	r.TypeName = model.TypeName
	r.Name = model.Name
	r.Price = model.Price
	r.Unit = model.Unit
	r.Description = model.Description
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type ServiceTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *ServiceTypeResponse) FromModel(model model.ServiceType) {
	r.ID = model.ID
	r.Name = model.Name
}

type GetServiceTypesResponse struct {
	ServiceTypes []ServiceTypeResponse `json:"service_types"`
}

func (r *GetServiceTypesResponse) FromModels(models []model.ServiceType) {
	r.ServiceTypes = make([]ServiceTypeResponse, len(models))
	for i, mod := range models {
		r.ServiceTypes[i].FromModel(mod)
	}
}
