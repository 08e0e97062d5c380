package dto

import (
	"time"

	"klinik/internal/domains/review/model"
	"klinik/shared"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ClinicID  string `json:"clinic_id"  validate:"required,uuid"`
	PatientID string `json:"patient_id" validate:"required,uuid"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	Comment   string `json:"comment"    validate:"omitempty,max=1000"`
}

func (c *CreateReviewRequest) ToModel(actor string) model.Review {
	return model.Review{
		ID:        uuid.NewString(),
		ClinicID:  c.ClinicID,
		PatientID: c.PatientID,
		Rating:    c.Rating,
		Comment:   c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateReviewRequest struct {
	Rating  int    `db:"rating"  json:"rating"  validate:"omitempty,min=1,max=5"`
	Comment string `db:"comment" json:"comment" validate:"omitempty,max=1000"`
}

type ReviewResponse struct {
	ID          string `json:"id"`
	ClinicID    string `json:"clinic_id"`
	ClinicName  string `json:"clinic_name"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   string `json:"created_at"`
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.ClinicID = model.ClinicID
	r.ClinicName = model.ClinicName
	r.PatientID = model.PatientID
	r.PatientName = model.PatientName
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.CreatedAt = model.CreatedAt.Format(time.RFC3339)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
