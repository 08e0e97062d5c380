package dto

import (
	"time"

	"klinik/internal/domains/notification/model"
	"klinik/shared"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Title     string `json:"title"      validate:"required,max=255"`
	Body      string `json:"body"       validate:"required,max=1000"`
}

func (c *CreateNotificationRequest) ToModel(actor string) model.Notification {
	return model.Notification{
		ID:        uuid.NewString(),
		AccountID: c.AccountID,
		Title:     c.Title,
		Body:      c.Body,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type NotificationResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.AccountID = model.AccountID
	r.Title = model.Title
	r.Body = model.Body
	r.Read = model.Read
	r.CreatedAt = model.CreatedAt.Format(time.RFC3339)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
