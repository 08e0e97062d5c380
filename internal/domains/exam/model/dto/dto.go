package dto

import (
	"time"

	"klinik/internal/domains/exam/model"
	"klinik/shared"
	"klinik/shared/constant"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateExamRecordRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required,uuid"`
	Diagnosis     string `json:"diagnosis"      validate:"required,max=1000"`
	FollowUpDate  string `json:"follow_up_date" validate:"omitempty"`
}

func (c *CreateExamRecordRequest) ToModel(actor string) (model.ExamRecord, error) {
	record := model.ExamRecord{
		ID:            uuid.NewString(),
		AppointmentID: c.AppointmentID,
		Diagnosis:     c.Diagnosis,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	if c.FollowUpDate != "" {
		followUp, err := time.Parse(constant.CalendarFormat, c.FollowUpDate)
		if err != nil {
			return record, err // nolint:wrapcheck
		}

		record.FollowUpDate = &followUp
	}

	return record, nil
}

type UpdateExamRecordRequest struct {
	Diagnosis    string `db:"diagnosis"      json:"diagnosis"      validate:"omitempty,max=1000"`
	FollowUpDate string `json:"follow_up_date" validate:"omitempty"`
}

type CreateExamItemRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Note      string `json:"note"       validate:"omitempty,max=255"`
}

func (c *CreateExamItemRequest) ToModel(actor, examRecordID string) model.ExamItem {
	return model.ExamItem{
		ID:           uuid.NewString(),
		ExamRecordID: examRecordID,
		ServiceID:    c.ServiceID,
		Quantity:     c.Quantity,
		Note:         c.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateExamItemRequest struct {
	ServiceID string `db:"service_id" json:"service_id" validate:"omitempty,uuid"`
	Quantity  int    `db:"quantity"   json:"quantity"   validate:"omitempty,min=1"`
	Note      string `db:"note"       json:"note"       validate:"omitempty,max=255"`
}

type CreateInvoiceRequest struct {
	ExamRecordID string  `json:"exam_record_id" validate:"required,uuid"`
	Amount       float64 `json:"amount"         validate:"required,gt=0"`
	Method       string  `json:"method"         validate:"required,oneof=cash card transfer"`
}

func (c *CreateInvoiceRequest) ToModel(actor string) model.Invoice {
	return model.Invoice{
		ID:           uuid.NewString(),
		ExamRecordID: c.ExamRecordID,
		Amount:       c.Amount,
		Method:       c.Method,
		Status:       model.InvoiceStatusUnpaid,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateInvoiceRequest struct {
	Method string `db:"method" json:"method" validate:"omitempty,oneof=cash card transfer"`
	Status string `db:"status" json:"status" validate:"omitempty,oneof=unpaid paid"`
}

type ExamRecordResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
	Diagnosis     string `json:"diagnosis"`
	FollowUpDate  string `json:"follow_up_date,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func (r *ExamRecordResponse) FromModel(model model.ExamRecord) {
	r.ID = model.ID
	r.AppointmentID = model.AppointmentID
	r.Diagnosis = model.Diagnosis
	r.CreatedAt = model.CreatedAt.Format(time.RFC3339)

	if model.FollowUpDate != nil {
		r.FollowUpDate = model.FollowUpDate.Format(constant.CalendarFormat)
	}
}

type ExamItemResponse struct {
	ID           string `json:"id"`
	ExamRecordID string `json:"exam_record_id"`
	ServiceID    string `json:"service_id"`
	ServiceName  string `json:"service_name"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
}

func (r *ExamItemResponse) FromModel(model model.ExamItem) {
	r.ID = model.ID
	r.ExamRecordID = model.ExamRecordID
	r.ServiceID = model.ServiceID
	r.ServiceName = model.ServiceName
	r.Quantity = model.Quantity
	r.Note = model.Note
}

type InvoiceResponse struct {
	ID           string  `json:"id"`
	ExamRecordID string  `json:"exam_record_id"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	Status       string  `json:"status"`
	PaidAt       string  `json:"paid_at,omitempty"`
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.ExamRecordID = model.ExamRecordID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Status = model.Status

	if model.PaidAt != nil {
		r.PaidAt = model.PaidAt.Format(time.RFC3339)
	}
}

// ExamRecordDetailResponse is a record together with its items and invoices.
type ExamRecordDetailResponse struct {
	ExamRecordResponse
	Items    []ExamItemResponse `json:"items"`
	Invoices []InvoiceResponse  `json:"invoices"`
}

func (r *ExamRecordDetailResponse) FromModels(record model.ExamRecord, items []model.ExamItem, invoices []model.Invoice) {
	r.ExamRecordResponse.FromModel(record)

	r.Items = make([]ExamItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}

	r.Invoices = make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		r.Invoices[i].FromModel(invoice)
	}
}

type GetExamRecordsResponse struct {
	ExamRecords []ExamRecordDetailResponse `json:"exam_records"`
	TotalPage   int                        `json:"total_page"`
	TotalData   int                        `json:"total_data"`
}

func (r *GetExamRecordsResponse) FromModels(models []model.ExamRecord, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ExamRecords = make([]ExamRecordDetailResponse, len(models))
	for i, mod := range models {
		r.ExamRecords[i].FromModel(mod)
		r.ExamRecords[i].Items = []ExamItemResponse{}
		r.ExamRecords[i].Invoices = []InvoiceResponse{}
	}
}

type GetExamItemsResponse struct {
	Items []ExamItemResponse `json:"items"`
}

func (r *GetExamItemsResponse) FromModels(models []model.ExamItem) {
	r.Items = make([]ExamItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}
