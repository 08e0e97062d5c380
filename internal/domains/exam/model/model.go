package model

import (
	"time"

	serviceModel "klinik/internal/domains/service/model"
	"klinik/shared/model"
)

const (
	RecordTableName  = "exam_records"
	RecordEntityName = "exam_record"

	FieldRecordID            = "id"
	FieldRecordAppointmentID = "appointment_id"
	FieldRecordDiagnosis     = "diagnosis"
	FieldRecordFollowUpDate  = "follow_up_date"
)

type ExamRecord struct {
	ID            string     `db:"id"`
	AppointmentID string     `db:"appointment_id"`
	Diagnosis     string     `db:"diagnosis"`
	FollowUpDate  *time.Time `db:"follow_up_date"`
	model.Metadata
}

const (
	ItemTableName  = "exam_items"
	ItemEntityName = "exam_item"

	FieldItemID           = "id"
	FieldItemExamRecordID = "exam_record_id"
	FieldItemServiceID    = "service_id"
	FieldItemQuantity     = "quantity"
	FieldItemNote         = "note"
)

type ExamItem struct {
	ID           string `db:"id"`
	ExamRecordID string `db:"exam_record_id"`
	ServiceID    string `db:"service_id"`
	Quantity     int    `db:"quantity"`
	Note         string `db:"note"`
	ServiceName  string `db:"service_name" table:"services" column:"name"`
	model.Metadata
}

func (ExamItem) GetJoinQuery() string {
	return "LEFT JOIN " + serviceModel.TableName + " ON " + serviceModel.TableName + ".id = " + ItemTableName + ".service_id"
}

const (
	InvoiceTableName  = "invoices"
	InvoiceEntityName = "invoice"

	FieldInvoiceID           = "id"
	FieldInvoiceExamRecordID = "exam_record_id"
	FieldInvoiceAmount       = "amount"
	FieldInvoiceMethod       = "method"
	FieldInvoiceStatus       = "status"
	FieldInvoicePaidAt       = "paid_at"
)

const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

type Invoice struct {
	ID           string     `db:"id"`
	ExamRecordID string     `db:"exam_record_id"`
	Amount       float64    `db:"amount"`
	Method       string     `db:"method"`
	Status       string     `db:"status"`
	PaidAt       *time.Time `db:"paid_at"`
	model.Metadata
}
