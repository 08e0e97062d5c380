package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"klinik/infras/otel"
	"klinik/infras/postgres"
	"klinik/internal/domains/exam/model"
	gDto "klinik/shared/dto"
	gRepo "klinik/shared/repository"
)

type Record interface {
	Insert(ctx context.Context, model model.ExamRecord) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ExamRecord, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExamRecord, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Item interface {
	Insert(ctx context.Context, model model.ExamItem) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ExamItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExamItem, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Invoice interface {
	Insert(ctx context.Context, model model.Invoice) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type recordRepositoryImpl struct {
	gRepo.Repository[model.ExamRecord]
}

func NewRecord(db *postgres.Connection, otel otel.Otel) Record {
	return &recordRepositoryImpl{
		Repository: gRepo.NewRepository[model.ExamRecord](model.RecordEntityName, model.RecordTableName, model.FieldRecordID, db, otel),
	}
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.ExamItem]
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.ExamItem](model.ItemEntityName, model.ItemTableName, model.FieldItemID, db, otel),
	}
}

type invoiceRepositoryImpl struct {
	gRepo.Repository[model.Invoice]
}

func NewInvoice(db *postgres.Connection, otel otel.Otel) Invoice {
	return &invoiceRepositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.InvoiceEntityName, model.InvoiceTableName, model.FieldInvoiceID, db, otel),
	}
}
