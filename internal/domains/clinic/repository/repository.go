package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"klinik/infras/otel"
	"klinik/infras/postgres"
	"klinik/internal/domains/clinic/model"
	gDto "klinik/shared/dto"
	gRepo "klinik/shared/repository"
)

type Clinic interface {
	Insert(ctx context.Context, model model.Clinic) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Clinic, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Clinic, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Clinic]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Clinic {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Clinic](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
