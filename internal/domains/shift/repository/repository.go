package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"klinik/infras/otel"
	"klinik/infras/postgres"
	appointmentModel "klinik/internal/domains/appointment/model"
	"klinik/internal/domains/shift/model"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/logger"
	gRepo "klinik/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Shift interface {
	Insert(ctx context.Context, model model.Shift) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Shift) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Shift, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Shift, error)
	GetOpen(ctx context.Context, examDate time.Time) ([]model.Shift, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Shift]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Shift {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Shift](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	return tx, nil
}

// GetOpen lists doctor-staffed shifts on a date that have no live appointment.
func (repo *repositoryImpl) GetOpen(ctx context.Context, examDate time.Time) ([]model.Shift, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".shift.GetOpen")
	defer scope.End()

	activeStatuses := make([]string, 0, len(appointmentModel.ActiveStatuses()))
	for _, status := range appointmentModel.ActiveStatuses() {
		activeStatuses = append(activeStatuses, "'"+status+"'")
	}

	query := fmt.Sprintf(`
		SELECT shifts.id, shifts.clinic_id, shifts.doctor_id, shifts.exam_date,
		       shifts.start_time, shifts.end_time, shifts.note,
		       clinics.name AS clinic_name, doctors.full_name AS doctor_name,
		       shifts.created_at, shifts.modified_at, shifts.created_by, shifts.modified_by
		FROM shifts
		LEFT JOIN clinics ON clinics.id = shifts.clinic_id
		LEFT JOIN doctors ON doctors.id = shifts.doctor_id
		WHERE shifts.doctor_id IS NOT NULL
		  AND shifts.exam_date = :exam_date
		  AND NOT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointments.shift_id = shifts.id
			  AND appointments.status IN (%s)
		  )
		ORDER BY shifts.start_time ASC`, strings.Join(activeStatuses, ", "))

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"exam_date": examDate,
	}

	var models []model.Shift

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get open shifts: %w", err)
	}

	return models, nil
}
