package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"klinik/infras/otel"
	"klinik/infras/postgres"
	"klinik/internal/domains/appointment/model"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/logger"
	gRepo "klinik/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	GetPendingAssignment(ctx context.Context, from time.Time) ([]model.PendingAssignmentRow, error)
	GetDoctorSchedule(ctx context.Context, doctorID string, startDate, endDate *time.Time) ([]model.ScheduleRow, error)
	GetDoctorPatients(ctx context.Context, doctorID string) ([]model.PatientVisitRow, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func quotedStatuses(statuses []string) string {
	quoted := make([]string, 0, len(statuses))
	for _, status := range statuses {
		quoted = append(quoted, "'"+status+"'")
	}

	return strings.Join(quoted, ", ")
}

// GetPendingAssignment lists upcoming appointments whose shift has no doctor,
// earliest slot first.
func (repo *repositoryImpl) GetPendingAssignment(ctx context.Context, from time.Time) ([]model.PendingAssignmentRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.GetPendingAssignment")
	defer scope.End()

	query := fmt.Sprintf(`
		SELECT appointments.id AS appointment_id, appointments.shift_id, shifts.clinic_id,
		       shifts.exam_date, shifts.start_time, shifts.end_time,
		       appointments.status, appointments.symptom,
		       appointments.patient_id, patients.full_name AS patient_name,
		       patients.phone AS patient_phone, patients.email AS patient_email,
		       patients.gender AS patient_gender, patients.birth_date AS patient_birth_date
		FROM appointments
		JOIN shifts ON shifts.id = appointments.shift_id
		JOIN patients ON patients.id = appointments.patient_id
		WHERE shifts.doctor_id IS NULL
		  AND shifts.exam_date >= :from
		  AND appointments.status IN (%s)
		ORDER BY shifts.exam_date ASC, shifts.start_time ASC`,
		quotedStatuses([]string{model.StatusPending, model.StatusBooked}))

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"from": from,
	}

	var rows []model.PendingAssignmentRow

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rows, fmt.Errorf("failed to get pending assignments: %w", err)
	}

	return rows, nil
}

// GetDoctorSchedule lists a doctor's appointments, newest exam date first. A
// nil bound leaves that side of the range open.
func (repo *repositoryImpl) GetDoctorSchedule(ctx context.Context, doctorID string, startDate, endDate *time.Time) ([]model.ScheduleRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.GetDoctorSchedule")
	defer scope.End()

	conditions := []string{"shifts.doctor_id = :doctor_id"}
	args := map[string]any{
		"doctor_id": doctorID,
	}

	if startDate != nil {
		conditions = append(conditions, "shifts.exam_date >= :start_date")
		args["start_date"] = *startDate
	}

	if endDate != nil {
		conditions = append(conditions, "shifts.exam_date <= :end_date")
		args["end_date"] = *endDate
	}

	query := fmt.Sprintf(`
		SELECT appointments.id AS appointment_id, appointments.shift_id,
		       shifts.exam_date, shifts.start_time, shifts.end_time,
		       appointments.status, appointments.symptom,
		       appointments.patient_id, patients.full_name AS patient_name,
		       patients.phone AS patient_phone
		FROM appointments
		JOIN shifts ON shifts.id = appointments.shift_id
		JOIN patients ON patients.id = appointments.patient_id
		WHERE %s
		ORDER BY shifts.exam_date DESC, shifts.start_time ASC`, strings.Join(conditions, " AND "))

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []model.ScheduleRow

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rows, fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	return rows, nil
}

// GetDoctorPatients aggregates visit counts per patient for one doctor,
// recomputed from the appointment history on every call.
func (repo *repositoryImpl) GetDoctorPatients(ctx context.Context, doctorID string) ([]model.PatientVisitRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.GetDoctorPatients")
	defer scope.End()

	query := `
		SELECT appointments.patient_id, patients.full_name AS patient_name, patients.phone,
		       COUNT(appointments.id) AS visit_count,
		       MAX(shifts.exam_date) AS last_visit
		FROM appointments
		JOIN shifts ON shifts.id = appointments.shift_id
		JOIN patients ON patients.id = appointments.patient_id
		WHERE shifts.doctor_id = :doctor_id
		GROUP BY appointments.patient_id, patients.full_name, patients.phone
		ORDER BY last_visit DESC`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"doctor_id": doctorID,
	}

	var rows []model.PatientVisitRow

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rows, fmt.Errorf("failed to get doctor patients: %w", err)
	}

	return rows, nil
}
