package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"klinik/config"
	"klinik/infras/kafka"
	"klinik/infras/otel"
	"klinik/internal/domains/appointment/model"
	"klinik/internal/domains/appointment/model/dto"
	"klinik/internal/domains/appointment/repository"
	clinicModel "klinik/internal/domains/clinic/model"
	clinicRepo "klinik/internal/domains/clinic/repository"
	examModel "klinik/internal/domains/exam/model"
	examRepo "klinik/internal/domains/exam/repository"
	patientModel "klinik/internal/domains/patient/model"
	patientRepo "klinik/internal/domains/patient/repository"
	shiftModel "klinik/internal/domains/shift/model"
	shiftRepo "klinik/internal/domains/shift/repository"
	"klinik/shared"
	"klinik/shared/cache"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"
	"klinik/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.CreateAppointmentResponse, error)
	CreateFlexible(ctx context.Context, req dto.CreateFlexibleAppointmentRequest) (dto.CreateAppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetPendingAssignment(ctx context.Context) (dto.GetPendingAssignmentsResponse, error)
	GetDoctorSchedule(ctx context.Context, doctorID, startDate, endDate string) (dto.GetDoctorScheduleResponse, error)
	GetDoctorPatients(ctx context.Context, doctorID string) (dto.GetDoctorPatientsResponse, error)
	Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Appointment
	shiftRepo   shiftRepo.Shift
	patientRepo patientRepo.Patient
	clinicRepo  clinicRepo.Clinic
	recordRepo  examRepo.Record
	itemRepo    examRepo.Item
	invoiceRepo examRepo.Invoice
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Appointment,
	shiftRepo shiftRepo.Shift,
	patientRepo patientRepo.Patient,
	clinicRepo clinicRepo.Clinic,
	recordRepo examRepo.Record,
	itemRepo examRepo.Item,
	invoiceRepo examRepo.Invoice,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:        repo,
		shiftRepo:   shiftRepo,
		patientRepo: patientRepo,
		clinicRepo:  clinicRepo,
		recordRepo:  recordRepo,
		itemRepo:    itemRepo,
		invoiceRepo: invoiceRepo,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// validateBooking checks the booking request against its shift. The booking
// date must parse and fall on the shift's exam date.
func (s *serviceImpl) validateBooking(ctx context.Context, shiftID, rawBookingDate string) (time.Time, error) {
	shift, err := s.shiftRepo.Get(ctx, shared.FilterByID(shiftID, shiftModel.FieldID, shiftModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get shift")

		return time.Time{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if shift.ID == constant.Empty {
		return time.Time{}, failure.NotFound("shift not found") // nolint:wrapcheck
	}

	bookingDate, ok := dto.ParseBookingDate(rawBookingDate)
	if !ok {
		return time.Time{}, failure.InvalidDate(rawBookingDate) // nolint:wrapcheck
	}

	shiftDate := time.Date(shift.ExamDate.Year(), shift.ExamDate.Month(), shift.ExamDate.Day(), 0, 0, 0, 0, time.UTC)
	if !bookingDate.Equal(shiftDate) {
		return time.Time{}, failure.DateMismatch( // nolint:wrapcheck
			shiftDate.Format(constant.CalendarFormat),
			bookingDate.Format(constant.CalendarFormat),
		)
	}

	return bookingDate, nil
}

func (s *serviceImpl) checkPatientExists(ctx context.Context, patientID string) error {
	patientExists, err := s.patientRepo.Exist(ctx, shared.FilterByID(patientID, patientModel.FieldID, patientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if patient exists")

		return fmt.Errorf("failed to check if patient exists: %w", err)
	}

	if !patientExists {
		return failure.BadRequestFromString("patient does not exist") // nolint:wrapcheck
	}

	return nil
}

func activeAppointmentFilter(shiftID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldShiftID,
				Value:    shiftID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.ActiveStatuses(),
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.CreateAppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	bookingDate, err := s.validateBooking(ctx, req.ShiftID, req.BookingDate)
	if err != nil {
		return res, err
	}

	if err = s.checkPatientExists(ctx, req.PatientID); err != nil {
		return res, err
	}

	taken, err := s.repo.Exist(ctx, activeAppointmentFilter(req.ShiftID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if shift is taken")

		return res, fmt.Errorf("failed to check if shift is taken: %w", err)
	}

	if taken {
		return res, failure.Conflict("shift already has an active appointment") // nolint:wrapcheck
	}

	appointment := req.ToModel(actor, bookingDate)

	if err = s.repo.Insert(ctx, appointment); err != nil {
		if isUniqueViolation(err) {
			return res, failure.Conflict("shift already has an active appointment") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.invalidateLists(ctx)
	s.publishEvent(ctx, dto.EventTypeCreated, appointment)

	res.ID = appointment.ID
	res.ShiftID = appointment.ShiftID

	return res, nil
}

// CreateFlexible opens a doctorless shift and books the patient into it in
// one transaction. Either both rows land or neither does.
func (s *serviceImpl) CreateFlexible(ctx context.Context, req dto.CreateFlexibleAppointmentRequest) (res dto.CreateAppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateFlexible")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	clinicExists, err := s.clinicRepo.Exist(ctx, shared.FilterByID(req.ClinicID, clinicModel.FieldID, clinicModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if clinic exists")

		return res, fmt.Errorf("failed to check if clinic exists: %w", err)
	}

	if !clinicExists {
		return res, failure.BadRequestFromString("clinic does not exist") // nolint:wrapcheck
	}

	if err = s.checkPatientExists(ctx, req.PatientID); err != nil {
		return res, err
	}

	shift, err := req.ToShiftModel(actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse flexible appointment request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	bookingDate := time.Date(shift.ExamDate.Year(), shift.ExamDate.Month(), shift.ExamDate.Day(), 0, 0, 0, 0, time.UTC)
	appointment := req.ToAppointmentModel(actor, shift.ID, bookingDate)

	tx, err := s.shiftRepo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = s.shiftRepo.InsertTx(ctx, tx, shift); err != nil {
		log.Error().Err(err).Msg("failed to create shift for flexible appointment")

		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("failed to rollback transaction")
		}

		return res, fmt.Errorf("failed to create shift: %w", err)
	}

	if err = s.repo.InsertTx(ctx, tx, appointment); err != nil {
		log.Error().Err(err).Msg("failed to create flexible appointment")

		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("failed to rollback transaction")
		}

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return res, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.invalidateLists(ctx)
	s.publishEvent(ctx, dto.EventTypeCreated, appointment)

	res.ID = appointment.ID
	res.ShiftID = shift.ID

	return res, nil
}

// GetAll pages appointments and hydrates each one with its exam records,
// items, and invoices in three batched queries.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err = s.aggregateExams(ctx, models, &res); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

// aggregateExams attaches exam records, their items, and their invoices to
// the already-built appointment page.
func (s *serviceImpl) aggregateExams(ctx context.Context, models []model.Appointment, res *dto.GetAppointmentsResponse) error {
	if len(models) == 0 {
		return nil
	}

	appointmentIDs := make([]string, len(models))
	for i, appointment := range models {
		appointmentIDs[i] = appointment.ID
	}

	records, err := s.recordRepo.GetAll(ctx, gDto.QueryParams{}, filterIn(examModel.FieldRecordAppointmentID, examModel.RecordTableName, appointmentIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam records")

		return fmt.Errorf("failed to get exam records: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	recordIDs := make([]string, len(records))
	for i, record := range records {
		recordIDs[i] = record.ID
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, filterIn(examModel.FieldItemExamRecordID, examModel.ItemTableName, recordIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam items")

		return fmt.Errorf("failed to get exam items: %w", err)
	}

	invoices, err := s.invoiceRepo.GetAll(ctx, gDto.QueryParams{}, filterIn(examModel.FieldInvoiceExamRecordID, examModel.InvoiceTableName, recordIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return fmt.Errorf("failed to get invoices: %w", err)
	}

	itemsByRecord := make(map[string][]examModel.ExamItem, len(records))
	for _, item := range items {
		itemsByRecord[item.ExamRecordID] = append(itemsByRecord[item.ExamRecordID], item)
	}

	invoicesByRecord := make(map[string][]examModel.Invoice, len(records))
	for _, invoice := range invoices {
		invoicesByRecord[invoice.ExamRecordID] = append(invoicesByRecord[invoice.ExamRecordID], invoice)
	}

	recordsByAppointment := make(map[string][]dto.AggregatedExamRecordResponse, len(models))
	for _, record := range records {
		var aggregated dto.AggregatedExamRecordResponse
		aggregated.FromModels(record, itemsByRecord[record.ID], invoicesByRecord[record.ID])

		recordsByAppointment[record.AppointmentID] = append(recordsByAppointment[record.AppointmentID], aggregated)
	}

	for i := range res.Appointments {
		if aggregated, ok := recordsByAppointment[res.Appointments[i].ID]; ok {
			res.Appointments[i].ExamRecords = aggregated
		}
	}

	return nil
}

func filterIn(field, table string, values []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    values,
				Operator: gDto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

// GetPendingAssignment lists upcoming bookings still waiting for a doctor.
func (s *serviceImpl) GetPendingAssignment(ctx context.Context) (res dto.GetPendingAssignmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPendingAssignment")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := s.repo.GetPendingAssignment(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending assignments")

		return res, fmt.Errorf("failed to get pending assignments: %w", err)
	}

	res.FromRows(rows)

	return res, nil
}

func (s *serviceImpl) GetDoctorSchedule(ctx context.Context, doctorID, startDate, endDate string) (res dto.GetDoctorScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDoctorSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	var start, end *time.Time

	if startDate != "" {
		parsed, parseErr := time.Parse(constant.CalendarFormat, startDate)
		if parseErr != nil {
			return res, failure.InvalidDate(startDate) // nolint:wrapcheck
		}

		start = &parsed
	}

	if endDate != "" {
		parsed, parseErr := time.Parse(constant.CalendarFormat, endDate)
		if parseErr != nil {
			return res, failure.InvalidDate(endDate) // nolint:wrapcheck
		}

		end = &parsed
	}

	rows, err := s.repo.GetDoctorSchedule(ctx, doctorID, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor schedule")

		return res, fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	res.FromRows(rows)

	return res, nil
}

func (s *serviceImpl) GetDoctorPatients(ctx context.Context, doctorID string) (res dto.GetDoctorPatientsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDoctorPatients")
	defer scope.End()
	defer scope.TraceIfError(err)

	rows, err := s.repo.GetDoctorPatients(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor patients")

		return res, fmt.Errorf("failed to get doctor patients: %w", err)
	}

	res.FromRows(rows)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateAppointmentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		log.Error().Msg("appointment not found")

		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update appointment")

		return fmt.Errorf("failed to update appointment: %w", err)
	}

	s.invalidate(ctx, id)

	if req.Status != "" && req.Status != appointment.Status {
		appointment.Status = req.Status
		s.publishEvent(ctx, dto.EventTypeStatusChanged, appointment)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		log.Error().Msg("appointment not found")

		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, appointment model.Appointment) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := dto.AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		ShiftID:       appointment.ShiftID,
		PatientID:     appointment.PatientID,
		BookedBy:      appointment.BookedBy,
		Status:        appointment.Status,
		BookingDate:   appointment.BookingDate.Format(constant.CalendarFormat),
		OccurredAt:    timezone.Now().Format(time.RFC3339),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   appointment.ID,
			Value: event,
		}

		if err := s.kafka.SendMessages(c, constant.KafkaTopicAppointmentEvents, message); err != nil {
			log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to publish appointment event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}
