package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"klinik/config"
	"klinik/infras/otel"
	appointmentModel "klinik/internal/domains/appointment/model"
	appointmentRepo "klinik/internal/domains/appointment/repository"
	"klinik/internal/domains/exam/model"
	"klinik/internal/domains/exam/model/dto"
	"klinik/internal/domains/exam/repository"
	serviceModel "klinik/internal/domains/service/model"
	serviceRepo "klinik/internal/domains/service/repository"
	"klinik/shared"
	"klinik/shared/cache"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"
	"klinik/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetExamRecord    = "exam_record:get"
	cacheGetAllExamRecord = "exam_record:gets"
	cacheCountExamRecord  = "exam_record:count"
)

type Exam interface {
	CreateRecord(ctx context.Context, req dto.CreateExamRecordRequest) (string, error)
	GetRecords(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExamRecordsResponse, error)
	CountRecords(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetRecord(ctx context.Context, id string) (dto.ExamRecordDetailResponse, error)
	UpdateRecord(ctx context.Context, req dto.UpdateExamRecordRequest, id string) error
	DeleteRecord(ctx context.Context, id string) error
	CreateItem(ctx context.Context, req dto.CreateExamItemRequest, recordID string) (string, error)
	GetItems(ctx context.Context, recordID string) (dto.GetExamItemsResponse, error)
	UpdateItem(ctx context.Context, req dto.UpdateExamItemRequest, recordID, itemID string) error
	DeleteItem(ctx context.Context, recordID, itemID string) error
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (string, error)
	GetInvoices(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	GetInvoice(ctx context.Context, id string) (dto.InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, req dto.UpdateInvoiceRequest, id string) error
	DeleteInvoice(ctx context.Context, id string) error
}

type serviceImpl struct {
	recordRepo      repository.Record
	itemRepo        repository.Item
	invoiceRepo     repository.Invoice
	appointmentRepo appointmentRepo.Appointment
	serviceRepo     serviceRepo.Service
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	recordRepo repository.Record,
	itemRepo repository.Item,
	invoiceRepo repository.Invoice,
	appointmentRepo appointmentRepo.Appointment,
	serviceRepo serviceRepo.Service,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Exam {
	return &serviceImpl{
		recordRepo:      recordRepo,
		itemRepo:        itemRepo,
		invoiceRepo:     invoiceRepo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) CreateRecord(ctx context.Context, req dto.CreateExamRecordRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRecord")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	appointmentExists, err := s.appointmentRepo.Exist(ctx, shared.FilterByID(req.AppointmentID, appointmentModel.FieldID, appointmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return "", fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !appointmentExists {
		return "", failure.BadRequestFromString("appointment does not exist") // nolint:wrapcheck
	}

	record, err := req.ToModel(actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse exam record request")

		return "", failure.InvalidDate(req.FollowUpDate) // nolint:wrapcheck
	}

	if err = s.recordRepo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to create exam record")

		return "", fmt.Errorf("failed to create exam record: %w", err)
	}

	s.invalidateLists(ctx)

	return record.ID, nil
}

// GetRecords pages exam records and hydrates each with its items and
// invoices in two batched queries.
func (s *serviceImpl) GetRecords(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExamRecordsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRecords")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExamRecord, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for exam records")

		return res, nil
	}

	total, err := s.CountRecords(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count exam records")

		return res, fmt.Errorf("failed to count exam records: %w", err)
	}

	records, err := s.recordRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam records")

		return res, fmt.Errorf("failed to get exam records: %w", err)
	}

	res.FromModels(records, total, req.Limit)

	if len(records) > 0 {
		recordIDs := make([]string, len(records))
		for i, record := range records {
			recordIDs[i] = record.ID
		}

		items, invoices, err := s.childrenOf(ctx, recordIDs)
		if err != nil {
			return res, err
		}

		itemsByRecord := make(map[string][]model.ExamItem, len(records))
		for _, item := range items {
			itemsByRecord[item.ExamRecordID] = append(itemsByRecord[item.ExamRecordID], item)
		}

		invoicesByRecord := make(map[string][]model.Invoice, len(records))
		for _, invoice := range invoices {
			invoicesByRecord[invoice.ExamRecordID] = append(invoicesByRecord[invoice.ExamRecordID], invoice)
		}

		for i := range res.ExamRecords {
			res.ExamRecords[i].FromModels(records[i], itemsByRecord[records[i].ID], invoicesByRecord[records[i].ID])
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save exam records to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) childrenOf(ctx context.Context, recordIDs []string) ([]model.ExamItem, []model.Invoice, error) {
	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, filterIn(model.FieldItemExamRecordID, model.ItemTableName, recordIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam items")

		return nil, nil, fmt.Errorf("failed to get exam items: %w", err)
	}

	invoices, err := s.invoiceRepo.GetAll(ctx, gDto.QueryParams{}, filterIn(model.FieldInvoiceExamRecordID, model.InvoiceTableName, recordIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return nil, nil, fmt.Errorf("failed to get invoices: %w", err)
	}

	return items, invoices, nil
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

func (s *serviceImpl) CountRecords(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountRecords")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountExamRecord, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for exam record count")

		return res, nil
	}

	res, err = s.recordRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count exam records")

		return res, fmt.Errorf("failed to count exam records: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save exam record count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetRecord(ctx context.Context, id string) (res dto.ExamRecordDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRecord")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetExamRecord, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for exam record")

		return res, nil
	}

	record, err := s.recordRepo.Get(ctx, shared.FilterByID(id, model.FieldRecordID, model.RecordTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam record")

		return res, fmt.Errorf("failed to get exam record: %w", err)
	}

	if record.ID == constant.Empty {
		return res, failure.NotFound("exam record not found") // nolint:wrapcheck
	}

	items, invoices, err := s.childrenOf(ctx, []string{record.ID})
	if err != nil {
		return res, err
	}

	res.FromModels(record, items, invoices)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save exam record to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateRecord(ctx context.Context, req dto.UpdateExamRecordRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRecord")
	defer scope.End()

	if req == (dto.UpdateExamRecordRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldRecordID, model.RecordTableName)

	exist, err := s.recordRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if exam record exists")

		return fmt.Errorf("failed to check if exam record exists: %w", err)
	}

	if !exist {
		log.Error().Msg("exam record not found")

		return failure.NotFound("exam record not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateExamRecordRequest{Diagnosis: req.Diagnosis}, actor)

	if req.FollowUpDate != "" {
		followUp, err := time.Parse(constant.CalendarFormat, req.FollowUpDate)
		if err != nil {
			return failure.InvalidDate(req.FollowUpDate) // nolint:wrapcheck
		}

		updatedFields[model.FieldRecordFollowUpDate] = followUp
	}

	if err := s.recordRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update exam record")

		return fmt.Errorf("failed to update exam record: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// DeleteRecord removes a record and its items and invoices with it.
func (s *serviceImpl) DeleteRecord(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRecord")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldRecordID, model.RecordTableName)

	exist, err := s.recordRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if exam record exists")

		return fmt.Errorf("failed to check if exam record exists: %w", err)
	}

	if !exist {
		log.Error().Msg("exam record not found")

		return failure.NotFound("exam record not found") // nolint:wrapcheck
	}

	childFilter := filterIn(model.FieldItemExamRecordID, model.ItemTableName, []string{id})
	if err := s.itemRepo.Delete(ctx, childFilter); err != nil {
		log.Error().Err(err).Msg("failed to delete exam items")

		return fmt.Errorf("failed to delete exam items: %w", err)
	}

	invoiceFilter := filterIn(model.FieldInvoiceExamRecordID, model.InvoiceTableName, []string{id})
	if err := s.invoiceRepo.Delete(ctx, invoiceFilter); err != nil {
		log.Error().Err(err).Msg("failed to delete invoices")

		return fmt.Errorf("failed to delete invoices: %w", err)
	}

	if err := s.recordRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete exam record")

		return fmt.Errorf("failed to delete exam record: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateExamItemRequest, recordID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	recordExists, err := s.recordRepo.Exist(ctx, shared.FilterByID(recordID, model.FieldRecordID, model.RecordTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if exam record exists")

		return "", fmt.Errorf("failed to check if exam record exists: %w", err)
	}

	if !recordExists {
		return "", failure.NotFound("exam record not found") // nolint:wrapcheck
	}

	svcExists, err := s.serviceRepo.Exist(ctx, shared.FilterByID(req.ServiceID, serviceModel.FieldID, serviceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return "", fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !svcExists {
		return "", failure.BadRequestFromString("service does not exist") // nolint:wrapcheck
	}

	item := req.ToModel(actor, recordID)

	if err = s.itemRepo.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to create exam item")

		return "", fmt.Errorf("failed to create exam item: %w", err)
	}

	s.invalidate(ctx, recordID)

	return item.ID, nil
}

func (s *serviceImpl) GetItems(ctx context.Context, recordID string) (res dto.GetExamItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	recordExists, err := s.recordRepo.Exist(ctx, shared.FilterByID(recordID, model.FieldRecordID, model.RecordTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if exam record exists")

		return res, fmt.Errorf("failed to check if exam record exists: %w", err)
	}

	if !recordExists {
		return res, failure.NotFound("exam record not found") // nolint:wrapcheck
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, filterIn(model.FieldItemExamRecordID, model.ItemTableName, []string{recordID}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam items")

		return res, fmt.Errorf("failed to get exam items: %w", err)
	}

	res.FromModels(items)

	return res, nil
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateExamItemRequest, recordID, itemID string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()

	if req == (dto.UpdateExamItemRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(itemID, model.FieldItemID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam item")

		return fmt.Errorf("failed to get exam item: %w", err)
	}

	if item.ID == constant.Empty || item.ExamRecordID != recordID {
		log.Error().Msg("exam item not found")

		return failure.NotFound("exam item not found") // nolint:wrapcheck
	}

	if req.ServiceID != "" {
		svcExists, err := s.serviceRepo.Exist(ctx, shared.FilterByID(req.ServiceID, serviceModel.FieldID, serviceModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if service exists")

			return fmt.Errorf("failed to check if service exists: %w", err)
		}

		if !svcExists {
			return failure.BadRequestFromString("service does not exist") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, actor)

	if err := s.itemRepo.Update(ctx, updatedFields, shared.FilterByID(itemID, model.FieldItemID, model.ItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to update exam item")

		return fmt.Errorf("failed to update exam item: %w", err)
	}

	s.invalidate(ctx, recordID)

	return nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, recordID, itemID string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(itemID, model.FieldItemID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get exam item")

		return fmt.Errorf("failed to get exam item: %w", err)
	}

	if item.ID == constant.Empty || item.ExamRecordID != recordID {
		log.Error().Msg("exam item not found")

		return failure.NotFound("exam item not found") // nolint:wrapcheck
	}

	if err := s.itemRepo.Delete(ctx, shared.FilterByID(itemID, model.FieldItemID, model.ItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete exam item")

		return fmt.Errorf("failed to delete exam item: %w", err)
	}

	s.invalidate(ctx, recordID)

	return nil
}

func (s *serviceImpl) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	recordExists, err := s.recordRepo.Exist(ctx, shared.FilterByID(req.ExamRecordID, model.FieldRecordID, model.RecordTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if exam record exists")

		return "", fmt.Errorf("failed to check if exam record exists: %w", err)
	}

	if !recordExists {
		return "", failure.BadRequestFromString("exam record does not exist") // nolint:wrapcheck
	}

	invoice := req.ToModel(actor)

	if err = s.invoiceRepo.Insert(ctx, invoice); err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		return "", fmt.Errorf("failed to create invoice: %w", err)
	}

	s.invalidate(ctx, req.ExamRecordID)

	return invoice.ID, nil
}

func (s *serviceImpl) GetInvoices(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	invoices, err := s.invoiceRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(invoices, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetInvoice(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	invoice, err := s.invoiceRepo.Get(ctx, shared.FilterByID(id, model.FieldInvoiceID, model.InvoiceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return res, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	res.FromModel(invoice)

	return res, nil
}

// UpdateInvoice changes the payment method or settles the invoice. Moving to
// paid stamps paid_at, moving back clears it.
func (s *serviceImpl) UpdateInvoice(ctx context.Context, req dto.UpdateInvoiceRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateInvoice")
	defer scope.End()

	if req == (dto.UpdateInvoiceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldInvoiceID, model.InvoiceTableName)

	invoice, err := s.invoiceRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		log.Error().Msg("invoice not found")

		return failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor)

	if req.Status == model.InvoiceStatusPaid && invoice.Status != model.InvoiceStatusPaid {
		updatedFields[model.FieldInvoicePaidAt] = timezone.Now()
	}

	if req.Status == model.InvoiceStatusUnpaid {
		updatedFields[model.FieldInvoicePaidAt] = nil
	}

	if err := s.invoiceRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update invoice")

		return fmt.Errorf("failed to update invoice: %w", err)
	}

	s.invalidate(ctx, invoice.ExamRecordID)

	return nil
}

func (s *serviceImpl) DeleteInvoice(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteInvoice")
	defer scope.End()

	invoice, err := s.invoiceRepo.Get(ctx, shared.FilterByID(id, model.FieldInvoiceID, model.InvoiceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		log.Error().Msg("invoice not found")

		return failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	if err := s.invoiceRepo.Delete(ctx, shared.FilterByID(id, model.FieldInvoiceID, model.InvoiceTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete invoice")

		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.invalidate(ctx, invoice.ExamRecordID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, recordID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExamRecord, recordID)); err != nil {
			log.Error().Err(err).Msg("failed to delete exam record cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExamRecord)
		shared.InvalidateCaches(c, s.cache, cacheCountExamRecord)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllExamRecord)
		shared.InvalidateCaches(c, s.cache, cacheCountExamRecord)
	}()
}
