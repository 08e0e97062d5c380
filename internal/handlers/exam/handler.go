package exam

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/internal/domains/exam/model"
	"klinik/internal/domains/exam/model/dto"
	"klinik/internal/domains/exam/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/validator"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Exam
	otel    otel.Otel
}

func New(service service.Exam, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/exam-records", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExamRecord)
		routerGroup.Get("/", handler.GetExamRecords)
		routerGroup.Get("/{id}", handler.GetExamRecordByID)
		routerGroup.Patch("/{id}", handler.UpdateExamRecord)
		routerGroup.Delete("/{id}", handler.DeleteExamRecord)
		routerGroup.Post("/{id}/items", handler.CreateExamItem)
		routerGroup.Get("/{id}/items", handler.GetExamItems)
		routerGroup.Patch("/{id}/items/{itemID}", handler.UpdateExamItem)
		routerGroup.Delete("/{id}/items/{itemID}", handler.DeleteExamItem)
	})

	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInvoice)
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
		routerGroup.Patch("/{id}", handler.UpdateInvoice)
		routerGroup.Delete("/{id}", handler.DeleteInvoice)
	})
}

// CreateExamRecord writes an exam record for an appointment.
// @Summary Create a new exam record
// @Description Create an exam record with a diagnosis and optional follow-up date.
// @Tags Exam
// @Accept json
// @Produce json
// @Param request body dto.CreateExamRecordRequest true "Create Exam Record Request"
// @Success 201 {object} response.Data[gDto.CreatedResponse] "Exam record created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records [post]
// @Security BearerAuth
func (handler *Handler) CreateExamRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExamRecord")
	defer scope.End()

	req := dto.CreateExamRecordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.CreateRecord(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create exam record")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Exam record created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetExamRecords retrieves exam records with their items and invoices.
// @Summary Get all exam records
// @Description Retrieve exam records with optional filtering and pagination. Each record carries its items and invoices.
// @Tags Exam
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param appointment_id query string false "Filter by appointment ID"
// @Success 200 {object} response.Data[dto.GetExamRecordsResponse] "List of exam records"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records [get]
// @Security BearerAuth
func (handler *Handler) GetExamRecords(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExamRecords")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	appointmentID := r.URL.Query().Get(model.FieldRecordAppointmentID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if appointmentID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRecordAppointmentID,
			Operator: gDto.FilterOperatorEq,
			Value:    appointmentID,
			Table:    model.RecordTableName,
		})
	}

	records, err := handler.service.GetRecords(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get exam records")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam records retrieved successfully")

	response.WithJSON(w, http.StatusOK, records)
}

// GetExamRecordByID retrieves an exam record with its items and invoices.
// @Summary Get an exam record by ID
// @Description Retrieve an exam record by its unique identifier, including its items and invoices.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Success 200 {object} response.Data[dto.ExamRecordDetailResponse] "Exam record details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExamRecordByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExamRecordByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	record, err := handler.service.GetRecord(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get exam record by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam record retrieved successfully")

	response.WithJSON(w, http.StatusOK, record)
}

// UpdateExamRecord updates an exam record.
// @Summary Update an exam record
// @Description Update the diagnosis or follow-up date of an exam record.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Param request body dto.UpdateExamRecordRequest true "Update Exam Record Request"
// @Success 200 {object} response.Message "Exam record updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExamRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExamRecord")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateExamRecordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRecord(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update exam record")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam record updated successfully")

	response.WithMessage(w, http.StatusOK, "Exam record updated successfully")
}

// DeleteExamRecord deletes an exam record with its items and invoices.
// @Summary Delete an exam record
// @Description Delete an exam record and everything attached to it.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Success 200 {object} response.Message "Exam record deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExamRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExamRecord")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteRecord(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete exam record")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam record deleted successfully")

	response.WithMessage(w, http.StatusOK, "Exam record deleted successfully")
}

// CreateExamItem attaches a billed service to an exam record.
// @Summary Add an item to an exam record
// @Description Attach a service with a quantity to an exam record.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Param request body dto.CreateExamItemRequest true "Create Exam Item Request"
// @Success 201 {object} response.Data[gDto.CreatedResponse] "Exam item created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id}/items [post]
// @Security BearerAuth
func (handler *Handler) CreateExamItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExamItem")
	defer scope.End()

	recordID := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateExamItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.CreateItem(ctx, req, recordID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create exam item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam item created successfully")

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetExamItems lists the items of an exam record.
// @Summary Get exam record items
// @Description Retrieve the items attached to an exam record.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Success 200 {object} response.Data[dto.GetExamItemsResponse] "List of exam items"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id}/items [get]
// @Security BearerAuth
func (handler *Handler) GetExamItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExamItems")
	defer scope.End()

	recordID := chi.URLParam(r, constant.RequestParamID)

	items, err := handler.service.GetItems(ctx, recordID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get exam items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// UpdateExamItem updates an item on an exam record.
// @Summary Update an exam item
// @Description Update the service, quantity, or note of an exam item.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Param itemID path string true "Exam Item ID"
// @Param request body dto.UpdateExamItemRequest true "Update Exam Item Request"
// @Success 200 {object} response.Message "Exam item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id}/items/{itemID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExamItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExamItem")
	defer scope.End()

	recordID := chi.URLParam(r, constant.RequestParamID)
	itemID := chi.URLParam(r, constant.RequestParamItemID)

	req := dto.UpdateExamItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateItem(ctx, req, recordID, itemID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update exam item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam item updated successfully")

	response.WithMessage(w, http.StatusOK, "Exam item updated successfully")
}

// DeleteExamItem removes an item from an exam record.
// @Summary Delete an exam item
// @Description Remove an item from an exam record.
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam Record ID"
// @Param itemID path string true "Exam Item ID"
// @Success 200 {object} response.Message "Exam item deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/exam-records/{id}/items/{itemID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExamItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExamItem")
	defer scope.End()

	recordID := chi.URLParam(r, constant.RequestParamID)
	itemID := chi.URLParam(r, constant.RequestParamItemID)

	if err := handler.service.DeleteItem(ctx, recordID, itemID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete exam item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam item deleted successfully")

	response.WithMessage(w, http.StatusOK, "Exam item deleted successfully")
}

// CreateInvoice bills an exam record.
// @Summary Create a new invoice
// @Description Create an unpaid invoice against an exam record.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Create Invoice Request"
// @Success 201 {object} response.Data[gDto.CreatedResponse] "Invoice created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices [post]
// @Security BearerAuth
func (handler *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	req := dto.CreateInvoiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.CreateInvoice(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invoice")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Invoice created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetInvoices retrieves all invoices.
// @Summary Get all invoices
// @Description Retrieve invoices with optional filtering and pagination.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param exam_record_id query string false "Filter by exam record ID"
// @Param status query string false "Filter by status (unpaid, paid)"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse] "List of invoices"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	examRecordID := r.URL.Query().Get(model.FieldInvoiceExamRecordID)
	status := r.URL.Query().Get(model.FieldInvoiceStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if examRecordID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldInvoiceExamRecordID,
			Operator: gDto.FilterOperatorEq,
			Value:    examRecordID,
			Table:    model.InvoiceTableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldInvoiceStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.InvoiceTableName,
		})
	}

	invoices, err := handler.service.GetInvoices(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoices retrieved successfully")

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoiceByID retrieves an invoice by its ID.
// @Summary Get an invoice by ID
// @Description Retrieve an invoice by its unique identifier.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	invoice, err := handler.service.GetInvoice(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoice retrieved successfully")

	response.WithJSON(w, http.StatusOK, invoice)
}

// UpdateInvoice updates an invoice, including marking it paid.
// @Summary Update an invoice
// @Description Update the payment method or status of an invoice. Marking it paid stamps the payment time.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.UpdateInvoiceRequest true "Update Invoice Request"
// @Success 200 {object} response.Message "Invoice updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateInvoiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateInvoice(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update invoice")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoice updated successfully")

	response.WithMessage(w, http.StatusOK, "Invoice updated successfully")
}

// DeleteInvoice deletes an invoice.
// @Summary Delete an invoice
// @Description Delete an invoice by its unique identifier.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Message "Invoice deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInvoice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteInvoice(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete invoice")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoice deleted successfully")

	response.WithMessage(w, http.StatusOK, "Invoice deleted successfully")
}
