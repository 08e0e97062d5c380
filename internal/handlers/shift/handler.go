package shift

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/internal/domains/shift/model"
	"klinik/internal/domains/shift/model/dto"
	"klinik/internal/domains/shift/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/validator"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Shift
	otel    otel.Otel
}

func New(service service.Shift, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/shifts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateShift)
		routerGroup.Get("/", handler.GetShifts)
		routerGroup.Get("/open", handler.GetOpenShifts)
		routerGroup.Get("/{id}", handler.GetShiftByID)
		routerGroup.Patch("/{id}", handler.UpdateShift)
		routerGroup.Patch("/{id}/doctor", handler.AssignDoctor)
		routerGroup.Delete("/{id}", handler.DeleteShift)
	})
}

// CreateShift creates a shift, with or without a doctor.
// @Summary Create a new shift
// @Description Create a shift on a clinic. The doctor may be left unassigned.
// @Tags Shift
// @Accept json
// @Produce json
// @Param request body dto.CreateShiftRequest true "Create Shift Request"
// @Success 201 {object} response.Data[gDto.CreatedResponse] "Shift created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts [post]
// @Security BearerAuth
func (handler *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateShift")
	defer scope.End()

	req := dto.CreateShiftRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create shift")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Shift created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetShifts retrieves all shifts.
// @Summary Get all shifts
// @Description Retrieve all shifts with optional filtering and pagination.
// @Tags Shift
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param clinic_id query string false "Filter by clinic ID"
// @Param doctor_id query string false "Filter by doctor ID"
// @Param exam_date query string false "Filter by exam date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetShiftsResponse] "List of shifts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts [get]
// @Security BearerAuth
func (handler *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShifts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	clinicID := r.URL.Query().Get(model.FieldClinicID)
	doctorID := r.URL.Query().Get(model.FieldDoctorID)
	examDate := r.URL.Query().Get(model.FieldExamDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if clinicID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldClinicID,
			Operator: gDto.FilterOperatorEq,
			Value:    clinicID,
			Table:    model.TableName,
		})
	}

	if doctorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDoctorID,
			Operator: gDto.FilterOperatorEq,
			Value:    doctorID,
			Table:    model.TableName,
		})
	}

	if examDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldExamDate,
			Operator: gDto.FilterOperatorEq,
			Value:    examDate,
			Table:    model.TableName,
		})
	}

	shifts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shifts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shifts retrieved successfully")

	response.WithJSON(w, http.StatusOK, shifts)
}

// GetOpenShifts lists bookable shifts on a date.
// @Summary Get open shifts
// @Description Retrieve doctor-staffed shifts on the given date that have no active appointment yet.
// @Tags Shift
// @Accept json
// @Produce json
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetOpenShiftsResponse] "List of open shifts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/open [get]
func (handler *Handler) GetOpenShifts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOpenShifts")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	shifts, err := handler.service.GetOpen(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get open shifts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Open shifts retrieved successfully")

	response.WithJSON(w, http.StatusOK, shifts)
}

// GetShiftByID retrieves a shift by its ID.
// @Summary Get a shift by ID
// @Description Retrieve a shift by its unique identifier.
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Data[dto.ShiftResponse] "Shift details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetShiftByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShiftByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	shift, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shift by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shift retrieved successfully")

	response.WithJSON(w, http.StatusOK, shift)
}

// UpdateShift updates a shift.
// @Summary Update a shift
// @Description Update shift fields by ID.
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body dto.UpdateShiftRequest true "Update Shift Request"
// @Success 200 {object} response.Message "Shift updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateShift")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateShiftRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update shift")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shift updated successfully")

	response.WithMessage(w, http.StatusOK, "Shift updated successfully")
}

// AssignDoctor staffs a shift with a doctor.
// @Summary Assign a doctor to a shift
// @Description Assign a doctor to a pending shift, optionally adjusting the time window.
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body dto.AssignDoctorRequest true "Assign Doctor Request"
// @Success 200 {object} response.Message "Doctor assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/{id}/doctor [patch]
// @Security BearerAuth
func (handler *Handler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AssignDoctorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AssignDoctor(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign doctor to shift")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor assigned successfully to shift " + id)

	response.WithMessage(w, http.StatusOK, "Doctor assigned successfully")
}

// DeleteShift deletes a shift.
// @Summary Delete a shift
// @Description Delete a shift by its unique identifier.
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Message "Shift deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteShift")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete shift")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shift deleted successfully")

	response.WithMessage(w, http.StatusOK, "Shift deleted successfully")
}
