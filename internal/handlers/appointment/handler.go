package appointment

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/internal/domains/appointment/model"
	"klinik/internal/domains/appointment/model/dto"
	"klinik/internal/domains/appointment/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/validator"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Post("/flexible", handler.CreateFlexibleAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/pending-assignment", handler.GetPendingAssignment)
		routerGroup.Get("/doctor/{doctorID}", handler.GetDoctorSchedule)
		routerGroup.Get("/doctor/{doctorID}/patients", handler.GetDoctorPatients)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}", handler.UpdateAppointment)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
	})
}

// CreateAppointment books a patient into an existing shift.
// @Summary Create a new appointment
// @Description Book a patient into an existing shift. The booking date must match the shift's exam date and the shift must be free.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.CreateAppointmentResponse] "Appointment created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Appointment created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, res)
}

// CreateFlexibleAppointment books a patient into a brand new doctorless shift.
// @Summary Create a flexible appointment
// @Description Open a new shift without a doctor and book the patient into it in a single transaction.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateFlexibleAppointmentRequest true "Create Flexible Appointment Request"
// @Success 201 {object} response.Data[dto.CreateAppointmentResponse] "Appointment created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/flexible [post]
// @Security BearerAuth
func (handler *Handler) CreateFlexibleAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFlexibleAppointment")
	defer scope.End()

	req := dto.CreateFlexibleAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateFlexible(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create flexible appointment")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Flexible appointment created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAppointments retrieves appointments with their exam records attached.
// @Summary Get all appointments
// @Description Retrieve appointments with optional filtering and pagination. Each appointment carries its exam records, items, and invoices.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param shift_id query string false "Filter by shift ID"
// @Param patient_id query string false "Filter by patient ID"
// @Param status query string false "Filter by status (pending, booked, arrived, confirmed, cancelled)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	shiftID := r.URL.Query().Get(model.FieldShiftID)
	patientID := r.URL.Query().Get(model.FieldPatientID)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if shiftID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldShiftID,
			Operator: gDto.FilterOperatorEq,
			Value:    shiftID,
			Table:    model.TableName,
		})
	}

	if patientID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPatientID,
			Operator: gDto.FilterOperatorEq,
			Value:    patientID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetPendingAssignment lists bookings whose shift still has no doctor.
// @Summary Get appointments pending doctor assignment
// @Description Retrieve upcoming appointments whose shift has no doctor yet, earliest slot first.
// @Tags Appointment
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetPendingAssignmentsResponse] "List of pending assignments"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/pending-assignment [get]
// @Security BearerAuth
func (handler *Handler) GetPendingAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingAssignment")
	defer scope.End()

	pending, err := handler.service.GetPendingAssignment(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending assignments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pending assignments retrieved successfully")

	response.WithJSON(w, http.StatusOK, pending)
}

// GetDoctorSchedule lists a doctor's appointments.
// @Summary Get a doctor's schedule
// @Description Retrieve a doctor's appointments, optionally bounded by a date range. Newest exam date first.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param doctorID path string true "Doctor ID"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetDoctorScheduleResponse] "Doctor schedule"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/doctor/{doctorID} [get]
// @Security BearerAuth
func (handler *Handler) GetDoctorSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorSchedule")
	defer scope.End()

	doctorID := chi.URLParam(r, constant.RequestParamDoctorID)
	startDate := r.URL.Query().Get(constant.RequestParamStartDate)
	endDate := r.URL.Query().Get(constant.RequestParamEndDate)

	schedule, err := handler.service.GetDoctorSchedule(ctx, doctorID, startDate, endDate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor schedule retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedule)
}

// GetDoctorPatients aggregates a doctor's patients with visit counts.
// @Summary Get a doctor's patients
// @Description Retrieve the patients a doctor has seen, with visit counts and last visit date, most recent first.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param doctorID path string true "Doctor ID"
// @Success 200 {object} response.Data[dto.GetDoctorPatientsResponse] "Doctor patients"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/doctor/{doctorID}/patients [get]
// @Security BearerAuth
func (handler *Handler) GetDoctorPatients(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorPatients")
	defer scope.End()

	doctorID := chi.URLParam(r, constant.RequestParamDoctorID)

	patients, err := handler.service.GetDoctorPatients(ctx, doctorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor patients")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor patients retrieved successfully")

	response.WithJSON(w, http.StatusOK, patients)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateAppointment updates an appointment.
// @Summary Update an appointment
// @Description Update appointment fields by ID, including the status.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Message "Appointment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment updated successfully")

	response.WithMessage(w, http.StatusOK, "Appointment updated successfully")
}

// DeleteAppointment deletes an appointment.
// @Summary Delete an appointment
// @Description Delete an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment deleted successfully")

	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}
