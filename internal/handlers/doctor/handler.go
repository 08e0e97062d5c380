package doctor

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/internal/domains/doctor/model"
	"klinik/internal/domains/doctor/model/dto"
	"klinik/internal/domains/doctor/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/validator"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Doctor
	otel    otel.Otel
}

func New(service service.Doctor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDoctor)
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Get("/{id}", handler.GetDoctorByID)
		routerGroup.Patch("/{id}", handler.UpdateDoctor)
		routerGroup.Delete("/{id}", handler.DeleteDoctor)
		routerGroup.Post("/{id}/image", handler.UploadImage)
	})
}

// CreateDoctor creates a doctor.
// @Summary Create a new doctor
// @Description Create a doctor attached to a clinic.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Data[gDto.CreatedResponse] "Doctor created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [post]
// @Security BearerAuth
func (handler *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDoctor")
	defer scope.End()

	req := dto.CreateDoctorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create doctor")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Doctor created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetDoctors retrieves all doctors.
// @Summary Get all doctors
// @Description Retrieve all doctors with optional filtering and pagination.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param clinic_id query string false "Filter by clinic ID"
// @Param full_name query string false "Filter by name (partial match)"
// @Success 200 {object} response.Data[dto.GetDoctorsResponse] "List of doctors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
func (handler *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	clinicID := r.URL.Query().Get(model.FieldClinicID)
	fullName := r.URL.Query().Get(model.FieldFullName)

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

	if fullName != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFullName,
			Operator: gDto.FilterOperatorLike,
			Value:    fullName,
			Table:    model.TableName,
		})
	}

	doctors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctors retrieved successfully")

	response.WithJSON(w, http.StatusOK, doctors)
}

// GetDoctorByID retrieves a doctor by its ID.
// @Summary Get a doctor by ID
// @Description Retrieve a doctor by its unique identifier.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Data[dto.DoctorResponse] "Doctor details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [get]
func (handler *Handler) GetDoctorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	doctor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor retrieved successfully")

	response.WithJSON(w, http.StatusOK, doctor)
}

// UpdateDoctor updates a doctor.
// @Summary Update a doctor
// @Description Update doctor fields by ID.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Message "Doctor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDoctorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update doctor")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor updated successfully")

	response.WithMessage(w, http.StatusOK, "Doctor updated successfully")
}

// DeleteDoctor deletes a doctor.
// @Summary Delete a doctor
// @Description Delete a doctor by its unique identifier.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Message "Doctor deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete doctor")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor deleted successfully")

	response.WithMessage(w, http.StatusOK, "Doctor deleted successfully")
}

// UploadImage uploads a doctor photo to S3.
// @Summary Upload a doctor photo
// @Description Upload a doctor photo to S3 and store its URL on the doctor.
// @Tags Doctor
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Doctor ID"
// @Param file formData file true "Image file to upload"
// @Success 200 {object} response.Data[dto.UploadImageResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id}/image [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	res, err := handler.service.UploadImage(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload doctor photo")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Doctor photo uploaded successfully by " + actor)

	response.WithJSON(w, http.StatusOK, res)
}
