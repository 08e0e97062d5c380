package clinic

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/internal/domains/clinic/model"
	"klinik/internal/domains/clinic/model/dto"
	"klinik/internal/domains/clinic/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/validator"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Clinic
	otel    otel.Otel
}

func New(service service.Clinic, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/clinics", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateClinic)
		routerGroup.Get("/", handler.GetClinics)
		routerGroup.Get("/{id}", handler.GetClinicByID)
		routerGroup.Patch("/{id}", handler.UpdateClinic)
		routerGroup.Delete("/{id}", handler.DeleteClinic)
		routerGroup.Post("/{id}/image", handler.UploadImage)
	})
}

// CreateClinic creates a clinic.
// @Summary Create a new clinic
// @Description Create a clinic with the provided details.
// @Tags Clinic
// @Accept json
// @Produce json
// @Param request body dto.CreateClinicRequest true "Create Clinic Request"
// @Success 201 {object} response.Data[gDto.CreatedResponse] "Clinic created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clinics [post]
// @Security BearerAuth
func (handler *Handler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateClinic")
	defer scope.End()

	req := dto.CreateClinicRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create clinic")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Clinic created successfully by " + actor)

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetClinics retrieves all clinics.
// @Summary Get all clinics
// @Description Retrieve all clinics with optional filtering and pagination.
// @Tags Clinic
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (partial match)"
// @Param active query string false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetClinicsResponse] "List of clinics"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clinics [get]
func (handler *Handler) GetClinics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClinics")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	active := r.URL.Query().Get(model.FieldActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active,
			Table:    model.TableName,
		})
	}

	clinics, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get clinics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Clinics retrieved successfully")

	response.WithJSON(w, http.StatusOK, clinics)
}

// GetClinicByID retrieves a clinic by its ID.
// @Summary Get a clinic by ID
// @Description Retrieve a clinic by its unique identifier.
// @Tags Clinic
// @Accept json
// @Produce json
// @Param id path string true "Clinic ID"
// @Success 200 {object} response.Data[dto.ClinicResponse] "Clinic details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clinics/{id} [get]
func (handler *Handler) GetClinicByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClinicByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	clinic, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get clinic by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Clinic retrieved successfully")

	response.WithJSON(w, http.StatusOK, clinic)
}

// UpdateClinic updates a clinic.
// @Summary Update a clinic
// @Description Update clinic fields by ID.
// @Tags Clinic
// @Accept json
// @Produce json
// @Param id path string true "Clinic ID"
// @Param request body dto.UpdateClinicRequest true "Update Clinic Request"
// @Success 200 {object} response.Message "Clinic updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clinics/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateClinic(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateClinic")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateClinicRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update clinic")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Clinic updated successfully")

	response.WithMessage(w, http.StatusOK, "Clinic updated successfully")
}

// DeleteClinic deletes a clinic.
// @Summary Delete a clinic
// @Description Delete a clinic by its unique identifier.
// @Tags Clinic
// @Accept json
// @Produce json
// @Param id path string true "Clinic ID"
// @Success 200 {object} response.Message "Clinic deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clinics/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteClinic(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteClinic")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete clinic")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Clinic deleted successfully")

	response.WithMessage(w, http.StatusOK, "Clinic deleted successfully")
}

// UploadImage uploads a clinic image to S3.
// @Summary Upload a clinic image
// @Description Upload a clinic image to S3 and store its URL on the clinic.
// @Tags Clinic
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Clinic ID"
// @Param file formData file true "Image file to upload"
// @Success 200 {object} response.Data[dto.UploadImageResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clinics/{id}/image [post]
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
		log.Error().Err(err).Msg("failed to upload clinic image")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Clinic image uploaded successfully by " + actor)

	response.WithJSON(w, http.StatusOK, res)
}
