package account

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/internal/domains/account/model"
	"klinik/internal/domains/account/model/dto"
	"klinik/internal/domains/account/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/validator"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Account
	otel    otel.Otel
}

func New(service service.Account, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accounts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccount)
		routerGroup.Get("/", handler.GetAccounts)
		routerGroup.Get("/{id}", handler.GetAccountByID)
		routerGroup.Patch("/{id}", handler.UpdateAccount)
		routerGroup.Delete("/{id}", handler.DeleteAccount)
	})
}

// CreateAccount creates an account with an explicit role.
// @Summary Create a new account
// @Description Create an account with the given email, password, and role.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} response.Message "Account created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [post]
// @Security BearerAuth
func (handler *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccount")
	defer scope.End()

	req := dto.CreateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create account")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	scope.AddEvent("Account created successfully by " + actor)

	response.WithMessage(w, http.StatusCreated, "Account created successfully")
}

// GetAccounts retrieves all accounts.
// @Summary Get all accounts
// @Description Retrieve all accounts with optional filtering and pagination.
// @Tags Account
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param role query string false "Filter by role"
// @Param email query string false "Filter by email (partial match)"
// @Success 200 {object} response.Data[dto.GetAccountsResponse] "List of accounts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [get]
// @Security BearerAuth
func (handler *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	role := r.URL.Query().Get(model.FieldRole)
	email := r.URL.Query().Get(model.FieldEmail)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if role != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Operator: gDto.FilterOperatorEq,
			Value:    role,
			Table:    model.TableName,
		})
	}

	if email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	accounts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accounts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accounts retrieved successfully")

	response.WithJSON(w, http.StatusOK, accounts)
}

// GetAccountByID retrieves an account by its ID.
// @Summary Get an account by ID
// @Description Retrieve an account by its unique identifier.
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Data[dto.AccountResponse] "Account details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccountByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccountByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	account, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get account by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Account retrieved successfully")

	response.WithJSON(w, http.StatusOK, account)
}

// UpdateAccount updates an account.
// @Summary Update an account
// @Description Update account fields by ID.
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Message "Account updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccount")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update account")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Account updated successfully")

	response.WithMessage(w, http.StatusOK, "Account updated successfully")
}

// DeleteAccount deletes an account.
// @Summary Delete an account
// @Description Delete an account by its unique identifier.
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Message "Account deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccount")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete account")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Account deleted successfully")

	response.WithMessage(w, http.StatusOK, "Account deleted successfully")
}
