package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"klinik/config"
	"klinik/infras/otel"
	"klinik/internal/domains/service/model"
	"klinik/internal/domains/service/model/dto"
	"klinik/internal/domains/service/repository"
	"klinik/shared"
	"klinik/shared/cache"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService    = "service:get"
	cacheGetAllService = "service:gets"
	cacheCountService  = "service:count"
)

type Service interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	Delete(ctx context.Context, id string) error
	CreateType(ctx context.Context, req dto.CreateServiceTypeRequest) (string, error)
	GetTypes(ctx context.Context) (dto.GetServiceTypesResponse, error)
	UpdateType(ctx context.Context, req dto.UpdateServiceTypeRequest, id string) error
	DeleteType(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Service
	typeRepo repository.ServiceType
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Service, typeRepo repository.ServiceType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Service {
	return &serviceImpl{
		repo:     repo,
		typeRepo: typeRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	typeExists, err := s.typeRepo.Exist(ctx, shared.FilterByID(req.ServiceTypeID, model.FieldTypeID, model.TypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service type exists")

		return "", fmt.Errorf("failed to check if service type exists: %w", err)
	}

	if !typeExists {
		return "", failure.BadRequestFromString("service type does not exist") // nolint:wrapcheck
	}

	service := req.ToModel(actor)

	if err = s.repo.Insert(ctx, service); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return "", fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidateLists(ctx)

	return service.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateServiceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		log.Error().Msg("service not found")

		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if req.ServiceTypeID != "" {
		typeExists, err := s.typeRepo.Exist(ctx, shared.FilterByID(req.ServiceTypeID, model.FieldTypeID, model.TypeTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if service type exists")

			return fmt.Errorf("failed to check if service type exists: %w", err)
		}

		if !typeExists {
			return failure.BadRequestFromString("service type does not exist") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, actor)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		log.Error().Msg("service not found")

		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) CreateType(ctx context.Context, req dto.CreateServiceTypeRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateType")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	serviceType := req.ToModel(actor)

	if err = s.typeRepo.Insert(ctx, serviceType); err != nil {
		log.Error().Err(err).Msg("failed to create service type")

		return "", fmt.Errorf("failed to create service type: %w", err)
	}

	s.invalidateLists(ctx)

	return serviceType.ID, nil
}

func (s *serviceImpl) GetTypes(ctx context.Context) (res dto.GetServiceTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.typeRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldTypeName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get service types")

		return res, fmt.Errorf("failed to get service types: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) UpdateType(ctx context.Context, req dto.UpdateServiceTypeRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateType")
	defer scope.End()

	if req == (dto.UpdateServiceTypeRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldTypeID, model.TypeTableName)

	exist, err := s.typeRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service type exists")

		return fmt.Errorf("failed to check if service type exists: %w", err)
	}

	if !exist {
		log.Error().Msg("service type not found")

		return failure.NotFound("service type not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor)

	if err := s.typeRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update service type")

		return fmt.Errorf("failed to update service type: %w", err)
	}

	s.invalidateLists(ctx)

	return nil
}

// DeleteType refuses to remove a type that still has services attached.
func (s *serviceImpl) DeleteType(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteType")
	defer scope.End()

	exist, err := s.typeRepo.Exist(ctx, shared.FilterByID(id, model.FieldTypeID, model.TypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service type exists")

		return fmt.Errorf("failed to check if service type exists: %w", err)
	}

	if !exist {
		log.Error().Msg("service type not found")

		return failure.NotFound("service type not found") // nolint:wrapcheck
	}

	inUse, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldServiceTypeID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service type is in use")

		return fmt.Errorf("failed to check if service type is in use: %w", err)
	}

	if inUse {
		return failure.Conflict("service type still has services") // nolint:wrapcheck
	}

	if err := s.typeRepo.Delete(ctx, shared.FilterByID(id, model.FieldTypeID, model.TypeTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete service type")

		return fmt.Errorf("failed to delete service type: %w", err)
	}

	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}
