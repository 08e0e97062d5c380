package service

import (
	"context"
	"fmt"

	"klinik/config"
	"klinik/infras/otel"
	"klinik/infras/s3"
	"klinik/internal/domains/clinic/model"
	"klinik/internal/domains/clinic/model/dto"
	"klinik/internal/domains/clinic/repository"
	"klinik/shared"
	"klinik/shared/cache"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"
	"klinik/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetClinic    = "clinic:get"
	cacheGetAllClinic = "clinic:gets"
	cacheCountClinic  = "clinic:count"
)

type Clinic interface {
	Create(ctx context.Context, req dto.CreateClinicRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetClinicsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ClinicResponse, error)
	Update(ctx context.Context, req dto.UpdateClinicRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo  repository.Clinic
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Clinic, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Clinic {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateClinicRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	clinic := req.ToModel(actor)

	if err = s.repo.Insert(ctx, clinic); err != nil {
		log.Error().Err(err).Msg("failed to create clinic")

		return "", fmt.Errorf("failed to create clinic: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllClinic)
		shared.InvalidateCaches(c, s.cache, cacheCountClinic)
	}()

	return clinic.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetClinicsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllClinic, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for clinics")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count clinics")

		return res, fmt.Errorf("failed to count clinics: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get clinics")

		return res, fmt.Errorf("failed to get clinics: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save clinics to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountClinic, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for clinic count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count clinics")

		return res, fmt.Errorf("failed to count clinics: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save clinic count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ClinicResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetClinic, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for clinic")

		return res, nil
	}

	clinic, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get clinic")

		return res, fmt.Errorf("failed to get clinic: %w", err)
	}

	if clinic.ID == constant.Empty {
		return res, failure.NotFound("clinic not found") // nolint:wrapcheck
	}

	res.FromModel(clinic)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save clinic to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateClinicRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateClinicRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if clinic exists")

		return fmt.Errorf("failed to check if clinic exists: %w", err)
	}

	if !exist {
		log.Error().Msg("clinic not found")

		return failure.NotFound("clinic not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update clinic")

		return fmt.Errorf("failed to update clinic: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetClinic, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete clinic from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllClinic)
		shared.InvalidateCaches(c, s.cache, cacheCountClinic)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	clinic, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get clinic")

		return fmt.Errorf("failed to get clinic: %w", err)
	}

	if clinic.ID == constant.Empty {
		log.Error().Msg("clinic not found")

		return failure.NotFound("clinic not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete clinic")

		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetClinic, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete clinic from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllClinic)
		shared.InvalidateCaches(c, s.cache, cacheCountClinic)

		if clinic.ImageURL != nil && *clinic.ImageURL != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName

			objectName := s.s3.GetObjectNameFromURL(bucketName, *clinic.ImageURL)
			if objectName == constant.Empty {
				log.Warn().Str("url", *clinic.ImageURL).Msg("failed to extract object name from URL")

				return
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete clinic image from S3")
			}
		}
	}()

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if clinic exists")

		return res, fmt.Errorf("failed to check if clinic exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("clinic not found") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, req.Image.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	updatedFields := map[string]any{
		model.FieldImageURL:      url,
		constant.FieldModifiedBy: actor,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to persist clinic image URL")

		return res, fmt.Errorf("failed to persist clinic image URL: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetClinic, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete clinic from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllClinic)
	}()

	res.FromModel(url, req.Image.Filename)

	return res, nil
}
