package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"klinik/config"
	"klinik/infras/otel"
	doctorModel "klinik/internal/domains/doctor/model"
	doctorRepo "klinik/internal/domains/doctor/repository"
	"klinik/internal/domains/shift/model"
	"klinik/internal/domains/shift/model/dto"
	"klinik/internal/domains/shift/repository"
	"klinik/shared"
	"klinik/shared/cache"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"
	"klinik/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetShift    = "shift:get"
	cacheGetAllShift = "shift:gets"
	cacheCountShift  = "shift:count"
)

type Shift interface {
	Create(ctx context.Context, req dto.CreateShiftRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetShiftsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ShiftResponse, error)
	GetOpen(ctx context.Context, date string) (dto.GetOpenShiftsResponse, error)
	Update(ctx context.Context, req dto.UpdateShiftRequest, id string) error
	AssignDoctor(ctx context.Context, req dto.AssignDoctorRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Shift
	doctorRepo doctorRepo.Doctor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Shift, doctorRepo doctorRepo.Doctor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Shift {
	return &serviceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateShiftRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	if req.DoctorID != nil {
		doctorExists, err := s.doctorRepo.Exist(ctx, shared.FilterByID(*req.DoctorID, doctorModel.FieldID, doctorModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if doctor exists")

			return "", fmt.Errorf("failed to check if doctor exists: %w", err)
		}

		if !doctorExists {
			return "", failure.BadRequestFromString("doctor does not exist") // nolint:wrapcheck
		}
	}

	shift, err := req.ToModel(actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse shift request")

		if errors.Is(err, dto.ErrShiftWindow) {
			return "", failure.BadRequestFromString(dto.ErrShiftWindow.Error()) // nolint:wrapcheck
		}

		return "", failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, shift); err != nil {
		log.Error().Err(err).Msg("failed to create shift")

		return "", fmt.Errorf("failed to create shift: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllShift)
		shared.InvalidateCaches(c, s.cache, cacheCountShift)
	}()

	return shift.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetShiftsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllShift, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shifts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count shifts")

		return res, fmt.Errorf("failed to count shifts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get shifts")

		return res, fmt.Errorf("failed to get shifts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shifts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountShift, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shift count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count shifts")

		return res, fmt.Errorf("failed to count shifts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shift count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ShiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetShift, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shift")

		return res, nil
	}

	shift, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get shift")

		return res, fmt.Errorf("failed to get shift: %w", err)
	}

	if shift.ID == constant.Empty {
		return res, failure.NotFound("shift not found") // nolint:wrapcheck
	}

	res.FromModel(shift)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shift to cache")
		}
	}()

	return res, nil
}

// GetOpen lists staffed shifts on a calendar date that are still bookable.
func (s *serviceImpl) GetOpen(ctx context.Context, date string) (res dto.GetOpenShiftsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOpen")
	defer scope.End()
	defer scope.TraceIfError(err)

	examDate, err := time.Parse(constant.CalendarFormat, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to parse open shift date")

		return res, failure.InvalidDate(date) // nolint:wrapcheck
	}

	models, err := s.repo.GetOpen(ctx, examDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to get open shifts")

		return res, fmt.Errorf("failed to get open shifts: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateShiftRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateShiftRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	shift, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get shift")

		return fmt.Errorf("failed to get shift: %w", err)
	}

	if shift.ID == constant.Empty {
		log.Error().Msg("shift not found")

		return failure.NotFound("shift not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateShiftRequest{Note: req.Note}, actor)

	if req.ExamDate != "" {
		examDate, err := time.Parse(constant.CalendarFormat, req.ExamDate)
		if err != nil {
			return failure.InvalidDate(req.ExamDate) // nolint:wrapcheck
		}

		updatedFields[model.FieldExamDate] = examDate
	}

	if err := s.applyWindow(req.StartTime, req.EndTime, shift, updatedFields); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update shift")

		return fmt.Errorf("failed to update shift: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// AssignDoctor staffs a pending shift with a doctor. Any appointment already
// booked on the shift is left untouched.
func (s *serviceImpl) AssignDoctor(ctx context.Context, req dto.AssignDoctorRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignDoctor")
	defer scope.End()

	actor, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	shift, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get shift")

		return fmt.Errorf("failed to get shift: %w", err)
	}

	if shift.ID == constant.Empty {
		log.Error().Msg("shift not found")

		return failure.NotFound("shift not found") // nolint:wrapcheck
	}

	doctorExists, err := s.doctorRepo.Exist(ctx, shared.FilterByID(req.DoctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor exists")

		return fmt.Errorf("failed to check if doctor exists: %w", err)
	}

	if !doctorExists {
		return failure.BadRequestFromString("doctor does not exist") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldDoctorID:      req.DoctorID,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if req.Note != "" {
		updatedFields[model.FieldNote] = req.Note
	}

	if err := s.applyWindow(req.StartTime, req.EndTime, shift, updatedFields); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to assign doctor to shift")

		return fmt.Errorf("failed to assign doctor to shift: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if shift exists")

		return fmt.Errorf("failed to check if shift exists: %w", err)
	}

	if !exist {
		log.Error().Msg("shift not found")

		return failure.NotFound("shift not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete shift")

		return fmt.Errorf("failed to delete shift: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// applyWindow merges the requested time bounds into updatedFields. A bound
// left out of the request keeps its stored value, so a lone override is still
// validated against the opposite side of the window.
func (s *serviceImpl) applyWindow(startTime, endTime string, current model.Shift, updatedFields map[string]any) error {
	start := clockOf(current.StartTime)
	end := clockOf(current.EndTime)

	if startTime != "" {
		parsed, err := time.Parse(constant.ClockFormat, startTime)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid time format: %v", err)) // nolint:wrapcheck
		}

		start = parsed
		updatedFields[model.FieldStartTime] = parsed
	}

	if endTime != "" {
		parsed, err := time.Parse(constant.ClockFormat, endTime)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid time format: %v", err)) // nolint:wrapcheck
		}

		end = parsed
		updatedFields[model.FieldEndTime] = parsed
	}

	if (startTime != "" || endTime != "") && !start.Before(end) {
		return failure.BadRequestFromString(dto.ErrShiftWindow.Error()) // nolint:wrapcheck
	}

	return nil
}

// clockOf keeps only the clock component so stored bounds compare on the same
// day as bounds parsed from ClockFormat.
func clockOf(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetShift, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete shift from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllShift)
		shared.InvalidateCaches(c, s.cache, cacheCountShift)
	}()
}
