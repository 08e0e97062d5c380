package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"klinik/config"
	"klinik/infras/otel/mocks"
	doctorMocks "klinik/internal/domains/doctor/mocks"
	shiftMocks "klinik/internal/domains/shift/mocks"
	"klinik/internal/domains/shift/model"
	"klinik/internal/domains/shift/model/dto"
	"klinik/internal/domains/shift/service"
	cacheMocks "klinik/shared/cache/mocks"
	"klinik/shared/constant"
	"klinik/shared/failure"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"
)

func TestShiftService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shiftMocks.NewMockShift(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel)

	doctorID := "test-doctor-id"

	tests := []struct {
		name      string
		req       dto.CreateShiftRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation without doctor",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "successful creation with doctor",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				DoctorID:  &doctorID,
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "doctor does not exist",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				DoctorID:  &doctorID,
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "start time not before end time",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "10:00",
				EndTime:   "09:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalid exam date format",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "01/12/2025",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "insert error",
			req: dto.CreateShiftRequest{
				ClinicID:  "test-clinic-id",
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			id, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestShiftService_GetOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shiftMocks.NewMockShift(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel)

	doctorID := "test-doctor-id"
	shifts := []model.Shift{
		{
			ID:        "test-shift-id",
			ClinicID:  "test-clinic-id",
			DoctorID:  &doctorID,
			ExamDate:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  "test-account",
				ModifiedBy: "test-account",
			},
		},
	}

	tests := []struct {
		name      string
		date      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "successful get",
			date: "2025-12-01",
			setupMock: func() {
				mockRepo.EXPECT().
					GetOpen(gomock.Any(), time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)).
					Return(shifts, nil)
			},
			wantErr: false,
			wantLen: 1,
		},
		{
			name:      "invalid date",
			date:      "01/12/2025",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "repository error",
			date: "2025-12-01",
			setupMock: func() {
				mockRepo.EXPECT().
					GetOpen(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetOpen(context.Background(), tt.date)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Shifts, tt.wantLen)
			}
		})
	}
}

func TestShiftService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shiftMocks.NewMockShift(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel)

	shift := model.Shift{
		ID:       "test-shift-id",
		ClinicID: "test-clinic-id",
		ExamDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "test-shift-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "test-shift-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "test-shift-id",
		},
		{
			name: "shift not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Shift{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}

func TestShiftService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shiftMocks.NewMockShift(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel)

	stored := model.Shift{
		ID:        "test-shift-id",
		ClinicID:  "test-clinic-id",
		ExamDate:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		req       dto.UpdateShiftRequest
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req: dto.UpdateShiftRequest{
				ExamDate:  "2025-12-02",
				StartTime: "10:00",
				EndTime:   "11:00",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "empty update request",
			req:  dto.UpdateShiftRequest{},
			id:   "test-shift-id",
			setupMock: func() {
				// No mock expectations as validation should fail early
			},
			wantErr: true,
		},
		{
			name: "shift not found",
			req: dto.UpdateShiftRequest{
				Note: "updated note",
			},
			id: "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Shift{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid exam date",
			req: dto.UpdateShiftRequest{
				ExamDate: "not-a-date",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name: "window collapses",
			req: dto.UpdateShiftRequest{
				StartTime: "11:00",
				EndTime:   "10:00",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "start time alone crosses stored end time",
			req: dto.UpdateShiftRequest{
				StartTime: "11:00",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end time alone crosses stored start time",
			req: dto.UpdateShiftRequest{
				EndTime: "08:00",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "start time alone stays inside stored window",
			req: dto.UpdateShiftRequest{
				StartTime: "09:30",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShiftService_AssignDoctor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shiftMocks.NewMockShift(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel)

	stored := model.Shift{
		ID:        "test-shift-id",
		ClinicID:  "test-clinic-id",
		ExamDate:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		req       dto.AssignDoctorRequest
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful assignment",
			req: dto.AssignDoctorRequest{
				DoctorID: "test-doctor-id",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "shift not found",
			req: dto.AssignDoctorRequest{
				DoctorID: "test-doctor-id",
			},
			id: "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Shift{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "doctor does not exist",
			req: dto.AssignDoctorRequest{
				DoctorID: "nonexistent-doctor-id",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "window override collapses",
			req: dto.AssignDoctorRequest{
				DoctorID:  "test-doctor-id",
				StartTime: "11:00",
				EndTime:   "10:00",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end time alone crosses stored start time",
			req: dto.AssignDoctorRequest{
				DoctorID: "test-doctor-id",
				EndTime:  "08:00",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update error",
			req: dto.AssignDoctorRequest{
				DoctorID: "test-doctor-id",
			},
			id: "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			err := svc.AssignDoctor(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShiftService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shiftMocks.NewMockShift(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "shift not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			id:   "test-shift-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
