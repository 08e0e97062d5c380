package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"klinik/config"
	kafkaMocks "klinik/infras/kafka/mocks"
	"klinik/infras/otel/mocks"
	appointmentMocks "klinik/internal/domains/appointment/mocks"
	"klinik/internal/domains/appointment/model"
	"klinik/internal/domains/appointment/model/dto"
	"klinik/internal/domains/appointment/service"
	clinicMocks "klinik/internal/domains/clinic/mocks"
	examMocks "klinik/internal/domains/exam/mocks"
	examModel "klinik/internal/domains/exam/model"
	patientMocks "klinik/internal/domains/patient/mocks"
	shiftMocks "klinik/internal/domains/shift/mocks"
	shiftModel "klinik/internal/domains/shift/model"
	cacheMocks "klinik/shared/cache/mocks"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"
)

type serviceMocks struct {
	repo    *appointmentMocks.MockAppointment
	shift   *shiftMocks.MockShift
	patient *patientMocks.MockPatient
	clinic  *clinicMocks.MockClinic
	record  *examMocks.MockRecord
	item    *examMocks.MockItem
	invoice *examMocks.MockInvoice
	cache   *cacheMocks.MockRedisCache
}

func newService(ctrl *gomock.Controller) (service.Appointment, serviceMocks) {
	m := serviceMocks{
		repo:    appointmentMocks.NewMockAppointment(ctrl),
		shift:   shiftMocks.NewMockShift(ctrl),
		patient: patientMocks.NewMockPatient(ctrl),
		clinic:  clinicMocks.NewMockClinic(ctrl),
		record:  examMocks.NewMockRecord(ctrl),
		item:    examMocks.NewMockItem(ctrl),
		invoice: examMocks.NewMockInvoice(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(
		m.repo,
		m.shift,
		m.patient,
		m.clinic,
		m.record,
		m.item,
		m.invoice,
		kafkaMocks.NewMockClient(ctrl),
		cfg,
		m.cache,
		mocks.NewOtel(),
	)

	return svc, m
}

func TestAppointmentService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	examDate := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	shift := shiftModel.Shift{
		ID:       "test-shift-id",
		ClinicID: "test-clinic-id",
		ExamDate: examDate,
	}

	tests := []struct {
		name      string
		req       dto.CreateAppointmentRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantMsg   []string
	}{
		{
			name: "successful creation",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "2025-12-01",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "shift not found",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "nonexistent-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "2025-12-01",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shiftModel.Shift{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unparseable booking date",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "not-a-date",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking date does not match shift date",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "2025-12-02",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  []string{"shiftDate=2025-12-01", "appointmentDate=2025-12-02"},
		},
		{
			name: "patient does not exist",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "nonexistent-patient-id",
				BookingDate: "2025-12-01",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "shift already has an active appointment",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "2025-12-01",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "2025-12-01",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req: dto.CreateAppointmentRequest{
				ShiftID:     "test-shift-id",
				PatientID:   "test-patient-id",
				BookingDate: "2025-12-01",
			},
			setupMock: func() {
				m.shift.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(shift, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
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
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
				for _, msg := range tt.wantMsg {
					assert.Contains(t, err.Error(), msg)
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, tt.req.ShiftID, result.ShiftID)
			}
		})
	}
}

func TestAppointmentService_CreateFlexible(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateFlexibleAppointmentRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "clinic does not exist",
			req: dto.CreateFlexibleAppointmentRequest{
				ClinicID:  "nonexistent-clinic-id",
				PatientID: "test-patient-id",
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				m.clinic.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "patient does not exist",
			req: dto.CreateFlexibleAppointmentRequest{
				ClinicID:  "test-clinic-id",
				PatientID: "nonexistent-patient-id",
				ExamDate:  "2025-12-01",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				m.clinic.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid exam date format",
			req: dto.CreateFlexibleAppointmentRequest{
				ClinicID:  "test-clinic-id",
				PatientID: "test-patient-id",
				ExamDate:  "01/12/2025",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				m.clinic.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid start time format",
			req: dto.CreateFlexibleAppointmentRequest{
				ClinicID:  "test-clinic-id",
				PatientID: "test-patient-id",
				ExamDate:  "2025-12-01",
				StartTime: "9 o'clock",
				EndTime:   "10:00",
			},
			setupMock: func() {
				m.clinic.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.patient.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			_, err := svc.CreateFlexible(ctx, tt.req)

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAppointmentService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	examDate := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	appointments := []model.Appointment{
		{
			ID:          "test-appointment-id",
			ShiftID:     "test-shift-id",
			PatientID:   "test-patient-id",
			BookingDate: examDate,
			Status:      model.StatusBooked,
			ExamDate:    examDate,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  "test-account",
				ModifiedBy: "test-account",
			},
		},
	}

	followUp := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	records := []examModel.ExamRecord{
		{
			ID:            "test-record-id",
			AppointmentID: "test-appointment-id",
			Diagnosis:     "seasonal flu",
			FollowUpDate:  &followUp,
		},
	}
	items := []examModel.ExamItem{
		{
			ID:           "test-item-id",
			ExamRecordID: "test-record-id",
			ServiceID:    "test-service-id",
			Quantity:     2,
		},
	}
	invoices := []examModel.Invoice{
		{
			ID:           "test-invoice-id",
			ExamRecordID: "test-record-id",
			Amount:       150000,
			Method:       "cash",
			Status:       examModel.InvoiceStatusUnpaid,
		},
	}

	params := gDto.QueryParams{Limit: 10, Page: 1}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		check     func(t *testing.T, res dto.GetAppointmentsResponse)
	}{
		{
			name: "cache hit",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, appointments hydrated with exam records",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(appointments, nil)

				m.record.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(records, nil)

				m.item.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(items, nil)

				m.invoice.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(invoices, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			check: func(t *testing.T, res dto.GetAppointmentsResponse) {
				assert.Equal(t, 1, res.TotalData)
				assert.Equal(t, 1, res.TotalPage)
				assert.Len(t, res.Appointments, 1)
				assert.Len(t, res.Appointments[0].ExamRecords, 1)
				assert.Equal(t, "seasonal flu", res.Appointments[0].ExamRecords[0].Diagnosis)
				assert.Len(t, res.Appointments[0].ExamRecords[0].Items, 1)
				assert.Len(t, res.Appointments[0].ExamRecords[0].Invoices, 1)
			},
		},
		{
			name: "appointment without exam records keeps empty collection",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(appointments, nil)

				m.record.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]examModel.ExamRecord{}, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			check: func(t *testing.T, res dto.GetAppointmentsResponse) {
				assert.Len(t, res.Appointments, 1)
				assert.NotNil(t, res.Appointments[0].ExamRecords)
				assert.Empty(t, res.Appointments[0].ExamRecords)
			},
		},
		{
			name: "count error",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
		{
			name: "exam record fetch error",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(appointments, nil)

				m.record.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, result)
				}
			}
		})
	}
}

func TestAppointmentService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	appointment := model.Appointment{
		ID:          "test-appointment-id",
		ShiftID:     "test-shift-id",
		PatientID:   "test-patient-id",
		BookingDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Status:      model.StatusBooked,
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
			id:   "test-appointment-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "test-appointment-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(appointment, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "test-appointment-id",
		},
		{
			name: "appointment not found",
			id:   "nonexistent-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "test-appointment-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, errors.New("database error"))
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

func TestAppointmentService_GetPendingAssignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	rows := []model.PendingAssignmentRow{
		{
			AppointmentID: "test-appointment-id",
			ShiftID:       "test-shift-id",
			ClinicID:      "test-clinic-id",
			ExamDate:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			Status:        model.StatusPending,
			PatientID:     "test-patient-id",
			PatientName:   "Jane Roe",
			PatientPhone:  "081234567890",
		},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "successful get",
			setupMock: func() {
				m.repo.EXPECT().
					GetPendingAssignment(gomock.Any(), gomock.Any()).
					Return(rows, nil)
			},
			wantErr: false,
			wantLen: 1,
		},
		{
			name: "repository error",
			setupMock: func() {
				m.repo.EXPECT().
					GetPendingAssignment(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetPendingAssignment(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Appointments, tt.wantLen)
				assert.Equal(t, "Jane Roe", result.Appointments[0].PatientName)
			}
		})
	}
}

func TestAppointmentService_GetDoctorSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	rows := []model.ScheduleRow{
		{
			AppointmentID: "test-appointment-id",
			ShiftID:       "test-shift-id",
			ExamDate:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			Status:        model.StatusBooked,
			PatientID:     "test-patient-id",
			PatientName:   "Jane Roe",
		},
	}

	tests := []struct {
		name      string
		startDate string
		endDate   string
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "successful get with date range",
			startDate: "2025-12-01",
			endDate:   "2025-12-31",
			setupMock: func() {
				m.repo.EXPECT().
					GetDoctorSchedule(gomock.Any(), "test-doctor-id", gomock.Not(gomock.Nil()), gomock.Not(gomock.Nil())).
					Return(rows, nil)
			},
			wantErr: false,
		},
		{
			name: "successful get without bounds",
			setupMock: func() {
				m.repo.EXPECT().
					GetDoctorSchedule(gomock.Any(), "test-doctor-id", gomock.Nil(), gomock.Nil()).
					Return(rows, nil)
			},
			wantErr: false,
		},
		{
			name:      "invalid start date",
			startDate: "01/12/2025",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "invalid end date",
			startDate: "2025-12-01",
			endDate:   "not-a-date",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "repository error",
			setupMock: func() {
				m.repo.EXPECT().
					GetDoctorSchedule(gomock.Any(), "test-doctor-id", gomock.Nil(), gomock.Nil()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetDoctorSchedule(context.Background(), "test-doctor-id", tt.startDate, tt.endDate)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Schedule, 1)
			}
		})
	}
}

func TestAppointmentService_GetDoctorPatients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	rows := []model.PatientVisitRow{
		{
			PatientID:   "test-patient-id",
			PatientName: "Jane Roe",
			Phone:       "081234567890",
			VisitCount:  3,
			LastVisit:   time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful get",
			setupMock: func() {
				m.repo.EXPECT().
					GetDoctorPatients(gomock.Any(), "test-doctor-id").
					Return(rows, nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func() {
				m.repo.EXPECT().
					GetDoctorPatients(gomock.Any(), "test-doctor-id").
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetDoctorPatients(context.Background(), "test-doctor-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Patients, 1)
				assert.Equal(t, 3, result.Patients[0].VisitCount)
			}
		})
	}
}

func TestAppointmentService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	appointment := model.Appointment{
		ID:      "test-appointment-id",
		ShiftID: "test-shift-id",
		Status:  model.StatusPending,
	}

	tests := []struct {
		name      string
		req       dto.UpdateAppointmentRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req: dto.UpdateAppointmentRequest{
				Status: model.StatusConfirmed,
			},
			id: "test-appointment-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(appointment, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "empty update request",
			req:  dto.UpdateAppointmentRequest{},
			id:   "test-appointment-id",
			setupMock: func() {
				// No mock expectations as validation should fail early
			},
			wantErr: true,
		},
		{
			name: "appointment not found",
			req: dto.UpdateAppointmentRequest{
				Symptom: "updated symptom",
			},
			id: "nonexistent-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			req: dto.UpdateAppointmentRequest{
				Symptom: "updated symptom",
			},
			id: "test-appointment-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(appointment, nil)

				m.repo.EXPECT().
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
			err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "test-appointment-id",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "appointment not found",
			id:   "nonexistent-id",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			id:   "test-appointment-id",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
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
