package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"klinik/config"
	"klinik/infras/otel/mocks"
	appointmentMocks "klinik/internal/domains/appointment/mocks"
	examMocks "klinik/internal/domains/exam/mocks"
	"klinik/internal/domains/exam/model"
	"klinik/internal/domains/exam/model/dto"
	"klinik/internal/domains/exam/service"
	serviceMocks "klinik/internal/domains/service/mocks"
	cacheMocks "klinik/shared/cache/mocks"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
)

type examServiceMocks struct {
	record      *examMocks.MockRecord
	item        *examMocks.MockItem
	invoice     *examMocks.MockInvoice
	appointment *appointmentMocks.MockAppointment
	service     *serviceMocks.MockService
	cache       *cacheMocks.MockRedisCache
}

func newService(ctrl *gomock.Controller) (service.Exam, examServiceMocks) {
	m := examServiceMocks{
		record:      examMocks.NewMockRecord(ctrl),
		item:        examMocks.NewMockItem(ctrl),
		invoice:     examMocks.NewMockInvoice(ctrl),
		appointment: appointmentMocks.NewMockAppointment(ctrl),
		service:     serviceMocks.NewMockService(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.record, m.item, m.invoice, m.appointment, m.service, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func TestExamService_CreateRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateExamRecordRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateExamRecordRequest{
				AppointmentID: "test-appointment-id",
				Diagnosis:     "seasonal flu",
				FollowUpDate:  "2025-12-15",
			},
			setupMock: func() {
				m.appointment.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.record.EXPECT().
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
			name: "appointment does not exist",
			req: dto.CreateExamRecordRequest{
				AppointmentID: "nonexistent-appointment-id",
				Diagnosis:     "seasonal flu",
			},
			setupMock: func() {
				m.appointment.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "invalid follow up date",
			req: dto.CreateExamRecordRequest{
				AppointmentID: "test-appointment-id",
				Diagnosis:     "seasonal flu",
				FollowUpDate:  "15/12/2025",
			},
			setupMock: func() {
				m.appointment.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req: dto.CreateExamRecordRequest{
				AppointmentID: "test-appointment-id",
				Diagnosis:     "seasonal flu",
			},
			setupMock: func() {
				m.appointment.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.record.EXPECT().
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
			id, err := svc.CreateRecord(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestExamService_DeleteRecord(t *testing.T) {
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
			name: "deletes items and invoices with the record",
			id:   "test-record-id",
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.item.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.invoice.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.record.EXPECT().
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
			name: "record not found",
			id:   "nonexistent-id",
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "item deletion error aborts",
			id:   "test-record-id",
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.item.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.DeleteRecord(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExamService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateExamItemRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateExamItemRequest{
				ServiceID: "test-service-id",
				Quantity:  2,
			},
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.service.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.item.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
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
			name: "record not found",
			req: dto.CreateExamItemRequest{
				ServiceID: "test-service-id",
				Quantity:  2,
			},
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "service does not exist",
			req: dto.CreateExamItemRequest{
				ServiceID: "nonexistent-service-id",
				Quantity:  2,
			},
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.service.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			id, err := svc.CreateItem(ctx, tt.req, "test-record-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestExamService_UpdateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	item := model.ExamItem{
		ID:           "test-item-id",
		ExamRecordID: "test-record-id",
		ServiceID:    "test-service-id",
		Quantity:     1,
	}

	tests := []struct {
		name      string
		req       dto.UpdateExamItemRequest
		recordID  string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req: dto.UpdateExamItemRequest{
				Quantity: 3,
			},
			recordID: "test-record-id",
			setupMock: func() {
				m.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, nil)

				m.item.EXPECT().
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
			name:      "empty update request",
			req:       dto.UpdateExamItemRequest{},
			recordID:  "test-record-id",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "item belongs to another record",
			req: dto.UpdateExamItemRequest{
				Quantity: 3,
			},
			recordID: "another-record-id",
			setupMock: func() {
				m.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, nil)
			},
			wantErr: true,
		},
		{
			name: "replacement service does not exist",
			req: dto.UpdateExamItemRequest{
				ServiceID: "nonexistent-service-id",
			},
			recordID: "test-record-id",
			setupMock: func() {
				m.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, nil)

				m.service.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			err := svc.UpdateItem(ctx, tt.req, tt.recordID, "test-item-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExamService_GetItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	items := []model.ExamItem{
		{
			ID:           "test-item-id",
			ExamRecordID: "test-record-id",
			ServiceID:    "test-service-id",
			Quantity:     2,
		},
	}

	tests := []struct {
		name      string
		recordID  string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name:     "successful get",
			recordID: "test-record-id",
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.item.EXPECT().
					GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).
					Return(items, nil)
			},
			wantErr: false,
			wantLen: 1,
		},
		{
			name:     "record not found",
			recordID: "nonexistent-id",
			setupMock: func() {
				m.record.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetItems(context.Background(), tt.recordID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Items, tt.wantLen)
			}
		})
	}
}

func TestExamService_UpdateInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	paidAt := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

	unpaid := model.Invoice{
		ID:           "test-invoice-id",
		ExamRecordID: "test-record-id",
		Amount:       150000,
		Method:       "cash",
		Status:       model.InvoiceStatusUnpaid,
	}
	paid := unpaid
	paid.Status = model.InvoiceStatusPaid
	paid.PaidAt = &paidAt

	tests := []struct {
		name      string
		req       dto.UpdateInvoiceRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "settling stamps paid_at",
			req: dto.UpdateInvoiceRequest{
				Status: model.InvoiceStatusPaid,
			},
			setupMock: func() {
				m.invoice.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unpaid, nil)

				m.invoice.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotNil(t, fields[model.FieldInvoicePaidAt])

						return nil
					})

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
			name: "reopening clears paid_at",
			req: dto.UpdateInvoiceRequest{
				Status: model.InvoiceStatusUnpaid,
			},
			setupMock: func() {
				m.invoice.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(paid, nil)

				m.invoice.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						value, ok := fields[model.FieldInvoicePaidAt]
						assert.True(t, ok)
						assert.Nil(t, value)

						return nil
					})

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
			name:      "empty update request",
			req:       dto.UpdateInvoiceRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "invoice not found",
			req: dto.UpdateInvoiceRequest{
				Method: "card",
			},
			setupMock: func() {
				m.invoice.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Invoice{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyAccountID, "test-account-id")
			err := svc.UpdateInvoice(ctx, tt.req, "test-invoice-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExamService_DeleteInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	invoice := model.Invoice{
		ID:           "test-invoice-id",
		ExamRecordID: "test-record-id",
		Amount:       150000,
		Method:       "cash",
		Status:       model.InvoiceStatusUnpaid,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "test-invoice-id",
			setupMock: func() {
				m.invoice.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(invoice, nil)

				m.invoice.EXPECT().
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
			name: "invoice not found",
			id:   "nonexistent-id",
			setupMock: func() {
				m.invoice.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Invoice{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.DeleteInvoice(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
