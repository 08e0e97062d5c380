package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"klinik/config"
	"klinik/infras/otel/mocks"
	accountMocks "klinik/internal/domains/account/mocks"
	notificationMocks "klinik/internal/domains/notification/mocks"
	"klinik/internal/domains/notification/model"
	"klinik/internal/domains/notification/model/dto"
	"klinik/internal/domains/notification/service"
	"klinik/shared/constant"
	gDto "klinik/shared/dto"
	"klinik/shared/failure"
)

func TestNotificationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	mockAccountRepo := accountMocks.NewMockAccount(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockAccountRepo, cfg, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateNotificationRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateNotificationRequest{
				AccountID: "test-account-id",
				Title:     "Appointment booked",
				Body:      "Your appointment has been booked.",
			},
			setupMock: func() {
				mockAccountRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "account does not exist",
			req: dto.CreateNotificationRequest{
				AccountID: "nonexistent-account-id",
				Title:     "Appointment booked",
				Body:      "Your appointment has been booked.",
			},
			setupMock: func() {
				mockAccountRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req: dto.CreateNotificationRequest{
				AccountID: "test-account-id",
				Title:     "Appointment booked",
				Body:      "Your appointment has been booked.",
			},
			setupMock: func() {
				mockAccountRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

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
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestNotificationService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	mockAccountRepo := accountMocks.NewMockAccount(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockAccountRepo, cfg, mockOtel)

	notifications := []model.Notification{
		{
			ID:        "test-notification-id",
			AccountID: "test-account-id",
			Title:     "Appointment booked",
			Body:      "Your appointment has been booked.",
		},
	}

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(notifications, nil)

	result, err := svc.GetMine(context.Background(), "test-account-id", gDto.QueryParams{Limit: 10, Page: 1})

	assert.NoError(t, err)
	assert.Len(t, result.Notifications, 1)
	assert.Equal(t, 1, result.TotalData)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	mockAccountRepo := accountMocks.NewMockAccount(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockAccountRepo, cfg, mockOtel)

	notification := model.Notification{
		ID:        "test-notification-id",
		AccountID: "test-account-id",
		Title:     "Appointment booked",
	}

	tests := []struct {
		name      string
		accountID string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "owner marks as read",
			accountID: "test-account-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(notification, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, fields[model.FieldRead])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:      "notification not found",
			accountID: "test-account-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Notification{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:      "another account's notification",
			accountID: "other-account-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(notification, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.MarkRead(context.Background(), "test-notification-id", tt.accountID)

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

func TestNotificationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	mockAccountRepo := accountMocks.NewMockAccount(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockAccountRepo, cfg, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "notification not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "test-notification-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
