//go:build wireinject
// +build wireinject

package di

import (
	"klinik/config"
	"klinik/infras/jwt"
	"klinik/infras/kafka"
	"klinik/infras/otel"
	"klinik/infras/postgres"
	"klinik/infras/redis"
	"klinik/infras/s3"
	"klinik/permissions"
	"klinik/shared/cache"
	"klinik/transport/http"
	"klinik/transport/http/middleware"
	"klinik/transport/http/router"

	"github.com/google/wire"

	accountRepository "klinik/internal/domains/account/repository"
	accountService "klinik/internal/domains/account/service"
	appointmentRepository "klinik/internal/domains/appointment/repository"
	appointmentService "klinik/internal/domains/appointment/service"
	authService "klinik/internal/domains/auth/service"
	clinicRepository "klinik/internal/domains/clinic/repository"
	clinicService "klinik/internal/domains/clinic/service"
	doctorRepository "klinik/internal/domains/doctor/repository"
	doctorService "klinik/internal/domains/doctor/service"
	examRepository "klinik/internal/domains/exam/repository"
	examService "klinik/internal/domains/exam/service"
	notificationRepository "klinik/internal/domains/notification/repository"
	notificationService "klinik/internal/domains/notification/service"
	patientRepository "klinik/internal/domains/patient/repository"
	patientService "klinik/internal/domains/patient/service"
	reviewRepository "klinik/internal/domains/review/repository"
	reviewService "klinik/internal/domains/review/service"
	serviceRepository "klinik/internal/domains/service/repository"
	serviceService "klinik/internal/domains/service/service"
	shiftRepository "klinik/internal/domains/shift/repository"
	shiftService "klinik/internal/domains/shift/service"

	accountHandler "klinik/internal/handlers/account"
	appointmentHandler "klinik/internal/handlers/appointment"
	authHandler "klinik/internal/handlers/auth"
	clinicHandler "klinik/internal/handlers/clinic"
	doctorHandler "klinik/internal/handlers/doctor"
	examHandler "klinik/internal/handlers/exam"
	notificationHandler "klinik/internal/handlers/notification"
	patientHandler "klinik/internal/handlers/patient"
	permissionHandler "klinik/internal/handlers/permission"
	reviewHandler "klinik/internal/handlers/review"
	serviceHandler "klinik/internal/handlers/service"
	shiftHandler "klinik/internal/handlers/shift"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var accountDomain = wire.NewSet(
	accountRepository.New,
	accountService.New,
	authService.New,
)

var patientDomain = wire.NewSet(
	patientRepository.New,
	patientService.New,
)

var clinicDomain = wire.NewSet(
	clinicRepository.New,
	clinicService.New,
)

var doctorDomain = wire.NewSet(
	doctorRepository.New,
	doctorService.New,
)

var shiftDomain = wire.NewSet(
	shiftRepository.New,
	shiftService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var examDomain = wire.NewSet(
	examRepository.NewRecord,
	examRepository.NewItem,
	examRepository.NewInvoice,
	examService.New,
)

var serviceDomain = wire.NewSet(
	serviceRepository.New,
	serviceRepository.NewType,
	serviceService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var domains = wire.NewSet(
	accountDomain,
	patientDomain,
	clinicDomain,
	doctorDomain,
	shiftDomain,
	appointmentDomain,
	examDomain,
	serviceDomain,
	reviewDomain,
	notificationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	accountHandler.New,
	patientHandler.New,
	clinicHandler.New,
	doctorHandler.New,
	shiftHandler.New,
	appointmentHandler.New,
	examHandler.New,
	serviceHandler.New,
	reviewHandler.New,
	notificationHandler.New,
	permissionHandler.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		router.New,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeConsumer() *notificationService.Consumer {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		notificationRepository.New,
		notificationService.NewConsumer,
	)

	return &notificationService.Consumer{}
}
