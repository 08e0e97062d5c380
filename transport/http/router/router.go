package router

import (
	"klinik/internal/handlers/account"
	"klinik/internal/handlers/appointment"
	"klinik/internal/handlers/auth"
	"klinik/internal/handlers/clinic"
	"klinik/internal/handlers/doctor"
	"klinik/internal/handlers/exam"
	"klinik/internal/handlers/notification"
	"klinik/internal/handlers/patient"
	"klinik/internal/handlers/permission"
	"klinik/internal/handlers/review"
	"klinik/internal/handlers/service"
	"klinik/internal/handlers/shift"
	"klinik/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Account      account.Handler
	Patient      patient.Handler
	Clinic       clinic.Handler
	Doctor       doctor.Handler
	Shift        shift.Handler
	Appointment  appointment.Handler
	Exam         exam.Handler
	Service      service.Handler
	Review       review.Handler
	Notification notification.Handler
	Permission   permission.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AppMiddleware.Tracing)
		routerGroup.Use(r.AppMiddleware.RateLimit)
		routerGroup.Use(r.AuthMiddleware.APIKey)
		routerGroup.Use(r.AuthMiddleware.Auth)
		routerGroup.Use(r.AuthMiddleware.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Account.Router(routerGroup)
		r.DomainHandlers.Patient.Router(routerGroup)
		r.DomainHandlers.Clinic.Router(routerGroup)
		r.DomainHandlers.Doctor.Router(routerGroup)
		r.DomainHandlers.Shift.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Exam.Router(routerGroup)
		r.DomainHandlers.Service.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Permission.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authMiddleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
	}
}
