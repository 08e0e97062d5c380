package permission

import (
	"net/http"

	"klinik/infras/otel"
	"klinik/permissions"
	"klinik/shared/constant"
	"klinik/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/permissions", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPermissions)
	})
}

// GetPermissions exposes the endpoint permission table.
// @Summary Get endpoint permissions
// @Description Retrieve the role permissions configured per endpoint.
// @Tags Permission
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[permissions.PermissionData] "Endpoint permissions"
// @Failure 500 {object} response.Error
// @Router /v1/permissions [get]
// @Security BearerAuth
func (handler *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPermissions")
	defer scope.End()

	scope.AddEvent("Permissions retrieved successfully")

	response.WithJSON(w, http.StatusOK, permissions.Get())
}
