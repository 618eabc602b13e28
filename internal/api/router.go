package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"drivesync-backend/internal/security"
	"drivesync-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth           service.AuthService
	Users          service.UserService
	Cars           service.CarService
	Rentals        service.RentalService
	ChangeRequests service.ChangeRequestService
	Tokens         security.TokenManager
}

// NewRouter builds the HTTP API. Routes under /api/v1 except the auth
// endpoints require a valid access token; the admin subtree additionally
// requires the admin role.
func NewRouter(s Services) http.Handler {
	auth := &authHandler{auth: s.Auth}
	users := &userHandler{users: s.Users}
	cars := &carHandler{cars: s.Cars}
	rentals := &rentalHandler{rentals: s.Rentals, changeRequests: s.ChangeRequests}
	admin := &adminHandler{changeRequests: s.ChangeRequests}

	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/auth/register", auth.register).Methods(http.MethodPost)
	v1.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost)
	v1.HandleFunc("/auth/refresh", auth.refresh).Methods(http.MethodPost)

	authed := v1.NewRoute().Subrouter()
	authed.Use(Authenticate(s.Tokens))

	authed.HandleFunc("/profile", users.getProfile).Methods(http.MethodGet)
	authed.HandleFunc("/profile", users.updateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/cars", cars.list).Methods(http.MethodGet)
	authed.HandleFunc("/cars/{id}", cars.get).Methods(http.MethodGet)

	authed.HandleFunc("/rentals", rentals.create).Methods(http.MethodPost)
	authed.HandleFunc("/rentals", rentals.list).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id}", rentals.get).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id}/timing", rentals.editTiming).Methods(http.MethodPut)
	authed.HandleFunc("/rentals/{id}/delivery", rentals.editDelivery).Methods(http.MethodPut)
	authed.HandleFunc("/rentals/{id}/complete", rentals.complete).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id}/cancel", rentals.cancel).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id}/payments", rentals.listPayments).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id}/change-requests", rentals.requestCarChange).Methods(http.MethodPost)

	adminRoutes := authed.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(RequireAdmin)
	adminRoutes.HandleFunc("/cars/{id}/status", cars.setStatus).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/change-requests", admin.listPendingRequests).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/change-requests/{id}/approve", admin.approve).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/change-requests/{id}/reject", admin.reject).Methods(http.MethodPost)

	return r
}
