package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abhishekkjainn/smartslot-api/internal/adapters/in/http/handlers"
	"github.com/Abhishekkjainn/smartslot-api/internal/adapters/in/http/middleware"
	usecase "github.com/Abhishekkjainn/smartslot-api/internal/application/usecase"
	"github.com/Abhishekkjainn/smartslot-api/internal/infra/monitoring"
)

// RouterDeps collects what main wires into the HTTP layer.
type RouterDeps struct {
	VenueUC *usecase.VenueUsecase

	// Metrics is optional; nil disables /metrics and request instrumentation.
	Metrics *monitoring.Metrics

	CORSAllowedOrigins []string
}

// NewRouter sets up HTTP routing for the venue endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS outermost so panics recovered below still carry CORS headers.
	r.Use(middleware.CORS(deps.CORSAllowedOrigins))
	r.Use(middleware.Recover)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	// Health check (always on)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", handlers.Docs)

	if deps.VenueUC != nil {
		h := handlers.NewVenueHandler(deps.VenueUC)
		r.Post("/register-venue/{name}/{totalspots}/{smartspots}/{venueid}", h.Register)
		r.Get("/fetchslots/venueid={venueid}", h.FetchSlots)
		r.Post("/updateslot/venueid={venueid}/slotid={slotid}", h.UpdateSlot)
		r.Get("/blockslot/venueid={venueid}/slotid={slotid}", h.BlockSlot)
	}

	return r
}
