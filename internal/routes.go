package internal

import (
	"net/http"
	"shoutd/internal/controllers"
	"shoutd/internal/providers"
	"shoutd/internal/structures"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(apiController *controllers.ApiController, healthController *controllers.HealthController, metrics providers.MetricsProviderInterface, conf *structures.Config) *http.ServeMux {
	views := providers.NewViewRouter()
	views.View("/stats", http.HandlerFunc(apiController.GetStats))
	views.View("/recent", http.HandlerFunc(apiController.GetRecent))

	// Inner mux: read views, each instrumented under its own path
	apiMux := http.NewServeMux()
	for _, route := range views.Views() {
		apiMux.Handle(route.Url, providers.InstrumentRoute(metrics, route.Url, route.Handler))
	}

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", apiMux)
	return mux
}
