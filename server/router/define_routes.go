package router

import (
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	config "codeberg.org/gramrelay/gramrelay/configs"
	"codeberg.org/gramrelay/gramrelay/core/metrics"
	"codeberg.org/gramrelay/gramrelay/server/middleware"
	"codeberg.org/gramrelay/gramrelay/server/routes"
)

// DefineRoutes sets up all the routes for the application using our custom Router.
//
// It returns a *Router without middleware.
func (router *Router) DefineRoutes() {
	// Relay routes
	router.HandleFunc("GET /proxy/image", middleware.CatchError(routes.RelayImage))

	// Operational routes
	router.HandleFunc("GET /health", middleware.CatchError(routes.HealthCheck))
	router.Handle("GET /metrics", metrics.Handler())

	// Index page routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	err := flightRecorder.Start()
	if err != nil {
		panic(err)
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
