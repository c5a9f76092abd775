package handler

import (
	"github.com/gorilla/mux"

	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/middleware"
)

// NewRouter wires the handlers behind the request ID, logging and recovery middleware
func NewRouter(pages *PageHandler, exports *ExportHandler, log logger.Logger) *mux.Router {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))

	pages.RegisterRoutes(router)
	exports.RegisterRoutes(router)

	return router
}
