package handler

import (
	"net/http"
	"sync"

	"slotbook/config"
	"slotbook/di"
	"slotbook/shared/logger"
	transport "slotbook/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
