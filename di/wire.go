//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"slotbook/transport/http"
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
