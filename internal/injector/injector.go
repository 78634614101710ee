//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"io"

	"github.com/google/wire"
	"github.com/zeusync/floatbench/internal/app"
	"github.com/zeusync/floatbench/internal/config"
	"github.com/zeusync/floatbench/internal/core/bench"
)

func InitializeApp(cfg *config.Config, out io.Writer) (*app.App, func(), error) {
	wire.Build(
		app.ProvideLogger,
		app.ProvideOptions,
		app.ProvideGenerator,
		app.ProvidePaths,
		bench.NewHarness,
		app.New,
	)
	return nil, nil, nil
}
