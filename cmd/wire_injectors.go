//go:build wireinject

package cmd

import (
	"github.com/google/wire"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender"
	"github.com/AlessandroMarelli-pro/muzo-sub001/server/nativeapi"
)

var allProviders = wire.NewSet(
	recommender.Set,
	nativeapi.New,
)

// CreateNativeAPIRouter assembles the full recommendation stack on top
// of an externally provided DataStore.
func CreateNativeAPIRouter(ds model.DataStore) (*nativeapi.Router, error) {
	panic(wire.Build(
		allProviders,
	))
}
