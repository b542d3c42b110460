//go:build wireinject
// +build wireinject

package main

import (
	"PicCloud/config"
	"PicCloud/dao"
	"PicCloud/dao/cache"
	"PicCloud/handler"
	"PicCloud/pkg/client"
	"PicCloud/pkg/database"
	"PicCloud/pkg/server"
	"PicCloud/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideOssConfig,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Picture), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
