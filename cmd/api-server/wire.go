//go:build wireinject
// +build wireinject

package main

import (
	"Marche/config"
	"Marche/dao"
	"Marche/dao/cache"
	"Marche/handler"
	"Marche/pkg/client"
	"Marche/pkg/database"
	"Marche/pkg/rocketmq"
	"Marche/pkg/server"
	"Marche/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,
		server.NewGinEngine,
		cache.ProviderSet,

		wire.Struct(new(handler.Cart), "*"),
		wire.Struct(new(handler.Checkout), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.Stock), "*"),
		wire.Struct(new(handler.Return), "*"),
		wire.Struct(new(handler.Pay), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
