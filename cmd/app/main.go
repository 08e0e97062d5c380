package main

import (
	"context"

	"klinik/config"
	"klinik/di"
	"klinik/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Kafka.Enable {
		consumer := di.InitializeConsumer()

		go consumer.Start(context.Background())
	}

	http := di.InitializeService()
	http.Serve()
}
