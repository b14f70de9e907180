package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"connectly/api/middleware"
	"connectly/api/routes"
	"connectly/config"
	"connectly/db"
	"connectly/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	// Redis и RabbitMQ не обязательны для старта: без Redis лента
	// считается без кеша, без RabbitMQ пуши идут напрямую в WebSocket
	if err := services.InitRedis(); err != nil {
		log.Printf("WARN: Redis unavailable, feed cache disabled: %v", err)
	}
	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("WARN: RabbitMQ unavailable, direct WebSocket push only: %v", err)
	} else {
		if err := services.StartPostEventConsumer(context.Background(), "post_events_ws"); err != nil {
			log.Printf("WARN: failed to start post event consumer: %v", err)
		}
	}

	router := gin.Default()
	router.Use(middleware.PrometheusMiddleware())

	routes.PublicApi(router)

	addr := ":8080"
	if config.AppConfig.Backend.Port != 0 {
		addr = fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
