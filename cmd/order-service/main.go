package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/minicommerce/order-service/internal/cache"
	"github.com/minicommerce/order-service/internal/client"
	"github.com/minicommerce/order-service/internal/config"
	"github.com/minicommerce/order-service/internal/db"
	"github.com/minicommerce/order-service/internal/discovery"
	"github.com/minicommerce/order-service/internal/handlers"
	"github.com/minicommerce/order-service/internal/messaging"
	"github.com/minicommerce/order-service/internal/orchestrator"
	"github.com/minicommerce/order-service/internal/publisher"
)

const (
	serviceName = "order-service"
	serviceID   = "order-service-1"

	userServiceName    = "user-service"
	productServiceName = "product-service"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to PostgreSQL
	database, err := db.NewPostgresDB(cfg.Postgres.Host, cfg.Postgres.Port,
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Resolve lookup service endpoints, via Consul when enabled
	userURL := cfg.Services.UserURL
	productURL := cfg.Services.ProductURL

	if cfg.Consul.Enabled {
		consul, err := discovery.NewConsulClient(cfg.Consul.Host, cfg.Consul.Port)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Consul, using configured endpoints: %v", err)
		} else {
			userURL = consul.ResolveServiceURL(userServiceName, userURL)
			productURL = consul.ResolveServiceURL(productServiceName, productURL)

			if err := consul.Register(discovery.ServiceConfig{
				Name: serviceName,
				ID:   serviceID,
				Port: cfg.Server.Port,
				Tags: []string{"api", "orders"},
			}); err != nil {
				log.Fatalf("Failed to register service: %v", err)
			}

			// Deregister on shutdown
			go func() {
				sigChan := make(chan os.Signal, 1)
				signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
				<-sigChan
				log.Println("Shutting down...")
				consul.Deregister(serviceID)
				os.Exit(0)
			}()
		}
	}

	// Create lookup clients, cached behind Redis when enabled
	userClient := client.NewUserClient(userURL)
	productClient := client.NewProductClient(productURL)

	var users orchestrator.UserLookup = userClient
	var products orchestrator.ProductLookup = productClient

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password,
			cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()

		users = client.NewCachedUserClient(userClient, redisCache)
		products = client.NewCachedProductClient(productClient, redisCache)
	}

	// Create publisher over a per-call broker connection
	broker := messaging.NewBroker(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	orderPublisher := publisher.NewOrderPublisher(broker, serviceName)

	// Create repository, orchestrator and handler
	orderRepo := db.NewOrderRepository(database)
	orders := orchestrator.New(users, products, orderRepo, orderPublisher, cfg.Enrichment.Timeout)
	orderHandler := handlers.NewOrderHandler(orders, orderRepo)

	// Setup router
	router := gin.Default()

	router.GET("/health", orderHandler.HealthCheck)
	router.GET("/orders", orderHandler.ListOrders)
	router.GET("/orders/:id", orderHandler.GetOrder)
	router.POST("/orders", orderHandler.CreateOrder)

	// Start server
	log.Printf("🚀 Order Service starting on http://localhost:%d", cfg.Server.Port)
	log.Printf("   Enriching from %s and %s", userURL, productURL)
	router.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}
