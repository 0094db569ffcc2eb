package main

import (
	"flag"
	"log"

	"github.com/minicommerce/order-service/internal/config"
	"github.com/minicommerce/order-service/internal/consumer"
	"github.com/minicommerce/order-service/internal/messaging"
	"github.com/minicommerce/order-service/internal/publisher"
)

const monitorQueue = "orders.created.monitor"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to RabbitMQ
	rabbitMQ, err := messaging.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	messages, err := rabbitMQ.Subscribe(publisher.OrdersExchange, publisher.OrderCreatedKey, monitorQueue)
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	log.Println("🚀 Event monitor started")

	monitor := consumer.NewEventMonitor()
	monitor.ProcessOrderCreated(messages)
}
