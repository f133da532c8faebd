package config

import (
	"log"

	"tuiter/global"

	amqp "github.com/rabbitmq/amqp091-go"
)

func initRabbit(cfg *Config, res *global.Resources) {
	url := cfg.RabbitMQ.Url
	if url == "" {
		log.Println("rabbitmq url empty, skipping rabbit init")
		return
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}

	// declare queue
	qname := cfg.RabbitMQ.Queue
	if qname == "" {
		qname = "tuiter.reactions"
		cfg.RabbitMQ.Queue = qname
	}
	_, err = ch.QueueDeclare(qname, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("Failed to declare RabbitMQ queue: %v", err)
	}

	res.RabbitConn = conn
	res.RabbitChannel = ch
	log.Println("RabbitMQ initialized, queue:", qname)
}
