package config

import (
	"context"
	"log"

	"tuiter/global"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func initMongo(cfg *Config, res *global.Resources) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.Uri).
		SetAppName(cfg.App.Name).
		SetTimeout(cfg.Mongo.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	res.MongoClient = client
	res.MongoDB = client.Database(cfg.Mongo.Database)
	log.Println("MongoDB connected, database:", cfg.Mongo.Database)
}
