package global

import (
	"context"
	"log"

	"github.com/go-redis/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Resources 保存进程内共享的连接句柄，由 main 创建一次后显式传给各层，不再使用包级单例
type Resources struct {
	MongoClient   *mongo.Client
	MongoDB       *mongo.Database
	Db            *gorm.DB // nil when the audit log is disabled
	RedisDB       *redis.Client
	RabbitConn    *amqp.Connection // nil when rabbitmq is disabled
	RabbitChannel *amqp.Channel
}

func (r *Resources) Close(ctx context.Context) {
	if r.RabbitChannel != nil {
		_ = r.RabbitChannel.Close()
	}
	if r.RabbitConn != nil {
		_ = r.RabbitConn.Close()
	}
	if r.RedisDB != nil {
		_ = r.RedisDB.Close()
	}
	if r.Db != nil {
		if sqlDB, err := r.Db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if r.MongoClient != nil {
		if err := r.MongoClient.Disconnect(ctx); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}
}
