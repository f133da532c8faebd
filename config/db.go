package config

import (
	"log"
	"time"

	"tuiter/global"
	"tuiter/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func initDB(cfg *Config, res *global.Resources) {
	dsn := cfg.Database.Dsn
	if dsn == "" {
		log.Println("database dsn empty, reaction audit log disabled")
		return
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to initialize database, got error: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to configure database, got error: %v", err)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.ReactionEvent{}); err != nil {
		log.Fatalf("Failed to migrate reaction_events: %v", err)
	}

	res.Db = db
}
