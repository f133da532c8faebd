package config

import (
	"tuiter/global"
)

// Connect 按配置建立所有外部连接
func Connect(cfg *Config) *global.Resources {
	res := &global.Resources{}
	initMongo(cfg, res)
	initDB(cfg, res)
	initRedis(cfg, res)
	initRabbit(cfg, res)
	return res
}
