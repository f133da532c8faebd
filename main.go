package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tuiter/auth"
	"tuiter/config"
	"tuiter/controllers"
	"tuiter/daos"
	"tuiter/global"
	"tuiter/router"
	"tuiter/services"
)

func main() {
	cfg := config.InitConfig()
	res := config.Connect(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := daos.EnsureIndexes(ctx, res.MongoDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	tuitDao := daos.NewTuitDao(res.MongoDB)
	userDao := daos.NewUserDao(res.MongoDB)

	var tx daos.TxRunner = daos.NoTx{}
	if cfg.Mongo.Transactions {
		tx = daos.NewMongoTxRunner(res.MongoClient)
		log.Println("reaction toggles run in mongo transactions")
	}

	rank := services.NewRedisRank(res.RedisDB)
	publisher := initEvents(ctx, cfg, res)

	reactions := services.NewReactionService(services.ReactionDeps{
		Tuits:    tuitDao,
		Users:    userDao,
		Likes:    daos.NewLikeDao(res.MongoDB),
		Dislikes: daos.NewDislikeDao(res.MongoDB),
		Tx:       tx,
		Events:   publisher,
		Rank:     rank,
	})
	tuits := services.NewTuitService(tuitDao, rank)
	users := services.NewUserService(userDao)
	sessions := auth.NewRedisSessionStore(res.RedisDB, cfg.App.SessionTTL)

	r := router.SetupRouter(router.Options{
		CorsOrigin: cfg.App.CorsOrigin,
		JwtSecret:  cfg.App.JwtSecret,
		Sessions:   sessions,
	}, router.Controllers{
		Users:     controllers.NewUserController(users),
		Auth:      controllers.NewAuthController(users, sessions, cfg.App.JwtSecret, cfg.App.SessionTTL, cfg.App.SecureCookies),
		Tuits:     controllers.NewTuitController(tuits),
		Likes:     controllers.NewLikeController(reactions, tuits),
		Dislikes:  controllers.NewDislikeController(reactions),
		Bookmarks: controllers.NewBookmarkController(daos.NewBookmarkDao(res.MongoDB)),
		Follows:   controllers.NewFollowController(daos.NewFollowDao(res.MongoDB)),
		Messages:  controllers.NewMessageController(daos.NewMessageDao(res.MongoDB)),
	})

	srv := &http.Server{Addr: cfg.App.Port, Handler: r}
	go func() {
		log.Printf("%s listening on %s", cfg.App.Name, cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	res.Close(shutdownCtx)
}

// initEvents 选择反应事件的去向：有 MQ 和 MySQL 时异步投递并在同进程消费写审计表，
// 只有 MySQL 时同步写库，没有 MySQL 时丢弃
func initEvents(ctx context.Context, cfg *config.Config, res *global.Resources) services.Publisher {
	var recorder services.AuditRecorder
	if res.Db != nil {
		recorder = services.NewGormAuditRecorder(res.Db)
	}
	if res.RabbitChannel != nil && recorder != nil {
		consumerCh, err := res.RabbitConn.Channel()
		if err != nil {
			log.Fatalf("Failed to open RabbitMQ consumer channel: %v", err)
		}
		go func() {
			defer consumerCh.Close()
			if err := services.ConsumeReactionEvents(ctx, consumerCh, cfg.RabbitMQ.Queue, recorder); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("audit consumer stopped: %v", err)
			}
		}()
	}
	return services.NewEventPublisher(res.RabbitChannel, cfg.RabbitMQ.Queue, recorder)
}
