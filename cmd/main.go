package main

import (
	"context"
	"encoding/json"
	"log"

	"schooladmin.com/internal/api"
	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/config"
	"schooladmin.com/internal/constants"
	"schooladmin.com/internal/event"
	"schooladmin.com/internal/infra"
	"schooladmin.com/internal/logging"
	"schooladmin.com/internal/service"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	logger := logging.New(cfg.Log)

	// 2. 初始化基础设施
	// Postgres
	pg, err := infra.NewPostgresClient(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis
	rdb := infra.NewRedisClient(cfg.Redis)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// 3. 初始化 WebSocket 管理器
	wsManager := infra.NewWsManager()
	go wsManager.Start()

	// 4. 事件总线：业务层发布的通知事件经 Redis 频道广播，
	// 订阅协程再交给分发器推送到各 WebSocket 连接
	bus := event.NewBus(256)
	relay := func(ctx context.Context, ev event.Event) error {
		payload, err := json.Marshal(ev.Data)
		if err != nil {
			return err
		}
		return infra.PublishNotice(ctx, rdb, infra.NoticeMessage{
			Event:   ev.Type,
			Payload: payload,
		})
	}
	bus.Subscribe(constants.EventNoticePublished, relay)
	bus.Subscribe(constants.EventNoticeUpdated, relay)
	bus.Subscribe(constants.EventNoticeDeleted, relay)

	infra.StartNoticeSubscriber(rdb, context.Background())

	dispatcher := infra.NewNoticeDispatcher(wsManager)
	go dispatcher.Start()

	// 5. 认证组件
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL())

	enforcer, err := auth.NewEnforcer(pg.DB)
	if err != nil {
		log.Fatalf("Failed to init enforcer: %v", err)
	}

	// 6. 业务服务
	noticeSvc := service.NewNoticeService(pg.DB, bus, logger)

	// 7. HTTP 服务与路由
	app := api.NewServer(cfg)
	router := api.NewRouter(app, cfg, pg.DB, enforcer, tokens, noticeSvc, wsManager, logger)
	router.RegisterRoutes()

	logger.Infof("server listening on %s", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
