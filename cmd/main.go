package main

import (
	"context"
	"net/http"

	"PokerPal/config"
	"PokerPal/internal/calculation"
	"PokerPal/internal/equity"
	"PokerPal/internal/evaluator"
	"PokerPal/internal/game/manager"
	"PokerPal/internal/storage"
	"PokerPal/internal/utils"
	"PokerPal/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.Load("config/config.yaml"); err != nil {
		utils.Log.Fatal("config load failed", "err", err)
	}
	utils.Init(config.C.Log.Level)

	//-------------------------------------------------------
	// 1. 初始化计算核心
	//-------------------------------------------------------
	sim := config.C.Simulation
	calc := equity.NewCalculator(evaluator.NewTreys(),
		equity.WithWorkers(sim.Workers),
		equity.WithBatchSize(sim.BatchSize),
		equity.WithDefaultSims(sim.DefaultSims),
		equity.WithMaxSims(sim.MaxSims),
		equity.WithLogger(utils.Log),
	)

	//-------------------------------------------------------
	// 2. 结果存储：配置了 Redis 就用 Redis，否则内存
	//-------------------------------------------------------
	repo := calculation.NewMemoryRepo()
	if config.C.Redis.Addr != "" {
		if err := storage.InitRedis(context.Background(),
			config.C.Redis.Addr,
			config.C.Redis.Password,
			config.C.Redis.DB,
		); err != nil {
			utils.Log.Warn("redis unavailable, using memory store", "err", err)
		} else {
			repo = calculation.NewRedisRepo(storage.Rdb)
		}
	}
	svc := calculation.NewService(calc, repo, config.C.Cache.TTL, config.C.Server.RequestTimeout, utils.Log)

	//-------------------------------------------------------
	// 3. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "PokerPal API",
			"version": "1.0.0",
		})
	})

	ch := calculation.NewHandler(svc)
	r.POST("/calculate", ch.Calculate)
	r.GET("/calculations/:id", ch.Get)

	//-------------------------------------------------------
	// 4. Hub + GameManager（实时牌桌）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	gameMgr := manager.NewGameManager(hub, calc, sim.DefaultSims, sim.MaxSims)
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	hub.OnLeave = gameMgr.RemoveTable
	go hub.Run()

	r.GET("/ws", websocket.ServeWS(hub))

	//-------------------------------------------------------
	// 5. 启动服务器
	//-------------------------------------------------------
	utils.Log.Info("server running", "addr", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Log.Fatal("server stopped", "err", err)
	}
}
