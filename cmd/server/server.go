package server

import (
	"campus-connect/config"
	"campus-connect/internal/global/cache"
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/httpclient"
	"campus-connect/internal/global/logger"
	"campus-connect/internal/global/logostore"
	"campus-connect/internal/global/middleware"
	internalOtel "campus-connect/internal/global/otel"
	internalSentry "campus-connect/internal/global/sentry"
	"campus-connect/internal/module"
	"campus-connect/tools"
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()

	if err := internalSentry.Init(); err != nil {
		fmt.Printf("Sentry init failed: %v\n", err)
	}

	log = logger.New("Server")

	database.Init()

	cache.Init()

	httpclient.Init()

	logostore.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(internalSentry.Middleware())
	r.Use(middleware.SentryEnrichIP())

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
		// 确保程序退出时关闭 TracerProvider
		defer func() {
			if err := internalOtel.Shutdown(context.Background()); err != nil {
				log.Error("Failed to shutdown TracerProvider", "error", err)
			}
		}()
	}

	// 本地存储的社团 logo 等静态文件
	r.Static(config.Get().Storage.BaseURL, config.Get().Storage.Home)

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
