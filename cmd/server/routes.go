package main

import (
	"github.com/gin-gonic/gin"

	"aqua-maker.backend/internal/config"
	"aqua-maker.backend/internal/interfaces/http/handlers"
	"aqua-maker.backend/internal/interfaces/http/middleware"
	"aqua-maker.backend/pkg/metrics"
)

type routeDeps struct {
	quoteHandler *handlers.QuoteHandler
	chainHandler *handlers.ChainHandler
	adminHandler *handlers.AdminHandler
	cfg          *config.Config
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.TimeoutMiddleware(d.cfg.Server.GlobalTimeout))

	v1 := r.Group("/v1")
	{
		v1.GET("/health", d.chainHandler.Health)
		v1.GET("/metrics", gin.WrapH(metrics.Handler()))
		v1.GET("/chains", d.chainHandler.ListChains)
		v1.GET("/metadata", d.chainHandler.GetMetadata)

		v1.POST("/price", d.quoteHandler.GetPrice)
		v1.POST("/quote", middleware.IdempotencyMiddleware(), d.quoteHandler.CreateQuote)
		v1.GET("/quotes", d.quoteHandler.ListQuotes)
		v1.GET("/quotes/:quoteId", d.quoteHandler.GetQuote)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(d.cfg.Security.AdminKeyHash))
		{
			admin.GET("/pairs", d.adminHandler.ListPairs)
			admin.POST("/pairs", d.adminHandler.UpsertPair)
			admin.GET("/strategies", d.adminHandler.ListStrategies)
			admin.POST("/strategies", d.adminHandler.CreateStrategy)
			admin.POST("/strategies/:id/activate", d.adminHandler.ActivateStrategy)
			admin.GET("/config", d.adminHandler.GetConfig)
			admin.PUT("/config", d.adminHandler.UpdateConfig)
			admin.GET("/tokens", d.adminHandler.ListTokens)
		}
	}
}
