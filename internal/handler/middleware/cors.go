package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/config"
)

// CORS настраивает Cross-Origin Resource Sharing.
// Пустой список источников вне production разрешает любой источник, в production запрещает все.
func CORS(cfg *config.CORSConfig, appEnv string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	case appEnv != "production" && !cfg.AllowCredentials:
		corsConfig.AllowAllOrigins = true
	default:
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(corsConfig)
}
