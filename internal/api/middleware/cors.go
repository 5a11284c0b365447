package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowOrigins = allowedDomains
	conf.AllowCredentials = true
	conf.AddAllowHeaders("Authorization")
	conf.AddExposeHeaders("X-Request-ID")

	return cors.New(conf)
}
