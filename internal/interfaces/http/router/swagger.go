package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shelflog/backend/docs"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/shelflog/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag/v2"
	"go.uber.org/zap"
)

// SwaggerHandler serves the Swagger UI and the API description.
// gin-swagger looks doc.json up in the v1 swag registry, while the
// description is registered with swag/v2, so doc.json is answered here.
func SwaggerHandler() gin.HandlerFunc {
	ui := ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("doc.json"))
	return func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") != "doc.json" {
			ui(c)
			return
		}
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

// SetupSwagger mounts the API documentation at /swagger behind SwaggerProtection
func SetupSwagger(engine *gin.Engine, cfg config.SwaggerConfig, authenticator middleware.Authenticator, log *zap.Logger) {
	var auth gin.HandlerFunc
	if cfg.RequireAuth {
		auth = middleware.JWTAuth(authenticator, log)
	}
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg, auth), SwaggerHandler())
}
