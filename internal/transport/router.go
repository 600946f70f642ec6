package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	srsvc "github.com/alanyang/roadside-relay/internal/service/servicerequest"
	srhandler "github.com/alanyang/roadside-relay/internal/transport/servicerequest"
	wshandler "github.com/alanyang/roadside-relay/internal/transport/ws"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	srSvc *srsvc.Service,
	hub *wshandler.Hub,
	reg *wshandler.Registry,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(RequestLogger())
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": reg.Len()})
	})

	srhandler.Register(r, srSvc)

	// Existing clients open the socket on the server root.
	hub.Register(r.Group("/"))
	hub.Register(r.Group("/ws"))

	return r
}
