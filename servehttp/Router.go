package servehttp

import (
	"net/http"

	"github.com/shaorongqiang/permission-api/account"
	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/bizerror"
	"github.com/shaorongqiang/permission-api/infra/recording"
	"github.com/shaorongqiang/permission-api/infra/tracing"
	"github.com/shaorongqiang/permission-api/session"
	"github.com/shaorongqiang/permission-api/sessions"

	"github.com/gin-gonic/gin"
)

// NewRouteEngine assembles the full request pipeline: tracing and request
// recording observers, the error handling boundary, the public auth routes and
// the protected groups behind the auth filter.
func NewRouteEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), tracing.TracingIngress(), recording.RequestRecording(), bizerror.ErrorHandling())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "permission-api")
	})

	sessions.RegisterAuthHandler(engine)

	authFilter := session.AuthFilter()
	account.RegisterUserHandler(engine, authFilter)
	authority.RegisterRoleHandler(engine, authFilter)
	authority.RegisterMenuHandler(engine, authFilter)
	sessions.RegisterOnlineHandler(engine, authFilter)

	return engine
}
