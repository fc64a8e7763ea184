package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wobot-todo/backend/internal/config"
	"github.com/wobot-todo/backend/internal/obs"
	"github.com/wobot-todo/backend/internal/service"
)

// Deps is everything the router needs.
type Deps struct {
	Auth    *service.AuthService
	Todos   *service.TodoService
	Log     *zap.Logger
	Metrics *obs.Metrics
	DB      Pinger
	HTTP    config.HTTPConfig
}

// NewRouter builds the gin engine. Routes under the protected group run
// AuthMiddleware before any handler, so no handler executes for an
// unauthenticated request.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		Recovery(log),
		RequestLogger(log),
		d.Metrics.Middleware(),
		CORSMiddleware(d.HTTP.AllowedOrigins, d.HTTP.AllowCredentials),
	)

	authHandler := NewAuthHandler(d.Auth, log)
	todoHandler := NewTodoHandler(d.Todos, log)

	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/readyz", Ready(d.DB, log))
	r.GET("/openapi.json", OpenAPIDoc)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)

	protected := r.Group("/")
	protected.Use(AuthMiddleware(d.Auth.Resolver(), log))
	{
		protected.GET("/users/me", authHandler.Me)

		protected.POST("/todos", todoHandler.CreateTodo)
		protected.GET("/todos", todoHandler.ListTodos)
		protected.GET("/todos/:id", todoHandler.GetTodo)
		protected.PUT("/todos/:id", todoHandler.UpdateTodo)
		protected.DELETE("/todos/:id", todoHandler.DeleteTodo)
	}

	return r
}
