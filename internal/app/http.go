package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Varshithx/task-manager/internal/config"
	"github.com/Varshithx/task-manager/internal/delivery/http/token"
	v1 "github.com/Varshithx/task-manager/internal/delivery/http/v1"
	"github.com/Varshithx/task-manager/internal/delivery/http/web"
	"github.com/Varshithx/task-manager/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.LoadHTMLGlob(httpCfg.TemplatesGlob)
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	sessionCfg := config.Global().Session
	tokenCodec := token.NewCodec(
		sessionCfg.Issuer,
		sessionCfg.SigningKey,
		sessionCfg.TTL,
	)

	accountService := services.NewAccountService(globalLogger, globalPostgresPool)
	sessionService := services.NewSessionService(globalLogger, globalPostgresPool, sessionCfg.TTL)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)

	// The session cookie rides plain http only during local
	// development; every other environment sits behind TLS.
	secureCookie := config.Global().Env != config.EnvLocal

	apiHandler := v1.New(
		globalLogger,
		accountService,
		sessionService,
		taskService,
		tokenCodec,
		secureCookie,
	)

	api := router.Group("/api")
	api.POST("/register", apiHandler.HandleRegister)
	api.POST("/login", apiHandler.HandleLogin)
	api.POST("/logout", apiHandler.HandleAuthMiddleware, apiHandler.HandleLogout)
	api.GET("/me", apiHandler.HandleAuthMiddleware, apiHandler.HandleMe)

	tasks := api.Group("/tasks", apiHandler.HandleAuthMiddleware)
	tasks.GET("", apiHandler.HandleListTasks)
	tasks.POST("", apiHandler.HandleCreateTask)
	tasks.PUT("/:id", apiHandler.HandleUpdateTask)
	tasks.PUT("/:id/toggle", apiHandler.HandleToggleTask)
	tasks.DELETE("/:id", apiHandler.HandleDeleteTask)

	pageHandler := web.New(globalLogger, sessionService, tokenCodec)
	router.GET("/", pageHandler.HandleHome)
	router.GET("/login", pageHandler.HandleLoginPage)
	router.GET("/register", pageHandler.HandleRegisterPage)
	router.GET("/dashboard", pageHandler.HandleDashboard)
}
