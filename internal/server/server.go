package server

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	middlewareLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/api"
	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/imghost"
	"github.com/yockii/wx_publisher/internal/metrics"
	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
	"github.com/yockii/wx_publisher/internal/wechat"
	"github.com/yockii/wx_publisher/pkg/config"
	"github.com/yockii/wx_publisher/pkg/logger"
)

type Server struct {
	app  *fiber.App
	db   *gorm.DB
	stop chan struct{}

	metrics *metrics.Metrics

	// 各个service
	configSrv  service.ConfigService
	renderSrv  service.RenderService
	aiSrv      service.AIService
	coverSrv   service.CoverService
	publishSrv service.PublishService
	uploadSrv  service.UploadService
}

// New db 为 nil 时用户配置只保存在文件中
func New(db *gorm.DB) *Server {
	return &Server{
		db:   db,
		stop: make(chan struct{}),
	}
}

func (s *Server) Start() error {
	s.setup()

	// 启动服务器
	addr := config.GetServerAddress()
	logger.Info("服务监听地址", logger.F("address", addr))

	// 优雅关闭
	go s.gracefulShutdown()

	if err := s.app.Listen(addr); err != nil {
		logger.Error("服务停止", logger.F("error", err))
		return err
	}
	return nil
}

// setup 创建 Fiber 实例并完成服务、中间件和路由的装配
func (s *Server) setup() *fiber.App {
	s.app = fiber.New(fiber.Config{
		AppName:               config.GetString("server.app_name"),
		EnablePrintRoutes:     config.GetBool("server.print_routes"),
		DisableStartupMessage: true,
		BodyLimit:             config.GetInt("server.body_limit"),
	})

	s.setupServices()

	// 配置中间件
	s.setupMiddleware()

	s.registerHandlers()
	s.setupRoutes()
	return s.app
}

func (s *Server) gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务关闭中...")
	close(s.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		logger.Error("服务关闭失败", logger.F("error", err))
	}

	logger.Info("服务已关闭")
}

func aiOptions(name, baseURLKey, modelKey string, m *metrics.Metrics) ai.Options {
	return ai.Options{
		Name:       name,
		BaseURL:    config.GetString(baseURLKey),
		Model:      config.GetString(modelKey),
		Timeout:    time.Duration(config.GetInt("ai.timeout")) * time.Second,
		MaxRetries: config.GetInt("ai.max_retries"),
		Metrics:    m,
	}
}

// setupServices 配置服务层
func (s *Server) setupServices() {
	s.metrics = metrics.Default()

	dataDir := config.GetString("storage.data_dir")
	coverDir := filepath.Join(config.GetString("storage.temp_dir"), "covers")
	prompts := (&service.Prompts{
		Article: config.GetString("prompts.article"),
		Layout:  config.GetString("prompts.layout"),
		Cover:   config.GetString("prompts.cover"),
	}).WithDefaults()

	deepSeek := aiOptions(constant.UpstreamDeepSeek, "ai.deepseek_base_url", "ai.deepseek_model", s.metrics)
	groq := aiOptions(constant.UpstreamGroq, "ai.groq_base_url", "ai.whisper_model", s.metrics)
	poe := aiOptions(constant.UpstreamPoe, "ai.poe_base_url", "ai.poe_model", s.metrics)

	var redisOpts *service.RedisOptions
	if config.GetBool("redis.enabled") {
		redisOpts = &service.RedisOptions{
			Addr:     config.GetString("redis.addr"),
			Password: config.GetString("redis.password"),
			DB:       config.GetInt("redis.db"),
		}
	}
	tokens := service.NewTokenCache(redisOpts, config.GetInt("cache.token_size"))

	s.configSrv = service.NewConfigService(s.db, dataDir)
	s.renderSrv = service.NewRenderService(s.configSrv, service.RenderOptions{
		DeepSeek:       deepSeek,
		Prompts:        prompts,
		ThemeCacheSize: config.GetInt("cache.theme_size"),
		Metrics:        s.metrics,
	})
	s.aiSrv = service.NewAIService(s.configSrv, service.AIOptions{
		DeepSeek: deepSeek,
		Groq:     groq,
		Prompts:  prompts,
	})
	s.coverSrv = service.NewCoverService(s.configSrv, service.CoverOptions{
		DeepSeek: deepSeek,
		Poe:      poe,
		Prompts:  prompts,
		Dir:      coverDir,
	})
	s.publishSrv = service.NewPublishService(s.configSrv, service.PublishOptions{
		WeChat: wechat.Options{
			BaseURL:     config.GetString("wechat.base_url"),
			IPLookupURL: config.GetString("wechat.ip_lookup_url"),
			Timeout:     time.Duration(config.GetInt("wechat.timeout")) * time.Second,
			Tokens:      tokens,
			Metrics:     s.metrics,
		},
		CoverDir: coverDir,
	})
	s.uploadSrv = service.NewUploadService(s.configSrv, imghost.Options{
		BaseURL: config.GetString("imgbb.base_url"),
		Metrics: s.metrics,
	})
}

// setupMiddleware 配置中间件
func (s *Server) setupMiddleware() {
	// 异常恢复
	s.app.Use(recover.New())

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetString("security.allowed_origins"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.UserIDHeader,
	}))

	// 访问日志
	s.app.Use(middlewareLogger.New(middlewareLogger.Config{
		Format:     "[${ip}]-${time} ${status} ${latency} ${method} ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

func (s *Server) registerHandlers() {
	api.RegisterRenderHandler(s.renderSrv)
	api.RegisterConfigHandler(s.configSrv, s.aiSrv)
	api.RegisterAIHandler(s.aiSrv)
	api.RegisterCoverHandler(s.coverSrv)
	api.RegisterPublishHandler(s.publishSrv)
	api.RegisterUploadHandler(s.uploadSrv)
}

// rateLimit 未启用限流时直接放行
func (s *Server) rateLimit() fiber.Handler {
	if !config.GetBool("rate_limit.enabled") {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	duration := time.Duration(config.GetInt("rate_limit.duration")) * time.Second
	limiter := middleware.NewRateLimiter(config.GetInt("rate_limit.max_requests"), duration)
	limiter.StartCleanup(duration, s.stop)
	return limiter.Handler()
}

func (s *Server) setupRoutes() {
	// 健康检查
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := s.app.Group("/api", middleware.NewUserMiddleware())
	rateLimit := s.rateLimit()
	for _, handler := range api.Handlers {
		handler.RegisterRoutes(apiGroup, rateLimit)
	}
}
