package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/huddleup-labs/huddleup-api/docs"
	v1 "github.com/huddleup-labs/huddleup-api/internal/api/handler/v1"
	"github.com/huddleup-labs/huddleup-api/internal/api/middleware"
	"github.com/huddleup-labs/huddleup-api/internal/config"
	"github.com/huddleup-labs/huddleup-api/internal/repository"
	"github.com/huddleup-labs/huddleup-api/internal/repository/dao"
	"github.com/huddleup-labs/huddleup-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Mirror and ChainRepo are shared with the WebSocket listener so both
	// delivery transports feed the same ingestion pipeline.
	Mirror    *service.MirrorService
	ChainRepo *repository.ChainRepository
}

func NewServer(ctx context.Context, conf *config.AppConfig, driver neo4j.DriverWithContext) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler, err := s.initAuthHandler(ctx, driver)
	if err != nil {
		return nil, fmt.Errorf("s.initAuthHandler -> %w", err)
	}

	uploadSvc, err := service.NewUploadService(ctx, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("service.NewUploadService -> %w", err)
	}

	userHandler := s.initUserHandler(driver)
	eventHandler := s.initEventHandler(driver)
	qrHandler := s.initQRHandler(driver, uploadSvc)
	uploadHandler := v1.NewUploadHandler(uploadSvc, s.userService(driver))
	webhookHandler := s.initWebhookHandler(driver)

	s.MountHandlers(authHandler, userHandler, eventHandler, qrHandler, uploadHandler, webhookHandler)

	return s, nil
}

func (s *Server) initAuthHandler(ctx context.Context, driver neo4j.DriverWithContext) (*v1.AuthHandler, error) {
	userDAO := dao.NewUserDAO(driver)
	repo := repository.NewUserRepository(userDAO)

	svc, err := service.NewAuthService(ctx, s.Config.Auth, repo)
	if err != nil {
		return nil, fmt.Errorf("service.NewAuthService -> %w", err)
	}

	return v1.NewAuthHandler(svc), nil
}

func (s *Server) initUserHandler(driver neo4j.DriverWithContext) *v1.UserHandler {
	return v1.NewUserHandler(s.userService(driver))
}

func (s *Server) initEventHandler(driver neo4j.DriverWithContext) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(driver)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)

	return v1.NewEventHandler(svc, s.userService(driver))
}

func (s *Server) initQRHandler(driver neo4j.DriverWithContext, store service.ImageStore) *v1.QRHandler {
	eventDAO := dao.NewEventDAO(driver)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewQRService([]byte(s.Config.Auth.QRSigningKey), repo, store)

	return v1.NewQRHandler(svc, s.userService(driver))
}

func (s *Server) initWebhookHandler(driver neo4j.DriverWithContext) *v1.WebhookHandler {
	chainDAO := dao.NewChainDAO(driver)
	eventDAO := dao.NewEventDAO(driver)
	userDAO := dao.NewUserDAO(driver)

	s.ChainRepo = repository.NewChainRepository(chainDAO)
	s.Mirror = service.NewMirrorService(
		s.ChainRepo,
		repository.NewEventRepository(eventDAO),
		repository.NewUserRepository(userDAO),
	)

	return v1.NewWebhookHandler(s.Config.Chain.WebhookSigningKey, s.Mirror)
}

func (s *Server) userService(driver neo4j.DriverWithContext) *service.UserService {
	return service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(driver)))
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	qrHandler *v1.QRHandler,
	uploadHandler *v1.UploadHandler,
	webhookHandler *v1.WebhookHandler,
) {
	const basePath = "/api/v1"

	authenticated := middleware.NewAuthenticator(s.Config.Auth.SessionSigningKey).VerifyJWT()

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/verify-jwt", authHandler.HandleVerifyJWT)
		public.POST("/auth/verify-wallet", authHandler.HandleVerifyExternalWallet)
		public.GET("/events", eventHandler.HandleListEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/events/:eventID/participants", eventHandler.HandleListParticipants)
		public.GET("/events/:eventID/sponsor", eventHandler.HandleGetSponsor)
		public.POST("/webhook/alchemy", webhookHandler.HandleChainWebhook)
	}

	private := s.Router.Group(basePath, authenticated)
	{
		private.GET("/auth/me", userHandler.HandleGetMe)
		private.POST("/auth/refresh", authHandler.HandleRefreshSession)
		private.GET("/users/:userID", userHandler.HandleGetUser)

		private.POST("/events", eventHandler.HandleCreateEvent)
		private.GET("/events/mine", eventHandler.HandleListMyEvents)
		private.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		private.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		private.POST("/events/:eventID/fund", eventHandler.HandleFundEvent)
		private.POST("/events/:eventID/participate", eventHandler.HandleParticipate)
		private.DELETE("/events/:eventID/participate", eventHandler.HandleLeave)
		private.POST("/events/:eventID/complete", eventHandler.HandleCompleteEvent)
		private.POST("/events/:eventID/cancel", eventHandler.HandleCancelEvent)

		private.POST("/qr/generate", qrHandler.HandleGenerateQR)
		private.POST("/qr/verify", qrHandler.HandleVerifyQR)
		private.POST("/upload/images", uploadHandler.HandleUploadImage)
		private.DELETE("/upload/image", uploadHandler.HandleDeleteImage)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "HuddleUp API"
	docs.SwaggerInfo.Description = "Sponsored community events with on-chain funding and airdrops."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
