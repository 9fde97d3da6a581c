package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/spotcontest/api/docs"
	v1 "github.com/spotcontest/api/internal/api/handler/v1"
	"github.com/spotcontest/api/internal/api/middleware"
	"github.com/spotcontest/api/internal/config"
	"github.com/spotcontest/api/internal/metrics"
	"github.com/spotcontest/api/internal/repository"
	"github.com/spotcontest/api/internal/repository/dao"
	"github.com/spotcontest/api/internal/service"
)

type Server struct {
	Config  *config.AppConfig
	Router  *gin.Engine
	Metrics *metrics.Recorder
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		Metrics: metrics.NewRecorder(),
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler()
	competitionHandler := s.initCompetitionHandler(db)
	entryHandler := s.initEntryHandler(db)
	resultHandler := s.initResultHandler(db)
	s.MountHandlers(authHandler, competitionHandler, entryHandler, resultHandler)

	return s
}

func (s *Server) initAuthHandler() *v1.AuthHandler {
	svc := service.NewAuthService(s.Config.API.AdminEmail, s.Config.API.AdminPasswordHash)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initCompetitionHandler(db *gorm.DB) *v1.CompetitionHandler {
	repo := repository.NewCompetitionRepository(dao.NewCompetitionDAO(db))
	svc := service.NewCompetitionService(repo, s.Config.Contest.WinnerCount)
	handler := v1.NewCompetitionHandler(svc)

	return handler
}

func (s *Server) initEntryHandler(db *gorm.DB) *v1.EntryHandler {
	competitionRepo := repository.NewCompetitionRepository(dao.NewCompetitionDAO(db))
	entryRepo := repository.NewEntryRepository(dao.NewEntryDAO(db))
	svc := service.NewEntryService(competitionRepo, entryRepo)
	handler := v1.NewEntryHandler(svc)

	return handler
}

func (s *Server) initResultHandler(db *gorm.DB) *v1.ResultHandler {
	svc := NewWinnerService(db, s.Metrics)
	handler := v1.NewResultHandler(svc, s.Config.Contest.DistancePrecision)

	return handler
}

// NewWinnerService wires the winner engine to its stores. The CLI uses it too.
func NewWinnerService(db *gorm.DB, recorder service.ComputationRecorder) *service.WinnerService {
	competitionRepo := repository.NewCompetitionRepository(dao.NewCompetitionDAO(db))
	entryRepo := repository.NewEntryRepository(dao.NewEntryDAO(db))
	resultRepo := repository.NewResultRepository(dao.NewResultDAO(db))

	return service.NewWinnerService(competitionRepo, entryRepo, resultRepo, recorder)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, competitionHandler *v1.CompetitionHandler, entryHandler *v1.EntryHandler, resultHandler *v1.ResultHandler) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/competitions/:competitionID", competitionHandler.HandleGetCompetition)
		public.GET("/competitions/:competitionID/results", resultHandler.HandleGetResult)

		public.POST("/competitions/:competitionID/checkout-summaries", entryHandler.HandleRecordCheckoutSummary)
		public.PUT("/competitions/:competitionID/participants/:participantID/tickets", entryHandler.HandleRecordTicketSubmission)
	}

	admin := s.Router.Group(basePath,
		middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT(),
		middleware.RequireRole(service.RoleAdmin))
	{
		admin.POST("/competitions", competitionHandler.HandleCreateCompetition)
		admin.PUT("/competitions/:competitionID/final-judge", competitionHandler.HandleSetFinalJudge)
		admin.POST("/competitions/:competitionID/results", resultHandler.HandleComputeResult)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(s.Metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Spot contest API"
	docs.SwaggerInfo.Description = "Winner computation for mark-the-spot competitions."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
