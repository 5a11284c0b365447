package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/qmikke-api/docs"
	v1 "github.com/vietanh2810/qmikke-api/internal/api/handler/v1"
	"github.com/vietanh2810/qmikke-api/internal/api/middleware"
	"github.com/vietanh2810/qmikke-api/internal/config"
	"github.com/vietanh2810/qmikke-api/internal/metrics"
	"github.com/vietanh2810/qmikke-api/internal/pkg/qrcode"
	"github.com/vietanh2810/qmikke-api/internal/repository"
	"github.com/vietanh2810/qmikke-api/internal/repository/cache"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
	"github.com/vietanh2810/qmikke-api/internal/service"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Totalize *service.TotalizeService
}

type handlers struct {
	rally    *v1.RallyHandler
	poster   *v1.PosterHandler
	totalize *v1.TotalizeHandler
	live     *v1.LiveHandler
	draft    *v1.DraftHandler
	gate     *middleware.TotalizeGate
}

// NewServer wires the API. rdb may be nil, in which case drafts and the live feed are
// not mounted.
func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, rdb))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, rdb *redis.Client) handlers {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	goalRepo := repository.NewGoalRepository(dao.NewGoalDAO(db))

	events := service.NewEventService(eventRepo)
	verifier := service.NewTokenVerifier(eventRepo)
	sessions := service.NewSessionRegistry(repository.NewSessionRepository(dao.NewSessionDAO(db)))
	ledger := service.NewStampLedger(repository.NewStampRepository(dao.NewStampDAO(db)))
	goals := service.NewGoalEngine(goalRepo, s.Config.Rally.CodeAttempts)

	var feed service.FeedPublisher = service.NopFeed{}
	var bus *cache.FeedBus
	if rdb != nil {
		bus = cache.NewFeedBus(rdb)
		feed = bus
	}

	rally := service.NewRallyService(events, verifier, sessions, ledger, goals, feed)
	s.Totalize = service.NewTotalizeService(events, verifier,
		repository.NewTotalizeRepository(dao.NewTotalizeDAO(db)), goalRepo, eventRepo)

	gate := middleware.NewTotalizeGate(s.Config.API.JWTSigningKey, s.Config.Rally.TotalizeGrantTTL)
	h := handlers{
		rally:    v1.NewRallyHandler(rally, s.Config.API.IPHashKey),
		poster:   v1.NewPosterHandler(verifier, qrcode.NewPosterGenerator(s.Config.API.PublicURL, s.Config.Rally.QRSize)),
		totalize: v1.NewTotalizeHandler(s.Totalize, gate),
		gate:     gate,
	}
	if rdb != nil {
		h.live = v1.NewLiveHandler(bus, s.Totalize, s.Config.API.AllowedCORSDomains)
		h.draft = v1.NewDraftHandler(service.NewDraftService(cache.NewDraftCache(rdb), events, s.Config.Redis.DraftTTL))
	}

	return h
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(metrics.Middleware())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Sessions(s.Config.API.SessionSecret, s.Config.API.Environment == "production"))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	rally := s.Router.Group(basePath)
	{
		rally.GET("/events/:eventID/spots/:spotID", h.rally.HandleScanPage)
		rally.POST("/stamps", h.rally.HandleStamp)
		rally.POST("/events/:eventID/achievement", h.rally.HandleAchievement)
		rally.POST("/events/:eventID/goal-status", h.rally.HandleStampGoalStatus)
		rally.GET("/events/:eventID/progress", h.rally.HandleProgress)
		rally.GET("/events/:eventID/goal", h.rally.HandleGoalPage)
		rally.POST("/events/:eventID/goal/status", h.rally.HandleGoalStatus)
		rally.POST("/events/:eventID/goal", h.rally.HandleFinalize)
		// Posters
		rally.GET("/events/:eventID/spots/:spotID/qr", h.poster.HandleSpotQR)
		rally.GET("/events/:eventID/goal/qr", h.poster.HandleGoalQR)
	}

	s.Router.POST(basePath+"/events/:eventID/totalize/auth", h.totalize.HandleAuthorize)
	totalize := s.Router.Group(basePath, h.gate.VerifyGrant())
	{
		totalize.GET("/events/:eventID/totalize", h.totalize.HandleSummary)
		totalize.GET("/events/:eventID/totalize/codes/:code", h.totalize.HandleLookupCode)
		if h.live != nil {
			totalize.GET("/events/:eventID/totalize/live", h.live.HandleLive)
		}
	}

	if h.draft != nil {
		drafts := s.Router.Group(basePath)
		{
			drafts.POST("/drafts", h.draft.HandleSaveDraft)
			drafts.GET("/drafts/:draftID", h.draft.HandleGetDraft)
			drafts.DELETE("/drafts/:draftID", h.draft.HandleDeleteDraft)
			drafts.POST("/drafts/:draftID/publish", h.draft.HandlePublishDraft)
		}
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Qmikke stamp rally API"
	docs.SwaggerInfo.Description = "QR stamp rally: spot scans, goal codes and event totals."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
