package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/autonomy-nearby/background"
	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/logmodule"
	"github.com/bitmark-inc/autonomy-nearby/nearby"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.AutonomyCore

	// Engine
	discovery   *nearby.Discovery
	registry    *nearby.Registry
	coordinator *nearby.Coordinator
	connections *nearby.Connections

	// JWT public key of the identity service
	jwtPublicKey *rsa.PublicKey

	// External services, both optional
	geocoder   geo.Geocoder
	background background.TaskSender

	metrics *metrics
	limiter *writeLimiter
}

// NewServer new instance of server
func NewServer(
	core store.AutonomyCore,
	discovery *nearby.Discovery,
	registry *nearby.Registry,
	coordinator *nearby.Coordinator,
	connections *nearby.Connections,
	geocoder geo.Geocoder,
	taskSender background.TaskSender,
	jwtKey *rsa.PublicKey) *Server {
	return &Server{
		store:        core,
		discovery:    discovery,
		registry:     registry,
		coordinator:  coordinator,
		connections:  connections,
		jwtPublicKey: jwtKey,
		geocoder:     geocoder,
		background:   taskSender,
		metrics:      newMetrics(),
		limiter: newWriteLimiter(
			viper.GetFloat64("server.ratelimit.rps"),
			viper.GetInt("server.ratelimit.burst"),
		),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(s.metrics.instrument())

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	// api route other than `/information` will apply the following middleware
	apiRoute.Use(s.authMiddleware())
	apiRoute.Use(s.recognizeActorMiddleware())
	apiRoute.Use(s.updateGeoPositionMiddleware)
	apiRoute.Use(s.rateLimitMiddleware())

	actorRoute := apiRoute.Group("/actors")
	{
		actorRoute.GET("/me", s.actorDetail)
		actorRoute.GET("/nearby", s.searchNearbyActors)
	}

	helpRoute := apiRoute.Group("/helps")
	{
		helpRoute.POST("", s.askForHelp)
		helpRoute.GET("", s.listNearbyHelps)
		helpRoute.GET("/:helpID", s.getHelp)
		helpRoute.POST("/:helpID/resolve", s.resolveHelp)
		helpRoute.POST("/:helpID/responses", s.answerHelp)
	}

	apiRoute.POST("/responses/:responseID/accept", s.acceptHelpResponse)

	meRoute := apiRoute.Group("/me")
	{
		meRoute.GET("/help", s.ownHelp)
		meRoute.GET("/responses", s.ownResponses)
	}

	connectionRoute := apiRoute.Group("/connections")
	{
		connectionRoute.POST("", s.sendConnectionRequest)
		connectionRoute.GET("/inbox", s.connectionInbox)
		connectionRoute.GET("/outbox", s.connectionOutbox)
		connectionRoute.PATCH("/:connectionID", s.respondConnectionRequest)
	}

	apiRoute.GET("/network", s.network)

	secretRoute := r.Group("/secret")
	secretRoute.Use(logmodule.Ginrus("Secret"))
	secretRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.admin")))
	{
		secretRoute.POST("/expire-help-requests", s.adminExpireRequests)
	}

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// MetricsRegistry exposes the collectors of the server for extra registrations
func (s *Server) MetricsRegistry() prometheus.Registerer {
	return s.metrics.registry
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"help": map[string]interface{}{
				"ttl_seconds":              consts.HelpRequestTTL.Seconds(),
				"default_search_radius_km": consts.DefaultSearchRadiusKm,
				"max_search_radius_km":     consts.MaxSearchRadiusKm,
			},
			"android": viper.GetStringMap("clients.android"),
			"ios":     viper.GetStringMap("clients.ios"),
			"docs":    viper.GetStringMap("docs"),
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
