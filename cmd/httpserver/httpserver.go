// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nicebyy/point-ledger/internal/balancerepo"
	"github.com/nicebyy/point-ledger/internal/events"
	"github.com/nicebyy/point-ledger/internal/events/kafkapub"
	"github.com/nicebyy/point-ledger/internal/historyrepo"
	"github.com/nicebyy/point-ledger/internal/ledgerdelivery"
	"github.com/nicebyy/point-ledger/internal/ledgerservice"
	"github.com/nicebyy/point-ledger/internal/middleware"
	"github.com/nicebyy/point-ledger/pkg/configpkg"
)

// Server holds the handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config

	kafkaPublisher *kafkapub.Publisher
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close flushes and releases the event publisher if one is configured.
func (s *Server) Close() error {
	if s.kafkaPublisher == nil {
		return nil
	}

	return s.kafkaPublisher.Close()
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) *Server {
	balanceRepo := balancerepo.NewRepoMem()
	historyRepo := historyrepo.NewRepoMem()

	var (
		publisher      events.Publisher
		kafkaPublisher *kafkapub.Publisher
	)

	if config.KafkaBrokers != "" {
		kafkaPublisher = kafkapub.New(strings.Split(config.KafkaBrokers, ","), config.KafkaTopic)
		publisher = kafkaPublisher
	}

	ledgerService := ledgerservice.New(balanceRepo, historyRepo, publisher)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/points/:id", ledgerHandler.Get)
	engine.GET("/points/:id/transactions", ledgerHandler.History)
	engine.PATCH("/points/:id/charge", ledgerHandler.Charge)
	engine.PATCH("/points/:id/use", ledgerHandler.Use)

	server := &Server{
		Engine:         engine,
		Config:         config,
		kafkaPublisher: kafkaPublisher,
	}

	return server
}
