// Package web hosts the Gin-powered StockGuard dashboard: the public
// marketing pages, the authenticated area behind the session guard, and the
// JSON API the widgets poll.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockguard/internal/alerts"
	"stockguard/internal/analysis"
	"stockguard/internal/config"
	"stockguard/internal/logging"
	"stockguard/internal/market"
	"stockguard/internal/session"
	"stockguard/internal/wallet"
)

//go:embed templates/*.tmpl
var embeddedFS embed.FS

// Server wires the application cores to the HTTP surface.
type Server struct {
	cfg        *config.Config
	log        logging.Logger
	sessions   *session.Store
	registry   *alerts.Registry
	triage     *alerts.Triage
	generator  *market.Generator
	hub        *market.Hub
	analysis   *analysis.Client
	wallet     wallet.Subscription
	httpServer *http.Server
}

func NewServer(
	cfg *config.Config,
	log logging.Logger,
	sessions *session.Store,
	registry *alerts.Registry,
	triage *alerts.Triage,
	generator *market.Generator,
	hub *market.Hub,
	analysisClient *analysis.Client,
	walletSub wallet.Subscription,
) *Server {
	return &Server{
		cfg:       cfg,
		log:       log.With("component", "web"),
		sessions:  sessions,
		registry:  registry,
		triage:    triage,
		generator: generator,
		hub:       hub,
		analysis:  analysisClient,
		wallet:    walletSub,
	}
}

// Run starts the HTTP server and blocks until the provided context is
// cancelled or the server exits with an error.
func (s *Server) Run(ctx context.Context) error {
	router, err := s.buildRouter()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.cfg.EndpointAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.log.Info(ctx, "dashboard listening", "addr", s.cfg.EndpointAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return err
	}
}

func (s *Server) buildRouter() (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	tmpl := template.Must(template.New("stockguard").ParseFS(embeddedFS, "templates/*.tmpl"))
	router.SetHTMLTemplate(tmpl)

	// public pages
	router.GET("/", s.handlePage("index.tmpl", "StockGuard"))
	router.GET("/features", s.handlePage("features.tmpl", "Features"))
	router.GET("/pricing", s.handlePage("pricing.tmpl", "Pricing"))
	router.GET("/contact", s.handlePage("contact.tmpl", "Contact"))
	router.GET("/login", s.handleLoginPage)
	router.GET("/signup", s.handleSignupPage)

	router.POST("/login", s.handleLogin)
	router.POST("/signup", s.handleSignup)
	router.POST("/logout", s.handleLogout)

	// protected pages
	pages := router.Group("/", s.guardPage())
	pages.GET("/dashboard", s.handleDashboard)
	pages.GET("/profile", s.handleProfile)
	pages.GET("/settings", s.handlePage("settings.tmpl", "Settings"))
	pages.GET("/live-market", s.handlePage("live_market.tmpl", "Live Market"))
	pages.GET("/alerts", s.handleAlertsPage)

	// session state is public so the client can poll it
	router.GET("/api/session", s.handleSession)

	api := router.Group("/api", s.guardAPI())
	api.GET("/alerts", s.handleListAlerts)
	api.GET("/alerts/counts", s.handleAlertCounts)
	api.GET("/alerts/selected", s.handleSelectedAlert)
	api.GET("/alerts/:id", s.handleGetAlert)
	api.POST("/alerts/:id/select", s.handleSelectAlert)
	api.POST("/alerts/:id/review", s.handleReviewAlert)
	api.POST("/alerts/:id/dismiss", s.handleDismissAlert)
	api.PUT("/alerts/:id/status", s.handleSetAlertStatus)
	api.PUT("/triage/filter", s.handleSetFilter)
	api.GET("/market/series", s.handleMarketSeries)
	api.GET("/market/sentiment", s.handleSentiment)
	api.GET("/analysis/:symbol", s.handleAnalysis)
	api.GET("/wallet/status", s.handleWalletStatus)
	api.GET("/wallet/fee", s.handleWalletFee)
	api.POST("/wallet/subscribe", s.handleWalletSubscribe)

	ws := router.Group("/ws", s.guardAPI())
	ws.GET("/market", func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Title": "Not Found"})
	})

	return router, nil
}
