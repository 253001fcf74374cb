package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handlePage renders a static template. The current identity, when present,
// is passed through so the navigation can show the signed-in user.
func (s *Server) handlePage(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{"Title": title}
		if id, ok := s.sessions.Current(); ok {
			data["User"] = id
		}
		c.HTML(http.StatusOK, name, data)
	}
}

func (s *Server) handleDashboard(c *gin.Context) {
	id, _ := s.sessions.Current()
	now := time.Now()

	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"Title":     "Dashboard",
		"User":      id,
		"Counts":    s.triage.Counts(),
		"Alerts":    toViews(s.triage.VisibleAlerts()),
		"Series":    s.generator.PriceSeries(now, 30),
		"Sentiment": s.generator.CurrentSentiment(),
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	id, _ := s.sessions.Current()

	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"Title": "Profile",
		"User":  id,
	})
}

func (s *Server) handleAlertsPage(c *gin.Context) {
	id, _ := s.sessions.Current()

	data := gin.H{
		"Title":  "Fraud Alerts",
		"User":   id,
		"Filter": s.triage.ActiveFilter(),
		"Counts": s.triage.Counts(),
		"Alerts": toViews(s.triage.VisibleAlerts()),
	}
	if a, ok := s.triage.Selected(); ok {
		data["Selected"] = toView(a, time.Now())
	}
	c.HTML(http.StatusOK, "alerts.tmpl", data)
}
