package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockguard/internal/alerts"
	"stockguard/internal/common"
)

// alertView is the wire shape of an alert, with presentation fields the
// dashboard needs alongside the record itself.
type alertView struct {
	alerts.Alert
	CategoryLabel string `json:"categoryLabel"`
	Detected      string `json:"detected"`
}

func toView(a alerts.Alert, now time.Time) alertView {
	return alertView{
		Alert:         a,
		CategoryLabel: a.Category.Label(),
		Detected:      a.Age(now),
	}
}

func toViews(list []alerts.Alert) []alertView {
	now := time.Now()
	views := make([]alertView, 0, len(list))
	for _, a := range list {
		views = append(views, toView(a, now))
	}
	return views
}

// respondAlertError maps registry/view-model failures onto HTTP statuses.
func respondAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// handleListAlerts returns the triage view. An explicit ?filter switches the
// active tab first, so the query and the view-model stay in step.
func (s *Server) handleListAlerts(c *gin.Context) {
	if f := c.Query("filter"); f != "" {
		if err := s.triage.SetFilter(alerts.Filter(f)); err != nil {
			respondAlertError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"filter": s.triage.ActiveFilter(),
		"alerts": toViews(s.triage.VisibleAlerts()),
	})
}

func (s *Server) handleAlertCounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"counts": s.triage.Counts()})
}

func (s *Server) handleGetAlert(c *gin.Context) {
	a, err := s.registry.Get(c.Param("id"))
	if err != nil {
		respondAlertError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": toView(a, time.Now())})
}

func (s *Server) handleSelectAlert(c *gin.Context) {
	if err := s.triage.Select(c.Param("id")); err != nil {
		respondAlertError(c, err)
		return
	}
	a, _ := s.triage.Selected()
	c.JSON(http.StatusOK, gin.H{"selected": toView(a, time.Now())})
}

func (s *Server) handleSelectedAlert(c *gin.Context) {
	a, ok := s.triage.Selected()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"selected": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": toView(a, time.Now())})
}

func (s *Server) handleReviewAlert(c *gin.Context) {
	s.mutateStatus(c, s.triage.MarkReviewed)
}

func (s *Server) handleDismissAlert(c *gin.Context) {
	s.mutateStatus(c, s.triage.Dismiss)
}

func (s *Server) mutateStatus(c *gin.Context, op func(id string) error) {
	id := c.Param("id")
	if err := op(id); err != nil {
		respondAlertError(c, err)
		return
	}

	a, err := s.registry.Get(id)
	if err != nil {
		respondAlertError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": toView(a, time.Now())})
}

type setStatusRequest struct {
	Status alerts.Status `json:"status" binding:"required"`
}

func (s *Server) handleSetAlertStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	s.mutateStatus(c, func(id string) error {
		return s.registry.SetStatus(id, req.Status)
	})
}

type setFilterRequest struct {
	Filter alerts.Filter `json:"filter" binding:"required"`
}

func (s *Server) handleSetFilter(c *gin.Context) {
	var req setFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter is required"})
		return
	}

	if err := s.triage.SetFilter(req.Filter); err != nil {
		respondAlertError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filter": s.triage.ActiveFilter()})
}
