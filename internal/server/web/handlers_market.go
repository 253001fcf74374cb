package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stockguard/internal/common"
	"stockguard/internal/wallet"
)

const (
	defaultSeriesPoints = 30
	maxSeriesPoints     = 365
)

func (s *Server) handleMarketSeries(c *gin.Context) {
	points := defaultSeriesPoints
	if raw := c.Query("points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSeriesPoints {
			c.JSON(http.StatusBadRequest, gin.H{"error": "points must be between 1 and 365"})
			return
		}
		points = n
	}

	c.JSON(http.StatusOK, gin.H{"series": s.generator.PriceSeries(time.Now(), points)})
}

func (s *Server) handleSentiment(c *gin.Context) {
	c.JSON(http.StatusOK, s.generator.CurrentSentiment())
}

func (s *Server) handleAnalysis(c *gin.Context) {
	res, err := s.analysis.Analyze(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error(c.Request.Context(), "analysis request failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) handleWalletStatus(c *gin.Context) {
	address := c.Query("address")
	active, err := s.wallet.IsActive(c.Request.Context(), address)
	if err != nil {
		respondWalletError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "active": active})
}

func (s *Server) handleWalletFee(c *gin.Context) {
	fee, err := s.wallet.Fee(c.Request.Context())
	if err != nil {
		respondWalletError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee": fee})
}

type subscribeRequest struct {
	Address string `json:"address" binding:"required"`
}

func (s *Server) handleWalletSubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	if err := s.wallet.Subscribe(c.Request.Context(), req.Address); err != nil {
		respondWalletError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": req.Address, "active": true})
}

func respondWalletError(c *gin.Context, err error) {
	if errors.Is(err, wallet.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
