// Package api exposes the scan pipeline over HTTP. Routes mirror the public
// service surface: scan a URL, list history, download a PDF report.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/report"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/scrape"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/store"
)

// ScanService is what the HTTP layer needs from the application; *app.App
// satisfies it.
type ScanService interface {
	Scan(ctx context.Context, url string) (model.ScanResult, error)
	History(ctx context.Context, limit int) ([]store.ScanRecord, error)
}

// ScanRequest is the POST /scan body.
type ScanRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc ScanService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   "SafeBuy Compliance API",
			"status":    "running",
			"endpoints": []string{"/scan", "/history", "/download-report"},
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/scan", handleScan(svc))
	r.GET("/history", handleHistory(svc))
	r.POST("/download-report", handleDownloadReport())
	return r
}

func handleScan(svc ScanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a valid url is required"})
			return
		}
		result, err := svc.Scan(c.Request.Context(), req.URL)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, scrape.ErrFetch):
				status = http.StatusBadGateway
			case errors.Is(err, scrape.ErrParse):
				status = http.StatusUnprocessableEntity
			}
			log.Error().Err(err).Str("url", req.URL).Msg("scan failed")
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// historyDefaultLimit caps /history responses unless the caller asks for
// fewer; requests above the default are clamped back down.
const historyDefaultLimit = 100

func handleHistory(svc ScanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := historyDefaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			if n < limit {
				limit = n
			}
		}
		recs, err := svc.History(c.Request.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("history query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load scan history"})
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

// handleDownloadReport renders a previously returned scan result as a PDF.
// The client posts the merged result document back, matching the shape /scan
// responded with.
func handleDownloadReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var result model.ScanResult
		if err := c.ShouldBindJSON(&result); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a scan result body is required"})
			return
		}
		pdf, err := report.Generate(result)
		if err != nil {
			log.Error().Err(err).Msg("report rendering failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render report"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename=safebuy_report.pdf`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

// cors allows any origin; the service fronts a separate web UI.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
