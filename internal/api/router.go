package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const requestIDHeader = "X-Request-ID"

// NewRouter wires the API routes. The route set mirrors the operations the
// ledger exposes, one endpoint per chaincode operation plus health.
func NewRouter(h *Handler, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("veg-api"))
	r.Use(requestID())
	r.Use(requestLogger(log))

	r.GET("/api/health", h.Health)
	r.POST("/api/batches", h.CreateBatch)
	r.GET("/api/batches", h.ListBatches)
	r.GET("/api/batches/:batchId", h.GetBatch)
	r.PUT("/api/batches/:batchId/location", h.UpdateLocation)
	r.PUT("/api/batches/:batchId/wastage", h.RecordWastage)
	r.GET("/api/batches/:batchId/history", h.GetHistory)
	r.GET("/api/track/:qrCode", h.TrackByQR)
	r.GET("/api/stats", h.Stats)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.FullPath(),
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
			"requestID": c.GetString("requestID"),
		}).Info("request completed")
	}
}
