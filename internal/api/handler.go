package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vegtrace/internal/gateway"
)

// Handler relays HTTP requests to the chaincode through the gateway
// contract. Mutations submit, reads evaluate.
type Handler struct {
	contract gateway.Contract
	tracer   trace.Tracer
	log      *logrus.Logger
}

func NewHandler(contract gateway.Contract, tracer trace.Tracer, log *logrus.Logger) *Handler {
	return &Handler{contract: contract, tracer: tracer, log: log}
}

// CreateBatchRequest is the payload for registering a harvested batch.
type CreateBatchRequest struct {
	BatchID         string  `json:"batchId" binding:"required"`
	VegetableType   string  `json:"vegetableType" binding:"required"`
	FarmID          string  `json:"farmId" binding:"required"`
	FarmerName      string  `json:"farmerName" binding:"required"`
	HarvestDate     string  `json:"harvestDate" binding:"required"`
	InitialQuantity int     `json:"initialQuantity" binding:"required,gt=0"`
	PricePerKg      float64 `json:"pricePerKg" binding:"required"`
}

// UpdateLocationRequest is the payload for moving a batch. Zero is a legal
// remaining quantity, so the numeric fields are bounded rather than required.
type UpdateLocationRequest struct {
	NewLocation     string `json:"newLocation" binding:"required"`
	CurrentQuantity int    `json:"currentQuantity" binding:"gte=0"`
	Wastage         int    `json:"wastage" binding:"gte=0"`
	UpdatedBy       string `json:"updatedBy" binding:"required"`
}

// RecordWastageRequest is the payload for writing off spoiled quantity.
type RecordWastageRequest struct {
	WastageAmount int    `json:"wastageAmount" binding:"required,gt=0"`
	Reason        string `json:"reason" binding:"required"`
	UpdatedBy     string `json:"updatedBy" binding:"required"`
}

// Health reports API liveness and ledger reachability.
func (h *Handler) Health(c *gin.Context) {
	_, err := h.contract.EvaluateTransaction("BatchExists", "health-probe")
	fabric := "connected"
	if err != nil {
		fabric = "unreachable"
		h.log.WithError(err).Warn("health probe could not reach the ledger")
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "fabric": fabric})
}

// CreateBatch registers a new batch on the ledger.
func (h *Handler) CreateBatch(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "create_batch")
	defer span.End()

	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price := decimal.NewFromFloat(req.PricePerKg)
	if !price.IsPositive() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "pricePerKg must be positive"})
		return
	}

	span.SetAttributes(
		attribute.String("batch_id", req.BatchID),
		attribute.String("vegetable_type", req.VegetableType),
		attribute.Int("initial_quantity", req.InitialQuantity),
	)

	result, err := h.contract.SubmitTransaction("CreateBatch",
		req.BatchID, req.VegetableType, req.FarmID, req.FarmerName, req.HarvestDate,
		strconv.Itoa(req.InitialQuantity), price.String())
	if err != nil {
		h.fail(c, span, "CreateBatch", err)
		return
	}

	h.log.WithField("batchId", req.BatchID).Info("batch created")
	c.Data(http.StatusCreated, "application/json", result)
}

// ListBatches returns all batches with their ledger keys.
func (h *Handler) ListBatches(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "list_batches")
	defer span.End()

	result, err := h.contract.EvaluateTransaction("GetAllBatches")
	if err != nil {
		h.fail(c, span, "GetAllBatches", err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// GetBatch returns a single batch by id.
func (h *Handler) GetBatch(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "get_batch")
	defer span.End()

	batchID := c.Param("batchId")
	span.SetAttributes(attribute.String("batch_id", batchID))

	result, err := h.contract.EvaluateTransaction("GetBatch", batchID)
	if err != nil {
		h.fail(c, span, "GetBatch", err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// UpdateLocation moves a batch to a new location.
func (h *Handler) UpdateLocation(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "update_location")
	defer span.End()

	batchID := c.Param("batchId")
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("batch_id", batchID),
		attribute.String("new_location", req.NewLocation),
		attribute.Int("current_quantity", req.CurrentQuantity),
		attribute.Int("wastage", req.Wastage),
	)

	result, err := h.contract.SubmitTransaction("UpdateBatchLocation",
		batchID, req.NewLocation, strconv.Itoa(req.CurrentQuantity),
		strconv.Itoa(req.Wastage), req.UpdatedBy)
	if err != nil {
		h.fail(c, span, "UpdateBatchLocation", err)
		return
	}

	h.log.WithFields(logrus.Fields{"batchId": batchID, "location": req.NewLocation}).Info("batch moved")
	c.Data(http.StatusOK, "application/json", result)
}

// RecordWastage writes off spoiled quantity from a batch.
func (h *Handler) RecordWastage(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "record_wastage")
	defer span.End()

	batchID := c.Param("batchId")
	var req RecordWastageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("batch_id", batchID),
		attribute.Int("wastage_amount", req.WastageAmount),
	)

	result, err := h.contract.SubmitTransaction("RecordWastage",
		batchID, strconv.Itoa(req.WastageAmount), req.Reason, req.UpdatedBy)
	if err != nil {
		h.fail(c, span, "RecordWastage", err)
		return
	}

	h.log.WithFields(logrus.Fields{"batchId": batchID, "amount": req.WastageAmount}).Info("wastage recorded")
	c.Data(http.StatusOK, "application/json", result)
}

// GetHistory returns the batch event history.
func (h *Handler) GetHistory(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "get_history")
	defer span.End()

	batchID := c.Param("batchId")
	span.SetAttributes(attribute.String("batch_id", batchID))

	result, err := h.contract.EvaluateTransaction("GetBatchHistory", batchID)
	if err != nil {
		h.fail(c, span, "GetBatchHistory", err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// TrackByQR resolves a batch from a scanned QR code.
func (h *Handler) TrackByQR(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "track_by_qr")
	defer span.End()

	qrCode := c.Param("qrCode")
	span.SetAttributes(attribute.String("qr_code", qrCode))

	result, err := h.contract.EvaluateTransaction("TrackBatchByQR", qrCode)
	if err != nil {
		h.fail(c, span, "TrackBatchByQR", err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// Stats returns ledger-wide aggregate statistics.
func (h *Handler) Stats(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "get_statistics")
	defer span.End()

	result, err := h.contract.EvaluateTransaction("GetStatistics")
	if err != nil {
		h.fail(c, span, "GetStatistics", err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

func (h *Handler) fail(c *gin.Context, span trace.Span, operation string, err error) {
	span.RecordError(err)
	status := statusForError(err)
	h.log.WithError(err).WithFields(logrus.Fields{
		"operation": operation,
		"status":    status,
	}).Error("chaincode call failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
