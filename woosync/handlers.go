package woosync

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireAPIToken guards the management endpoints. The storefront webhook
// path authenticates with its HMAC signature instead and is not behind this.
func RequireAPIToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := strings.TrimSpace(os.Getenv("SYNC_API_TOKEN"))
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "SYNC_API_TOKEN is not configured"})
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Request = c.Request.WithContext(utils.SetTokenInContext(c.Request.Context(), got))
		c.Next()
	}
}

type ConnectRequest struct {
	StoreName      string `json:"storeName"`
	BaseURL        string `json:"baseUrl"`
	ConsumerKey    string `json:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret"`
	APIVersion     string `json:"apiVersion"`
	WebhookSecret  string `json:"webhookSecret"`
}

func ConnectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConnectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		input := models.NewWooConnection{
			StoreName:      req.StoreName,
			BaseURL:        strings.TrimSpace(req.BaseURL),
			ConsumerKey:    strings.TrimSpace(req.ConsumerKey),
			ConsumerSecret: strings.TrimSpace(req.ConsumerSecret),
			APIVersion:     req.APIVersion,
			WebhookSecret:  req.WebhookSecret,
		}
		if err := input.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}

		db := config.GetDB().WithContext(c.Request.Context())

		var conn models.WooConnection
		err := db.Order("id asc").Take(&conn).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			conn = models.WooConnection{
				StoreName:      input.StoreName,
				BaseURL:        input.BaseURL,
				ConsumerKey:    input.ConsumerKey,
				ConsumerSecret: input.ConsumerSecret,
				APIVersion:     input.APIVersion,
				WebhookSecret:  input.WebhookSecret,
				Status:         models.ConnectionStatusConnected,
			}
			if err := db.Create(&conn).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		} else {
			update := map[string]interface{}{
				"store_name":      input.StoreName,
				"base_url":        input.BaseURL,
				"consumer_key":    input.ConsumerKey,
				"consumer_secret": input.ConsumerSecret,
				"status":          models.ConnectionStatusConnected,
				"updated_at":      now,
			}
			if input.APIVersion != "" {
				update["api_version"] = input.APIVersion
			}
			if input.WebhookSecret != "" {
				update["webhook_secret"] = input.WebhookSecret
			}
			if err := db.Model(&conn).Updates(update).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "id": conn.ID})
	}
}

func DisconnectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := config.GetDB().WithContext(c.Request.Context())

		var conn models.WooConnection
		err := db.Order("id asc").Take(&conn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&conn).Updates(map[string]interface{}{
			"status":          models.ConnectionStatusDisconnected,
			"consumer_key":    "",
			"consumer_secret": "",
			"updated_at":      time.Now(),
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type statusResponse struct {
	Status            string  `json:"status"`
	StoreName         string  `json:"storeName"`
	BaseURL           string  `json:"baseUrl"`
	LastSyncAt        *string `json:"lastSyncAt"`
	LastSuccessSyncAt *string `json:"lastSuccessSyncAt"`
	CustomerPush      bool    `json:"customerPush"`
	OrderPush         bool    `json:"orderPush"`
}

func StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := config.GetDB().WithContext(c.Request.Context())

		var conn models.WooConnection
		err := db.Order("id asc").Take(&conn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, statusResponse{Status: models.ConnectionStatusDisconnected})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, statusResponse{
			Status:            conn.Status,
			StoreName:         conn.StoreName,
			BaseURL:           conn.BaseURL,
			LastSyncAt:        formatTime(conn.LastSyncAt),
			LastSuccessSyncAt: formatTime(conn.LastSuccessSyncAt),
			CustomerPush:      conn.EnableCustomerPush,
			OrderPush:         conn.EnableOrderPush,
		})
	}
}

type triggerSyncRequest struct {
	Type  string `json:"type"`
	After string `json:"after"`
}

// TriggerSyncHandler enqueues a sync job rather than running it inline, so
// the HTTP caller never waits on a full storefront page walk.
func TriggerSyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req triggerSyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		var jobType string
		switch req.Type {
		case "orders", "":
			jobType = JobOrderSync
		case "customers":
			jobType = JobCustomerPoll
		case "territories":
			jobType = JobTerritorySync
		case "outbound":
			jobType = JobOutboundSweep
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sync type"})
			return
		}

		if _, err := LoadActiveSyncConfig(c.Request.Context()); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "storefront is not connected"})
			return
		}

		correlationID, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		msg := config.SyncJobMessage{
			JobType:       jobType,
			AllowUpdate:   true,
			EnqueuedAt:    time.Now(),
			CorrelationId: correlationID,
		}
		id, err := config.PublishSyncJobWithResult(c.Request.Context(), msg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"queued": true, "messageId": id})
	}
}

type syncRunResponse struct {
	RunID       string  `json:"runId"`
	RunType     string  `json:"runType"`
	Status      string  `json:"status"`
	TriggeredBy string  `json:"triggeredBy"`
	Fetched     int     `json:"fetched"`
	Processed   int     `json:"processed"`
	Created     int     `json:"created"`
	Skipped     int     `json:"skipped"`
	Errors      int     `json:"errors"`
	StartedAt   *string `json:"startedAt"`
	FinishedAt  *string `json:"finishedAt"`
	DurationMs  int64   `json:"durationMs"`
}

func SyncHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		db := config.GetDB().WithContext(c.Request.Context())

		var runs []models.SyncRun
		if err := db.Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		items := make([]syncRunResponse, 0, len(runs))
		for _, run := range runs {
			items = append(items, mapRunToResponse(run))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func SyncRunDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		runID := c.Param("id")
		db := config.GetDB().WithContext(c.Request.Context())

		var run models.SyncRun
		if err := db.Where("run_id = ?", runID).Take(&run).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var errs []models.SyncError
		if err := db.Where("sync_run_id = ?", run.ID).Order("id desc").Find(&errs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		errItems := make([]gin.H, 0, len(errs))
		for _, e := range errs {
			errItems = append(errItems, gin.H{
				"entityType": e.EntityType,
				"externalId": e.ExternalID,
				"errorCode":  e.ErrorCode,
				"message":    e.Message,
				"retryable":  e.Retryable,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"run":     mapRunToResponse(run),
			"results": rawResults(run.ResultsJSON),
			"errors":  errItems,
		})
	}
}

// WebhookOrderHandler receives storefront order webhooks. Verification and
// classification happen on the raw body; accepted events are acknowledged
// immediately and processed from the queue, because the storefront retries
// slow responders and each retry would race the previous delivery.
func WebhookOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		signature := c.GetHeader("X-WC-Webhook-Signature")

		cfg, err := LoadActiveSyncConfig(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "storefront is not connected"})
			return
		}

		verdict, orderID := ClassifyWebhook(cfg.WebhookSecret, body, signature, config.WebhookSignatureRequired())
		switch verdict {
		case WebhookHandshake:
			c.JSON(http.StatusOK, gin.H{"success": true, "ack": "webhook handshake"})
		case WebhookRejected:
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid_signature"})
		case WebhookAccepted:
			correlationID, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			msg := config.SyncJobMessage{
				JobType:       JobOrderSync,
				ExternalID:    orderID,
				AllowUpdate:   true,
				EnqueuedAt:    time.Now(),
				CorrelationId: correlationID,
			}
			if err := config.PublishSyncJob(msg); err != nil {
				config.LogError(config.GetLogger(), moduleName, "WebhookOrderHandler", "enqueue order", orderID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"queued": true, "order_id": orderID})
		}
	}
}

// WebhookCustomerHandler receives storefront customer webhooks. Same
// verify-classify-enqueue shape as the order handler; the worker re-fetches
// the customer by id instead of trusting the delivered payload.
func WebhookCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		signature := c.GetHeader("X-WC-Webhook-Signature")

		cfg, err := LoadActiveSyncConfig(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "storefront is not connected"})
			return
		}

		verdict, customerID := ClassifyWebhook(cfg.WebhookSecret, body, signature, config.WebhookSignatureRequired())
		switch verdict {
		case WebhookHandshake:
			c.JSON(http.StatusOK, gin.H{"success": true, "ack": "webhook handshake"})
		case WebhookRejected:
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid_signature"})
		case WebhookAccepted:
			correlationID, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			msg := config.SyncJobMessage{
				JobType:       JobCustomerSync,
				ExternalID:    customerID,
				EnqueuedAt:    time.Now(),
				CorrelationId: correlationID,
			}
			if err := config.PublishSyncJob(msg); err != nil {
				config.LogError(config.GetLogger(), moduleName, "WebhookCustomerHandler", "enqueue customer", customerID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"queued": true, "customer_id": customerID})
		}
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func mapRunToResponse(run models.SyncRun) syncRunResponse {
	return syncRunResponse{
		RunID:       run.RunID,
		RunType:     run.RunType,
		Status:      run.Status,
		TriggeredBy: run.TriggeredBy,
		Fetched:     run.Fetched,
		Processed:   run.Processed,
		Created:     run.Created,
		Skipped:     run.Skipped,
		Errors:      run.Errors,
		StartedAt:   formatTime(run.StartedAt),
		FinishedAt:  formatTime(run.FinishedAt),
		DurationMs:  run.DurationMs,
	}
}

func rawResults(raw []byte) interface{} {
	if len(raw) == 0 {
		return []interface{}{}
	}
	var out interface{}
	if err := utils.UnmarshalFromJSON(raw, &out); err != nil {
		return []interface{}{}
	}
	return out
}
