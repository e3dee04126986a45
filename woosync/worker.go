package woosync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/utils"
	"github.com/gin-gonic/gin"
)

// Job types carried in the SyncJobMessage envelope.
const (
	JobOrderSync     = "order_sync"
	JobCustomerSync  = "customer_sync"
	JobCustomerPoll  = "customer_poll"
	JobTerritorySync = "territory_sync"
	JobCustomerPush  = "customer_push"
	JobInvoicePush   = "invoice_push"
	JobOutboundSweep = "outbound_sweep"
)

type PubSubPushEnvelope struct {
	Message struct {
		Data []byte `json:"data"`
		ID   string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PubSubPushHandler accepts Pub/Sub push deliveries of queued sync jobs.
// It always answers 204: a non-2xx would make Pub/Sub redeliver forever,
// and every job here is safe to lose one delivery of because the reconcile
// sweep re-enqueues anything still out of state.
func PubSubPushHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !envBoolDefault("ENABLE_SYNC_PUBSUB_PUSH_ENDPOINT", true) {
			c.Status(204)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(204)
			return
		}

		var envelope PubSubPushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.Status(204)
			return
		}

		var msg config.SyncJobMessage
		if err := json.Unmarshal(envelope.Message.Data, &msg); err != nil {
			c.Status(204)
			return
		}
		if msg.JobType == "" {
			c.Status(204)
			return
		}

		ctx := c.Request.Context()
		if msg.CorrelationId != "" {
			ctx = utils.SetCorrelationIdInContext(ctx, msg.CorrelationId)
		}

		if err := DispatchJob(ctx, msg); err != nil {
			config.LogError(config.GetLogger(), moduleName, "PubSubPushHandler", "job failed", msg, err)
		}
		c.Status(204)
	}
}

// DispatchJob runs one queued sync job to completion.
func DispatchJob(ctx context.Context, msg config.SyncJobMessage) error {
	cfg, err := LoadActiveSyncConfig(ctx)
	if err != nil {
		return err
	}

	switch msg.JobType {
	case JobOrderSync:
		if msg.ExternalID > 0 {
			return processOrderByID(ctx, cfg, msg)
		}
		_, err := SyncRecentOrders(ctx, cfg, "", models.SyncTriggeredWebhook)
		return err

	case JobCustomerSync:
		if msg.ExternalID <= 0 {
			return errors.New("customer_sync: missing external id")
		}
		return SyncCustomerByID(ctx, cfg, msg.ExternalID)

	case JobCustomerPoll:
		_, err := SyncRecentCustomers(ctx, cfg, models.SyncTriggeredCron)
		return err

	case JobTerritorySync:
		_, err := SyncTerritories(ctx, cfg, models.SyncTriggeredCron)
		return err

	case JobCustomerPush:
		id, err := strconv.Atoi(msg.LocalRef)
		if err != nil {
			return errors.New("customer_push: invalid local_ref")
		}
		err = PushCustomer(ctx, cfg, id)
		if errors.Is(err, ErrOutboundDisabled) {
			return nil
		}
		return err

	case JobInvoicePush:
		id, err := strconv.Atoi(msg.LocalRef)
		if err != nil {
			return errors.New("invoice_push: invalid local_ref")
		}
		err = PushInvoice(ctx, cfg, id)
		if errors.Is(err, ErrOutboundDisabled) {
			return nil
		}
		return err

	case JobOutboundSweep:
		_, err := ReconcileOutboundState(ctx, cfg, 100)
		if errors.Is(err, ErrOutboundDisabled) {
			return nil
		}
		return err

	default:
		return errors.New("unknown job type " + msg.JobType)
	}
}

// processOrderByID handles the single-order webhook path: the webhook
// enqueued just the id, so the full payload is re-fetched from the
// storefront rather than trusted from the delivery.
func processOrderByID(ctx context.Context, cfg models.SyncConfig, msg config.SyncJobMessage) error {
	client, err := newWooClient(cfg)
	if err != nil {
		return err
	}
	order, err := client.GetOrder(ctx, msg.ExternalID)
	if err != nil {
		return err
	}

	outcome := ProcessOrder(ctx, cfg, order, msg.AllowUpdate, msg.IsHistorical)
	if outcome.Status == OutcomeError {
		return errors.New(outcome.Reason)
	}
	return nil
}

// LoadActiveSyncConfig snapshots the connected storefront's configuration.
func LoadActiveSyncConfig(ctx context.Context) (models.SyncConfig, error) {
	db := config.GetDB()
	if db == nil {
		return models.SyncConfig{}, errors.New("db is nil")
	}

	var conn models.WooConnection
	err := db.WithContext(ctx).
		Where("status = ?", models.ConnectionStatusConnected).
		Order("id asc").
		Take(&conn).Error
	if err != nil {
		return models.SyncConfig{}, models.ErrConnectionNotConfigured
	}
	return conn.SyncConfig(), nil
}

func envBoolDefault(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}
