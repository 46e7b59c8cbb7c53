package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codetogether-api/internal/metrics"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationApplicationReceived NotificationType = "APPLICATION_RECEIVED"
	NotificationApplicationApproved NotificationType = "APPLICATION_APPROVED"
	NotificationApplicationRejected NotificationType = "APPLICATION_REJECTED"
)

// NotificationEvent represents a notification to be sent
type NotificationEvent struct {
	Type         NotificationType       `json:"type"`
	ActorID      uuid.UUID              `json:"actorId"`
	TargetUserID uuid.UUID              `json:"targetUserId"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   uuid.UUID              `json:"resourceId"`
	ResourceName string                 `json:"resourceName,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// NotificationClient delivers events to the notification service.
// Delivery failures are logged and swallowed; only local errors are returned.
type NotificationClient interface {
	SendNotification(ctx context.Context, event NotificationEvent) error
}

type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a new Notification API client
func NewNotificationClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	return &notificationClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
	}
}

func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	url := fmt.Sprintf("%s/api/internal/notifications", c.baseURL)

	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send notification",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.Duration("duration", duration),
		)
		return nil
	}
	defer resp.Body.Close()

	if statusCode < 200 || statusCode >= 300 {
		c.logger.Warn("Notification service returned non-success status",
			zap.Int("status_code", statusCode),
			zap.String("type", string(event.Type)),
		)
		return nil
	}

	c.logger.Debug("Notification sent",
		zap.String("type", string(event.Type)),
		zap.String("target_user_id", event.TargetUserID.String()),
		zap.Duration("duration", duration),
	)
	return nil
}

// NoOpNotificationClient is used when no notification service is configured
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}
