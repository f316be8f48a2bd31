package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Доставка уведомлений best-effort: основной API, при его недоступности - резервный push-шлюз
type Client struct {
	baseURL    string
	pushURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
// pushURL может быть пустым - тогда резервной доставки нет
func NewClient(baseURL, pushURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		pushURL: pushURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет уведомление пользователю
// Сначала основной API, при любой его ошибке - резервный push-шлюз
// Возвращает ошибку только если не сработали оба канала
func (c *Client) Notify(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	notification := &Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   data,
	}

	primaryErr := c.send(ctx, c.baseURL+"/internal/notifications", notification)
	if primaryErr == nil {
		return nil
	}

	if c.pushURL == "" {
		c.log.Error("Notify: primary endpoint failed for user=%d, no push fallback configured: %v", userID, primaryErr)
		return fmt.Errorf("%w: user=%d: %v", ErrDeliveryFailed, userID, primaryErr)
	}

	c.log.Warn("Notify: primary endpoint failed for user=%d, falling back to push gateway: %v", userID, primaryErr)

	if fallbackErr := c.send(ctx, c.pushURL, notification); fallbackErr != nil {
		c.log.Error("Notify: push gateway also failed for user=%d: %v", userID, fallbackErr)
		return fmt.Errorf("%w: user=%d: primary=%v, fallback=%v", ErrDeliveryFailed, userID, primaryErr, fallbackErr)
	}

	c.log.Info("Notify: delivered to user=%d via push gateway", userID)
	return nil
}

// send отправляет уведомление на указанный endpoint
func (c *Client) send(ctx context.Context, url string, notification *Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
