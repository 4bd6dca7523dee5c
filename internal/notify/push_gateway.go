package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

const pushPath = "/v1/push"

// PushGateway отправляет уведомления во внешний push-шлюз по HTTP.
type PushGateway struct {
	client *resty.Client
}

func NewPushGateway(baseURL, token string, timeout time.Duration) *PushGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	if token != "" {
		client.SetAuthToken(token)
	}
	return &PushGateway{client: client}
}

type pushPayload struct {
	UserID string            `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data"`
}

func (g *PushGateway) Notify(ctx context.Context, msg Message) error {
	payload := pushPayload{
		UserID: msg.RecipientID.String(),
		Title:  msg.Title,
		Body:   msg.Body,
		Data: map[string]string{
			"request_id": msg.RequestID.String(),
			"kind":       msg.Kind,
		},
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(pushPath)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeTransient, "push-шлюз недоступен")
	}

	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests:
		return apperror.Wrap(fmt.Errorf("push gateway status: %d", resp.StatusCode()), apperror.ErrCodeTransient, "push-шлюз временно недоступен")
	default:
		return fmt.Errorf("push gateway status: %d", resp.StatusCode())
	}
}
