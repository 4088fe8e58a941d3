package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 10 * time.Second

// Notifier delivers a payload to a chat webhook
type Notifier interface {
	Post(ctx context.Context, payload *Payload, targetURL string) error
}

// DeliveryError is returned when a payload could not be handed over to Rocket.Chat
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not post to rocket.chat, status: %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("could not post to rocket.chat: %s", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type RocketChatProvider struct {
	client *http.Client
}

func NewRocketChatProvider(timeout time.Duration) *RocketChatProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RocketChatProvider{
		client: &http.Client{Timeout: timeout},
	}
}

// Post makes a single attempt to deliver the payload to an incoming webhook
func (r *RocketChatProvider) Post(ctx context.Context, payload *Payload, targetURL string) error {
	if targetURL == "" {
		return &DeliveryError{Err: errors.New("webhook url is not set")}
	}

	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(payload)
	if err != nil {
		return &DeliveryError{Err: errors.Wrap(err, "cannot encode payload")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, b)
	if err != nil {
		return &DeliveryError{Err: errors.Wrap(err, "cannot create request")}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := r.client.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &DeliveryError{StatusCode: res.StatusCode, Err: errors.Wrap(err, "cannot read response")}
	}
	logrus.Debugf("rocket.chat response: %s", string(body))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &DeliveryError{
			StatusCode: res.StatusCode,
			Body:       string(body),
			Err:        errors.Errorf("unexpected status %s", res.Status),
		}
	}

	var parsed map[string]interface{}
	if json.Unmarshal(body, &parsed) == nil {
		if val, ok := parsed["success"]; ok && val != true {
			return &DeliveryError{
				StatusCode: res.StatusCode,
				Body:       string(body),
				Err:        errors.Errorf("rocket.chat rejected the message: %v", parsed["error"]),
			}
		}
	}

	return nil
}
