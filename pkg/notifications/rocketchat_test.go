package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostToRocketChat(t *testing.T) {
	var received Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	payload := &Payload{
		Channel: "#builds",
		Text:    ":x: Job [*demo - #42*](http://ci/demo/42) failed",
		Attachments: []Attachment{
			{Title: "Tests", TitleLink: "http://ci/demo/42/testReport/", Color: "#ff0000", Text: ":x: 1 test(s) failed\n"},
		},
	}

	provider := NewRocketChatProvider(time.Second)
	err := provider.Post(context.Background(), payload, server.URL)
	assert.Nil(t, err)
	assert.Equal(t, *payload, received)
}

func TestPostReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	err := NewRocketChatProvider(time.Second).Post(context.Background(), &Payload{}, server.URL)

	var deliveryErr *DeliveryError
	assert.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, http.StatusInternalServerError, deliveryErr.StatusCode)
	assert.Equal(t, "boom", deliveryErr.Body)
}

func TestPostReportsRejectedMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"invalid channel"}`))
	}))
	defer server.Close()

	err := NewRocketChatProvider(time.Second).Post(context.Background(), &Payload{}, server.URL)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid channel")
}

func TestPostWithoutWebhook(t *testing.T) {
	err := NewRocketChatProvider(0).Post(context.Background(), &Payload{}, "")

	var deliveryErr *DeliveryError
	assert.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, 0, deliveryErr.StatusCode)
}

func TestPostUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewRocketChatProvider(time.Second).Post(context.Background(), &Payload{}, url)

	var deliveryErr *DeliveryError
	assert.True(t, errors.As(err, &deliveryErr))
}
