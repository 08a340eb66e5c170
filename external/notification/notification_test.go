package notification_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-nearby/external/notification"
)

func TestSend(t *testing.T) {
	var received notification.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	g := notification.New(ts.URL, &http.Client{Timeout: time.Second})
	err := g.Send(context.Background(), &notification.Request{
		ActorID:  "userA",
		Contents: map[string]string{"en": "hello"},
		Data:     map[string]interface{}{"notification_type": "CONTACT_SHARED"},
	})
	assert.Nil(t, err, "wrong Send")
	assert.Equal(t, "userA", received.ActorID)
	assert.Equal(t, "hello", received.Contents["en"])
	assert.Equal(t, "CONTACT_SHARED", received.Data["notification_type"])
}

func TestSendRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":["unknown actor"]}`))
	}))
	defer ts.Close()

	g := notification.New(ts.URL, http.DefaultClient)
	err := g.Send(context.Background(), &notification.Request{ActorID: "nobody"})
	assert.EqualError(t, err, "notification gateway: unknown actor")
}

func TestSendWithoutGateway(t *testing.T) {
	g := notification.New("", http.DefaultClient)
	assert.Error(t, g.Send(context.Background(), &notification.Request{}))
}
