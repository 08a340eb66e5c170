package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
)

var (
	errEmptyGateway = fmt.Errorf("empty notification gateway")
)

// Request is a push notification addressed to one actor
type Request struct {
	ActorID  string                 `json:"actor_id"`
	Headings map[string]string      `json:"headings,omitempty"`
	Contents map[string]string      `json:"contents"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

// Gateway forwards notifications to the push delivery service
type Gateway interface {
	Send(ctx context.Context, req *Request) error
}

type gateway struct {
	url    string
	client *http.Client
}

func (g gateway) Send(ctx context.Context, req *Request) error {
	if g.url == "" {
		return errEmptyGateway
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	r, err := http.NewRequest(http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	r = r.WithContext(ctx)
	r.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d, _ := ioutil.ReadAll(resp.Body)

		var e errorResponse
		if err := json.Unmarshal(d, &e); err == nil && len(e.Errors) > 0 {
			return fmt.Errorf("notification gateway: %s", strings.Join(e.Errors, "; "))
		}
		return fmt.Errorf("notification gateway responded %d", resp.StatusCode)
	}

	return nil
}

func New(url string, client *http.Client) Gateway {
	return &gateway{
		url:    url,
		client: client,
	}
}
