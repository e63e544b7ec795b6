// Package sms delivers text messages through an HTTP SMS gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/redacok/redacok-backend/internal/domain/valueobject/sms"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

type Args struct {
	BaseURL  string
	APIKey   string
	SenderID string
}

func NewClient(args Args) *Client {
	return &Client{
		baseURL:  args.BaseURL,
		apiKey:   args.APIKey,
		senderID: args.SenderID,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var (
	tracer = otel.Tracer("redacok/internal/adapters/services/sms")
	logger = otelslog.NewLogger("redacok/internal/adapters/services/sms")
)

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (c *Client) SendSMS(ctx context.Context, message sms.Message) error {
	const op = "sms.Client.SendSMS"
	ctx, span := tracer.Start(ctx, "Client.SendSMS")
	defer span.End()

	body, err := json.Marshal(sendRequest{
		From: c.senderID,
		To:   message.To,
		Body: message.Body,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to marshal sms request")
		return errorx.Wrap(err, op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sms", bytes.NewReader(body))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to build sms request")
		return errorx.Wrap(err, op)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		otelx.RecordSpanError(span, err, "sms gateway request failed")
		return errorx.Wrap(err, op)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := errorx.NewInternalError().WithCause(
			fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, respBody),
		)
		otelx.RecordSpanError(span, err, "sms gateway rejected message")
		return errorx.Wrap(err, op)
	}

	logger.InfoContext(ctx, "sms accepted by gateway")
	return nil
}
