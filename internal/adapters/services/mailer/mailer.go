// Package mailer delivers transactional email through an HTTP mail provider.
package mailer

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
	"go.opentelemetry.io/otel/attribute"

	"github.com/redacok/redacok-backend/internal/domain/valueobject/mail"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	fromName   string
	fromEmail  string
	httpClient *http.Client
}

type Args struct {
	BaseURL   string
	APIKey    string
	FromName  string
	FromEmail string
}

func NewClient(args Args) *Client {
	return &Client{
		baseURL:   args.BaseURL,
		apiKey:    args.APIKey,
		fromName:  args.FromName,
		fromEmail: args.FromEmail,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var (
	tracer = otel.Tracer("redacok/internal/adapters/services/mailer")
	logger = otelslog.NewLogger("redacok/internal/adapters/services/mailer")
)

type sendRequest struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
}

func (c *Client) SendMail(ctx context.Context, payload mail.Payload) error {
	const op = "mailer.Client.SendMail"
	ctx, span := tracer.Start(ctx, "Client.SendMail")
	defer span.End()
	span.SetAttributes(attribute.String("mail.subject", payload.Subject))

	body, err := json.Marshal(sendRequest{
		FromName:  c.fromName,
		FromEmail: c.fromEmail,
		To:        payload.To,
		Subject:   payload.Subject,
		Text:      payload.Body,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to marshal mail request")
		return errorx.Wrap(err, op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to build mail request")
		return errorx.Wrap(err, op)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		otelx.RecordSpanError(span, err, "mail provider request failed")
		return errorx.Wrap(err, op)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := errorx.NewInternalError().WithCause(
			fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, respBody),
		)
		otelx.RecordSpanError(span, err, "mail provider rejected message")
		return errorx.Wrap(err, op)
	}

	logger.InfoContext(ctx, "mail accepted by provider", "subject", payload.Subject)
	return nil
}
