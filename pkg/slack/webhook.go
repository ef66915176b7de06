package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

const (
	// EventsPath is the URL path suffix for Events API requests.
	EventsPath = "events"
	// InteractionsPath is the URL path suffix for shortcut and modal payloads.
	InteractionsPath = "interactions"

	contentTypeHeader = "Content-Type"
	timestampHeader   = "X-Slack-Request-Timestamp"
	signatureHeader   = "X-Slack-Signature"

	// The maximum shift/delay that we allow between an inbound request's
	// timestamp, and our current timestamp, to defend against replay attacks.
	// See https://docs.slack.dev/authentication/verifying-requests-from-slack.
	maxDifference = 5 * time.Minute
)

// RequestData is an inbound HTTP request from Slack, after the HTTP
// server has read its body, and before it's verified by [Bot.WebhookHandler].
type RequestData struct {
	PathSuffix string // [EventsPath] or [InteractionsPath].
	Headers    http.Header
	Form       url.Values
	RawPayload []byte
}

// WebhookHandler verifies and acknowledges inbound HTTP requests from Slack,
// and dispatches them asynchronously to their handlers. It returns the HTTP
// status code to respond with, or 0 if the response was already written.
func (b *Bot) WebhookHandler(ctx context.Context, w http.ResponseWriter, r RequestData) int {
	l := zerolog.Ctx(ctx).With().Str("link_type", "slack").Str("link_medium", "webhook").Logger()

	statusCode := checkContentTypeHeader(l, r)
	if statusCode != http.StatusOK {
		return statusCode
	}

	statusCode = checkTimestampHeader(l, r)
	if statusCode != http.StatusOK {
		return statusCode
	}

	statusCode = b.checkSignatureHeader(l, r)
	if statusCode != http.StatusOK {
		return statusCode
	}

	// Slack expects a response within 3 seconds, so the actual
	// handling continues after the HTTP request is completed.
	ctx = context.WithoutCancel(l.WithContext(ctx))

	switch r.PathSuffix {
	case EventsPath:
		return b.eventsWebhook(ctx, l, w, r)
	case InteractionsPath:
		return b.interactionsWebhook(ctx, l, r)
	default:
		l.Warn().Str("path_suffix", r.PathSuffix).Msg("bad request: unexpected path")
		return http.StatusNotFound
	}
}

func (b *Bot) eventsWebhook(ctx context.Context, l zerolog.Logger, w http.ResponseWriter, r RequestData) int {
	if !json.Valid(r.RawPayload) {
		l.Warn().Msg("bad request: invalid JSON payload")
		return http.StatusBadRequest
	}

	e, err := slackevents.ParseEvent(json.RawMessage(r.RawPayload), slackevents.OptionNoVerifyToken())
	if err != nil {
		// Most likely an event type which slack-go doesn't recognize.
		l.Debug().Err(err).Msg("ignoring unparsable Slack event")
		return http.StatusOK
	}

	switch e.Type {
	// https://docs.slack.dev/reference/events/url_verification
	case slackevents.URLVerification:
		cr := &slackevents.ChallengeResponse{}
		if err := json.Unmarshal(r.RawPayload, cr); err != nil {
			l.Warn().Err(err).Msg("bad request: invalid URL verification event")
			return http.StatusBadRequest
		}

		l.Debug().Str("event_type", e.Type).Msg("replied to Slack URL verification event")
		w.Header().Add(contentTypeHeader, "text/plain")
		_, _ = w.Write([]byte(cr.Challenge))
		return 0 // [http.StatusOK] already written by "w.Write".

	case slackevents.CallbackEvent:
		go b.dispatchEvent(ctx, e.InnerEvent)

	default:
		l.Debug().Str("event_type", e.Type).Msg("ignoring Slack event")
	}

	return http.StatusOK
}

func (b *Bot) interactionsWebhook(ctx context.Context, l zerolog.Logger, r RequestData) int {
	payload := r.Form.Get("payload")
	if payload == "" {
		l.Warn().Msg("bad request: missing interaction payload")
		return http.StatusBadRequest
	}

	cb := slack.InteractionCallback{}
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		l.Warn().Err(err).Msg("bad request: invalid interaction payload")
		return http.StatusBadRequest
	}

	// An empty HTTP 200 response also closes a submitted modal.
	go b.dispatchInteraction(ctx, cb)
	return http.StatusOK
}

func checkContentTypeHeader(l zerolog.Logger, r RequestData) int {
	expected := "application/x-www-form-urlencoded"
	if r.PathSuffix == EventsPath {
		expected = "application/json"
	}

	v := r.Headers.Get(contentTypeHeader)
	if mediaType, _, _ := strings.Cut(v, ";"); strings.TrimSpace(mediaType) != expected {
		l.Warn().Str("header", contentTypeHeader).Str("got", v).Str("want", expected).
			Msg("bad request: unexpected header value")
		return http.StatusBadRequest
	}

	return http.StatusOK
}

func checkTimestampHeader(l zerolog.Logger, r RequestData) int {
	ts := r.Headers.Get(timestampHeader)
	if ts == "" {
		l.Warn().Str("header", timestampHeader).Msg("bad request: missing header")
		return http.StatusBadRequest
	}

	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		l.Warn().Str("header", timestampHeader).Str("got", ts).
			Msg("bad request: invalid header value")
		return http.StatusBadRequest
	}

	d := time.Since(time.Unix(secs, 0))
	if d.Abs() > maxDifference {
		l.Warn().Str("header", timestampHeader).Dur("difference", d).
			Msg("bad request: stale header value")
		return http.StatusBadRequest
	}

	return http.StatusOK
}

// checkSignatureHeader implements
// https://docs.slack.dev/authentication/verifying-requests-from-slack.
func (b *Bot) checkSignatureHeader(l zerolog.Logger, r RequestData) int {
	sig := r.Headers.Get(signatureHeader)
	if sig == "" {
		l.Warn().Str("header", signatureHeader).Msg("bad request: missing header")
		return http.StatusForbidden
	}

	if b.signingSecret == "" {
		l.Warn().Msg("signing secret is not configured")
		return http.StatusInternalServerError
	}

	sv, err := slack.NewSecretsVerifier(r.Headers, b.signingSecret)
	if err != nil {
		l.Warn().Err(err).Msg("bad request: signature verification error")
		return http.StatusForbidden
	}

	if _, err := sv.Write(r.RawPayload); err != nil {
		l.Err(err).Msg("HMAC write error")
		return http.StatusInternalServerError
	}

	if err := sv.Ensure(); err != nil {
		l.Warn().Err(err).Str("signature", sig).Msg("signature verification failed")
		return http.StatusForbidden
	}

	return http.StatusOK
}
