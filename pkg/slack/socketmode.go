package slack

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// acker acknowledges Socket Mode envelopes, see
// https://docs.slack.dev/apis/events-api/using-socket-mode#acknowledge.
type acker interface {
	Ack(req socketmode.Request, payload ...any)
}

// RunSocketMode connects to Slack over a Socket Mode WebSocket connection,
// instead of receiving HTTP webhooks. This is blocking, to keep the server
// running, until the context is canceled or the connection fails.
func (b *Bot) RunSocketMode(ctx context.Context, api *slack.Client, debug bool) error {
	sm := socketmode.New(api, socketmode.OptionDebug(debug))
	go b.relaySocketModeEvents(ctx, sm)

	zerolog.Ctx(ctx).Info().Msg("connecting to Slack in Socket Mode")
	return sm.RunContext(ctx)
}

// relaySocketModeEvents runs as a goroutine, to route Socket Mode events to their handlers.
func (b *Bot) relaySocketModeEvents(ctx context.Context, sm *socketmode.Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sm.Events:
			if !ok {
				return
			}
			b.socketModeEvent(ctx, sm, e)
		}
	}
}

// socketModeEvent acknowledges a single Socket Mode envelope, if needed,
// and dispatches its payload asynchronously, like [Bot.WebhookHandler].
func (b *Bot) socketModeEvent(ctx context.Context, a acker, e socketmode.Event) {
	l := *zerolog.Ctx(ctx)
	if e.Request != nil {
		l = l.With().Str("envelope_id", e.Request.EnvelopeID).Logger()
	}
	l = l.With().Str("link_type", "slack").Str("link_medium", "socket_mode").Logger()

	switch e.Type {
	case socketmode.EventTypeConnecting, socketmode.EventTypeConnected, socketmode.EventTypeHello:
		l.Debug().Str("socket_mode_event", string(e.Type)).Send()

	case socketmode.EventTypeConnectionError, socketmode.EventTypeInvalidAuth:
		l.Error().Str("socket_mode_event", string(e.Type)).Any("data", e.Data).Msg("Socket Mode connection error")

	case socketmode.EventTypeEventsAPI:
		if e.Request == nil {
			return
		}
		a.Ack(*e.Request)

		ev, ok := e.Data.(slackevents.EventsAPIEvent)
		if !ok {
			l.Warn().Msg("unexpected Events API payload type")
			return
		}
		if ev.Type == slackevents.CallbackEvent {
			go b.dispatchEvent(l.WithContext(ctx), ev.InnerEvent)
		}

	case socketmode.EventTypeInteractive:
		if e.Request == nil {
			return
		}
		a.Ack(*e.Request)

		cb, ok := e.Data.(slack.InteractionCallback)
		if !ok {
			l.Warn().Msg("unexpected interaction payload type")
			return
		}
		go b.dispatchInteraction(l.WithContext(ctx), cb)

	default:
		l.Trace().Str("socket_mode_event", string(e.Type)).Msg("ignoring Socket Mode event")
	}
}
