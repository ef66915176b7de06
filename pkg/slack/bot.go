package slack

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/tzrikka/reactranslate/pkg/languages"
)

// API is the subset of the Slack Web API that the [Bot] uses.
type API interface {
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ API = (*slack.Client)(nil)

// Translator translates text into a target language. Implementations
// log their own failures, so callers only check for a nil error.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Bot handles Slack events and interactions. It has no mutable
// state, so it can handle any number of them concurrently.
type Bot struct {
	api           API
	translator    Translator
	resolver      *languages.Resolver
	signingSecret string
}

func NewBot(api API, t Translator, r *languages.Resolver, signingSecret string) *Bot {
	return &Bot{api: api, translator: t, resolver: r, signingSecret: signingSecret}
}

// NewAPI returns a Slack Web API client, which is also usable
// for Socket Mode if the configuration contains an app token.
func NewAPI(c *Config, debug bool) *slack.Client {
	opts := []slack.Option{slack.OptionDebug(debug)}
	if c.AppToken != "" {
		opts = append(opts, slack.OptionAppLevelToken(c.AppToken))
	}
	return slack.New(c.BotToken, opts...)
}

// dispatchEvent routes an Events API notification to its handler.
func (b *Bot) dispatchEvent(ctx context.Context, e slackevents.EventsAPIInnerEvent) {
	switch ev := e.Data.(type) {
	case *slackevents.ReactionAddedEvent:
		b.ReactionAdded(ctx, ev)
	case slackevents.ReactionAddedEvent:
		b.ReactionAdded(ctx, &ev)
	default:
		zerolog.Ctx(ctx).Debug().Str("event_type", e.Type).Msg("ignoring Slack event")
	}
}

// dispatchInteraction routes an interaction payload to its handler.
func (b *Bot) dispatchInteraction(ctx context.Context, cb slack.InteractionCallback) {
	l := zerolog.Ctx(ctx).With().Str("interaction_type", string(cb.Type)).Logger()

	switch cb.Type {
	case slack.InteractionTypeShortcut:
		if cb.CallbackID != ShortcutCallbackID {
			l.Debug().Str("callback_id", cb.CallbackID).Msg("ignoring unrecognized Slack shortcut")
			return
		}
		b.ShortcutInvoked(l.WithContext(ctx), cb.TriggerID)

	case slack.InteractionTypeViewSubmission:
		if cb.View.CallbackID != ModalCallbackID {
			l.Debug().Str("callback_id", cb.View.CallbackID).Msg("ignoring unrecognized Slack view")
			return
		}
		text, lang := modalValues(cb.View.State)
		b.ModalSubmitted(l.WithContext(ctx), cb.User.ID, text, lang)

	default:
		l.Debug().Msg("ignoring Slack interaction")
	}
}
