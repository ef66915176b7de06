package slack

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

const repliesPageSize = 200

// ReactionAdded translates a message when someone reacts to it with an emoji
// that maps to a language, and posts the translation as a threaded reply.
// Unrecognized reactions are ignored silently, and failures are only logged.
// Based on https://docs.slack.dev/reference/events/reaction_added.
func (b *Bot) ReactionAdded(ctx context.Context, ev *slackevents.ReactionAddedEvent) {
	l := zerolog.Ctx(ctx).With().Str("event_type", ev.Type).Str("reaction", ev.Reaction).
		Str("channel_id", ev.Item.Channel).Str("message_ts", ev.Item.Timestamp).Logger()

	if ev.Item.Type != "message" {
		l.Debug().Str("item_type", ev.Item.Type).Msg("ignoring reaction to non-message item")
		return
	}

	lang, ok := b.resolver.Resolve(ev.Reaction)
	if !ok {
		l.Trace().Msg("reaction doesn't map to a language")
		return
	}

	l = l.With().Str("target_lang", lang).Logger()
	ctx = l.WithContext(ctx)

	msg := b.message(ctx, ev.Item.Channel, ev.Item.Timestamp)
	if msg == nil || msg.Text == "" {
		l.Debug().Msg("no message text to translate")
		return
	}

	translated, err := b.translator.Translate(ctx, msg.Text, lang)
	if err != nil {
		return // Already logged by the translator.
	}

	// Reply in the existing thread, if the message is already a part of one.
	threadTS := msg.ThreadTimestamp
	if threadTS == "" {
		threadTS = ev.Item.Timestamp
	}

	_, _, err = b.api.PostMessageContext(ctx, ev.Item.Channel,
		slack.MsgOptionText(translated, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		l.Error().Err(err).Msg("failed to post translation reply")
		return
	}

	l.Info().Msg("posted translation reply")
}

// message retrieves a single message, whether or not it's a threaded reply.
// Slack returns threads starting from their parent message, so this pages
// through the thread until it finds the entry with the given timestamp.
// Based on https://docs.slack.dev/reference/methods/conversations.replies.
func (b *Bot) message(ctx context.Context, channelID, ts string) *slack.Message {
	params := &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: ts,
		Inclusive: true,
		Limit:     repliesPageSize,
	}

	for {
		msgs, hasMore, cursor, err := b.api.GetConversationRepliesContext(ctx, params)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to retrieve Slack message")
			return nil
		}

		for i := range msgs {
			if msgs[i].Timestamp == ts {
				return &msgs[i]
			}
		}

		if !hasMore || cursor == "" {
			return nil
		}
		params.Cursor = cursor
	}
}
