package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// ShortcutInvoked opens the translation modal for the user who invoked
// the app's global shortcut. Based on https://docs.slack.dev/interactivity/implementing-shortcuts.
func (b *Bot) ShortcutInvoked(ctx context.Context, triggerID string) {
	l := zerolog.Ctx(ctx)

	if _, err := b.api.OpenViewContext(ctx, triggerID, translationModal()); err != nil {
		l.Error().Err(err).Msg("failed to open translation modal")
		return
	}

	l.Debug().Msg("opened translation modal")
}

// ModalSubmitted translates the text submitted in the translation modal, and
// sends the result to the submitting user as a direct message. The target
// language is passed to the translator as-is (only uppercased), without
// emoji resolution. If the translation fails, the user isn't notified.
func (b *Bot) ModalSubmitted(ctx context.Context, userID, text, lang string) {
	l := zerolog.Ctx(ctx).With().Str("user_id", userID).Str("target_lang", lang).Logger()
	ctx = l.WithContext(ctx)

	if text == "" || lang == "" {
		l.Debug().Msg("missing text or target language in modal submission")
		return
	}
	lang = strings.ToUpper(lang)

	translated, err := b.translator.Translate(ctx, text, lang)
	if err != nil {
		return // Already logged by the translator.
	}

	// Posting to a user ID sends a DM from the app's bot user.
	_, _, err = b.api.PostMessageContext(ctx, userID, slack.MsgOptionText(directMessage(text, lang, translated), false))
	if err != nil {
		l.Error().Err(err).Msg("failed to send translation DM")
		return
	}

	l.Info().Msg("sent translation DM")
}

func directMessage(text, lang, translated string) string {
	return fmt.Sprintf("*Original text:*\n%s\n\n*Translation (%s):*\n%s", text, lang, translated)
}
