package slack

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/tzrikka/reactranslate/pkg/languages"
)

const (
	// ShortcutCallbackID must match the callback ID of
	// the global shortcut in the Slack app's configuration.
	ShortcutCallbackID = "translate_shortcut"
	// ModalCallbackID identifies submissions of the modal opened by the shortcut.
	ModalCallbackID = "translate_modal"

	textBlockID  = "text_block"
	textActionID = "text_input"
	langBlockID  = "lang_block"
	langActionID = "lang_input"

	defaultTargetLang = "EN"
)

// translationModal returns a modal view with two inputs: the
// text to translate, and the code of the target language.
// Based on https://docs.slack.dev/surfaces/modals.
func translationModal() slack.ModalViewRequest {
	text := slack.NewPlainTextInputBlockElement(plainText("Text to translate"), textActionID)
	text.Multiline = true

	lang := slack.NewPlainTextInputBlockElement(nil, langActionID)
	lang.InitialValue = defaultTargetLang

	hint := "For example: " + strings.Join(languages.TargetLanguages(), ", ")

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: ModalCallbackID,
		Title:      plainText("Translate"),
		Submit:     plainText("Translate"),
		Close:      plainText("Cancel"),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewInputBlock(textBlockID, plainText("Text"), nil, text),
				slack.NewInputBlock(langBlockID, plainText("Target language"), plainText(hint), lang),
			},
		},
	}
}

func plainText(s string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, s, false, false)
}

// modalValues extracts the (trimmed) user inputs from a submitted [translationModal].
func modalValues(state *slack.ViewState) (text, lang string) {
	if state == nil {
		return "", ""
	}

	text = strings.TrimSpace(state.Values[textBlockID][textActionID].Value)
	lang = strings.TrimSpace(state.Values[langBlockID][langActionID].Value)
	return
}
