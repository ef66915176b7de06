// Package deepl is a minimal client of the [DeepL API] text translation endpoint.
//
// [DeepL API]: https://developers.deepl.com/api-reference/translate
package deepl

import (
	"context"
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
)

const (
	// FreeURL is the translation endpoint for DeepL API Free accounts.
	FreeURL = "https://api-free.deepl.com/v2/translate"
	// ProURL is the translation endpoint for DeepL API Pro accounts.
	ProURL = "https://api.deepl.com/v2/translate"

	authScheme = "DeepL-Auth-Key "
)

type translateRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
}

type translateResponse struct {
	Translations []translation `json:"translations"`
}

type translation struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

// Client sends translation requests to one of DeepL's two
// API endpoints, based on the account's subscription tier.
type Client struct {
	url     string
	authKey string
	http    *req.Client
}

// NewClient returns a [Client] that uses the free-tier endpoint if freeTier
// is true, or the pro-tier endpoint otherwise. The HTTP client's default
// timeout is kept as-is.
func NewClient(authKey string, freeTier bool) *Client {
	url := ProURL
	if freeTier {
		url = FreeURL
	}

	return &Client{
		url:     url,
		authKey: authKey,
		http:    req.C().SetUserAgent("reactranslate"),
	}
}

// Translate returns the translation of the given text into the given target
// language. Any failure (transport error, non-success HTTP status, malformed
// or empty response) is logged here, so callers only need to check whether
// the error is nil.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	l := zerolog.Ctx(ctx).With().Str("target_lang", targetLang).Logger()

	got, err := c.translate(ctx, text, targetLang)
	if err != nil {
		l.Error().Err(err).Msg("DeepL translation failed")
		return "", err
	}

	l.Debug().Str("detected_source_lang", got.DetectedSourceLanguage).Msg("DeepL translation succeeded")
	return got.Text, nil
}

func (c *Client) translate(ctx context.Context, text, targetLang string) (*translation, error) {
	result := &translateResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", authScheme+c.authKey).
		SetBody(&translateRequest{Text: []string{text}, TargetLang: targetLang}).
		SetSuccessResult(result).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to send or decode DeepL request: %w", err)
	}

	if !resp.IsSuccessState() {
		msg := resp.Status
		if body := resp.String(); body != "" {
			msg = fmt.Sprintf("%s: %s", msg, body)
		}
		return nil, errors.New(msg)
	}

	if len(result.Translations) == 0 {
		return nil, errors.New("empty list of translations in HTTP response")
	}

	return &result.Translations[0], nil
}
