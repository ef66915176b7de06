package slack

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/tzrikka/reactranslate/pkg/thrippy"
)

// Config contains the Slack app's credentials. They are read once at startup.
type Config struct {
	SigningSecret string
	BotToken      string
	AppToken      string

	ClientID     string
	ClientSecret string
	StateSecret  string
}

// NewConfig initializes the Slack app's credentials based on the CLI flags
// defined in [Flags], and then overrides them with the secrets of a Thrippy
// link, if the "thrippy-link-id" flag is set.
func NewConfig(ctx context.Context, cmd *cli.Command) (*Config, error) {
	c := &Config{
		SigningSecret: cmd.String("slack-signing-secret"),
		BotToken:      cmd.String("slack-bot-token"),
		AppToken:      cmd.String("slack-app-token"),

		ClientID:     cmd.String("slack-client-id"),
		ClientSecret: cmd.String("slack-client-secret"),
		StateSecret:  cmd.String("slack-state-secret"),
	}

	secrets, err := thrippy.SlackSecrets(ctx, cmd)
	if err != nil {
		return nil, err
	}
	c.override(secrets)

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// override replaces configured credentials with non-empty secrets from Thrippy.
func (c *Config) override(secrets map[string]string) {
	for k, v := range map[string]*string{
		"signing_secret": &c.SigningSecret,
		"bot_token":      &c.BotToken,
		"app_token":      &c.AppToken,
		"client_id":      &c.ClientID,
		"client_secret":  &c.ClientSecret,
	} {
		if s := secrets[k]; s != "" {
			*v = s
		}
	}
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return errors.New("missing Slack bot token")
	}
	// Socket Mode doesn't sign payloads, HTTP webhooks do.
	if c.AppToken == "" && c.SigningSecret == "" {
		return errors.New("missing Slack signing secret (required without an app token)")
	}
	return nil
}

// SocketMode reports whether the app connects to Slack over Socket Mode.
func (c *Config) SocketMode() bool {
	return c.AppToken != ""
}
