package slack

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Flags defines CLI flags to configure the Slack app's credentials. These flags can
// also be set using environment variables and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "slack-signing-secret",
			Usage: "Slack app's signing secret, to verify HTTP webhooks",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_SIGNING_SECRET"),
				toml.TOML("slack.signing_secret", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-bot-token",
			Usage: "Slack app's bot user OAuth token",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_BOT_TOKEN"),
				toml.TOML("slack.bot_token", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-app-token",
			Usage: "Slack app-level token, to use Socket Mode instead of HTTP webhooks",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_APP_TOKEN"),
				toml.TOML("slack.app_token", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-client-id",
			Usage: "Slack app's OAuth client ID, for app installations",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_CLIENT_ID"),
				toml.TOML("slack.client_id", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-client-secret",
			Usage: "Slack app's OAuth client secret, for app installations",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_CLIENT_SECRET"),
				toml.TOML("slack.client_secret", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-state-secret",
			Usage: "secret to sign OAuth state parameters, for app installations",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_STATE_SECRET"),
				toml.TOML("slack.state_secret", configFilePath),
			),
		},
	}
}
