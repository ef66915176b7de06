package http

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/reactranslate/pkg/deepl"
	"github.com/tzrikka/reactranslate/pkg/languages"
	"github.com/tzrikka/reactranslate/pkg/slack"
)

// Start initializes logging, the Slack and DeepL clients, and then either
// an HTTP server for Slack webhooks, or a Slack Socket Mode connection.
func Start(ctx context.Context, cmd *cli.Command) error {
	debug := cmd.Bool("debug")
	initLog(cmd.Bool("dev"), debug)
	ctx = log.Logger.WithContext(ctx)

	cfg, err := slack.NewConfig(ctx, cmd)
	if err != nil {
		return err
	}

	authKey := cmd.String("deepl-auth-key")
	if authKey == "" {
		return errors.New("missing DeepL auth key")
	}

	api := slack.NewAPI(cfg, debug)
	bot := slack.NewBot(api,
		deepl.NewClient(authKey, cmd.Bool("deepl-free-tier")),
		languages.NewResolver(cmd.StringSlice("ignore-emoji-patterns")),
		cfg.SigningSecret,
	)

	if cfg.SocketMode() {
		return bot.RunSocketMode(ctx, api, debug)
	}
	return newHTTPServer(cmd, bot, slack.NewOAuth(cfg)).run()
}

// initLog initializes the global logger, based on whether
// it's running in development mode or not, and on verbosity.
func initLog(devMode, debug bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	if !devMode {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05.000",
	}).With().Caller().Logger()

	log.Warn().Msg("********** DEV MODE - UNSAFE IN PRODUCTION! **********")
}
