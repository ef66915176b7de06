package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/reactranslate/pkg/deepl"
	"github.com/tzrikka/reactranslate/pkg/http"
	"github.com/tzrikka/reactranslate/pkg/languages"
	"github.com/tzrikka/reactranslate/pkg/slack"
	"github.com/tzrikka/reactranslate/pkg/thrippy"
	"github.com/tzrikka/xdg"
)

const (
	ConfigDirName  = "reactranslate"
	ConfigFileName = "config.toml"
)

func main() {
	// Local development convenience, a missing file is not an error.
	_ = godotenv.Load()

	buildInfo, _ := debug.ReadBuildInfo()
	configFilePath := configFile()

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "simple setup, but unsafe for production",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "verbose logging, including Slack API calls",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DEBUG"),
				toml.TOML("log.debug", configFilePath),
			),
		},
	}
	flags = append(flags, http.Flags(configFilePath)...)
	flags = append(flags, slack.Flags(configFilePath)...)
	flags = append(flags, deepl.Flags(configFilePath)...)
	flags = append(flags, languages.Flags(configFilePath)...)
	flags = append(flags, thrippy.Flags(configFilePath)...)

	cmd := &cli.Command{
		Name:    "reactranslate",
		Usage:   "Translate Slack messages with emoji reactions and a global shortcut",
		Version: buildInfo.Main.Version,
		Flags:   flags,
		Action:  http.Start,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// configFile returns the path to the app's configuration file.
// It also creates an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, ConfigDirName, ConfigFileName)
	if err != nil {
		log.Fatal().Err(err).Caller().Send()
	}
	return altsrc.StringSourcer(path)
}
