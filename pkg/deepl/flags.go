package deepl

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Flags defines CLI flags to configure the DeepL API client. These flags can also
// be set using environment variables and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "deepl-auth-key",
			Usage: "DeepL API authentication key",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DEEPL_AUTH_KEY"),
				toml.TOML("deepl.auth_key", configFilePath),
			),
		},
		&cli.BoolFlag{
			Name:  "deepl-free-tier",
			Usage: "use the DeepL API Free endpoint instead of DeepL API Pro",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DEEPL_FREE_TIER"),
				toml.TOML("deepl.free_tier", configFilePath),
			),
		},
	}
}
