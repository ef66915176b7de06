package languages

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Flags defines CLI flags to configure the language [Resolver]. These flags can
// also be set using environment variables and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "ignore-emoji-patterns",
			Usage: "case-insensitive substrings of emoji names that never trigger translations",
			Value: []string{DefaultIgnorePattern},
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("IGNORE_EMOJI_PATTERNS"),
				toml.TOML("languages.ignore_patterns", configFilePath),
			),
		},
	}
}
