package thrippy

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	DefaultServerAddr = "localhost:14460"
)

// Flags defines CLI flags to configure an optional Thrippy gRPC client, which
// supplies Slack secrets instead of the Slack flags. These flags can also be set
// using environment variables and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "thrippy-server-addr",
			Usage: "Thrippy gRPC server address",
			Value: DefaultServerAddr,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("THRIPPY_SERVER_ADDR"),
				toml.TOML("thrippy.server_addr", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "thrippy-server-ca-cert",
			Usage: "Thrippy server's CA cert file, for TLS (default: insecure connection)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("THRIPPY_SERVER_CA_CERT"),
				toml.TOML("thrippy.server_ca_cert", configFilePath),
			),
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "thrippy-link-id",
			Usage: "Thrippy link ID of a Slack app, to get its secrets from Thrippy",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("THRIPPY_LINK_ID"),
				toml.TOML("thrippy.link_id", configFilePath),
			),
		},
	}
}

// SecureCreds returns TLS transport credentials if a CA cert file is configured,
// or insecure credentials otherwise (appropriate only for local development).
func SecureCreds(cmd *cli.Command) (credentials.TransportCredentials, error) {
	path := cmd.String("thrippy-server-ca-cert")
	if path == "" {
		return insecureCreds(), nil
	}
	return credentials.NewClientTLSFromFile(path, "")
}

func insecureCreds() credentials.TransportCredentials {
	return insecure.NewCredentials()
}
