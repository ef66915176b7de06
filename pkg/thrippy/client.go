package thrippy

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	thrippypb "github.com/tzrikka/thrippy-api/thrippy/v1"
)

const (
	timeout = 3 * time.Second
)

// Connection creates a gRPC client connection to the given Thrippy server address.
// It supports both secure and insecure connections, based on the given credentials.
func Connection(addr string, creds credentials.TransportCredentials) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
}

// slackSecretKeys are the credential names of Thrippy's Slack link templates.
var slackSecretKeys = []string{"signing_secret", "bot_token", "app_token", "client_id", "client_secret"}

// SlackSecrets returns the Slack app secrets of the Thrippy link configured in
// the "thrippy-link-id" flag. It returns nothing if that flag is not set, and
// an error if the link does not exist. Secrets that are not related to Slack
// apps are dropped, and empty ones are kept out of the result too.
func SlackSecrets(ctx context.Context, cmd *cli.Command) (map[string]string, error) {
	id := cmd.String("thrippy-link-id")
	if id == "" {
		return nil, nil
	}

	creds, err := SecureCreds(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load Thrippy TLS credentials: %w", err)
	}

	m, err := linkSecrets(ctx, cmd.String("thrippy-server-addr"), creds, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get Slack secrets from Thrippy: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("Thrippy link not found: %s", id)
	}

	secrets := lo.PickBy(m, func(k, v string) bool {
		return v != "" && slices.Contains(slackSecretKeys, k)
	})
	zerolog.Ctx(ctx).Info().Str("link_id", id).Strs("secrets", lo.Keys(secrets)).
		Msg("loaded Slack secrets from Thrippy")

	return secrets, nil
}

// linkSecrets returns the saved secrets of a given Thrippy link.
// This function reports gRPC errors, but if the link is not found it returns nothing.
func linkSecrets(ctx context.Context, grpcAddr string, creds credentials.TransportCredentials, linkID string) (map[string]string, error) {
	l := zerolog.Ctx(ctx).With().Str("link_id", linkID).Logger()

	conn, err := Connection(grpcAddr, creds)
	if err != nil {
		l.Error().Stack().Err(err).Send()
		return nil, err
	}
	defer conn.Close()

	c := thrippypb.NewThrippyServiceClient(conn)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.GetCredentials(ctx, thrippypb.GetCredentialsRequest_builder{
		LinkId: proto.String(linkID),
	}.Build())
	if err != nil {
		if status.Code(err) != codes.NotFound {
			l.Error().Stack().Err(err).Msg("failed to get Thrippy link credentials")
			return nil, err
		}
		return nil, nil
	}

	// Distinguish between a link without secrets and a missing link.
	if resp.GetCredentials() == nil {
		return map[string]string{}, nil
	}
	return resp.GetCredentials(), nil
}
