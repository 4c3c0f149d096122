package warehouse

import (
	"google.golang.org/api/option"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// ClientOptions translates client settings into Google API client options.
// An endpoint override targets an emulator, which takes no credentials.
func ClientOptions(cfg bqseed.ClientConfig) []option.ClientOption {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
		return opts
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, cfg.CredentialsFile))
	}
	return opts
}
