package zmail

import (
	"golang.org/x/oauth2"

	"github.com/wearewright/zmail-proxy/internal/config"
)

// OAuthConfig builds the oauth2 configuration for the provider. The token
// endpoint authenticates the app with HTTP Basic (client id/secret in the
// Authorization header), which is what AuthStyleInHeader produces.
func OAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthBaseURL + "/oauth/authorize",
			TokenURL:  cfg.AuthBaseURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}
