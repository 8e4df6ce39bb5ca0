package audit

import (
	"context"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"
)

// CredentialsClient builds an HTTP client that authenticates with the
// client-credentials grant and refreshes its token as needed. Pass the
// result to WithHTTPClient.
func CredentialsClient(ctx context.Context, tokenURL, clientID, clientSecret string, scopes []string) *http.Client {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}
	return cfg.Client(ctx)
}
