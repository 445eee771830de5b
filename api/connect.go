package api

import (
	"context"
	"net/http"

	"github.com/pending-expense/pending-expense-app/config"
	"github.com/pending-expense/pending-expense-app/expenses"
	"github.com/pending-expense/pending-expense-app/google"
)

// Connect is the default Connector: it validates the configuration and opens a Google
// Sheets source authorised with the service account credentials.
func Connect(ctx context.Context, c *config.Config) (expenses.Source, error) {
	return connect(ctx, c, func(key []byte, scopes ...string) (expenses.Source, error) {
		client, err := google.ServiceAccount(ctx, key, scopes...)
		if err != nil {
			return nil, err
		}

		return open(ctx, client)
	})
}

// OAuthConnector returns a Connector that also accepts OAuth client credentials, using the
// access token cached in the tokens file.
func OAuthConnector(tokens string) Connector {
	return func(ctx context.Context, c *config.Config) (expenses.Source, error) {
		return connect(ctx, c, func(key []byte, scopes ...string) (expenses.Source, error) {
			client, err := google.Authorize(ctx, key, tokens, scopes...)
			if err != nil {
				return nil, err
			}

			return open(ctx, client)
		})
	}
}

func connect(ctx context.Context, c *config.Config, dial func([]byte, ...string) (expenses.Source, error)) (expenses.Source, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	key, err := c.Key()
	if err != nil {
		return nil, err
	}

	return dial(key, Scopes(c)...)
}

func open(ctx context.Context, client *http.Client) (expenses.Source, error) {
	source, err := google.NewSheets(ctx, client)
	if err != nil {
		return nil, err
	}

	return source, nil
}

// Scopes returns the OAuth scopes needed for the configuration.
func Scopes(c *config.Config) []string {
	scopes := []string{google.SHEETS}
	if c.Expenses.LastUpdate.Source == config.SOURCE_DRIVE {
		scopes = append(scopes, google.DRIVE)
	}

	return scopes
}
