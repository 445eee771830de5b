package google

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/pending-expense/pending-expense-app/expenses"
)

const (
	SHEETS = sheets.SpreadsheetsReadonlyScope
	DRIVE  = drive.DriveMetadataReadonlyScope
)

type credentials struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// ServiceAccount returns an HTTP client authorised with the service account key in the
// credentials JSON.
func ServiceAccount(ctx context.Context, key []byte, scopes ...string) (*http.Client, error) {
	var c credentials

	if err := json.Unmarshal(key, &c); err != nil {
		return nil, misconfigured(err)
	} else if c.ClientEmail == "" || c.PrivateKey == "" {
		return nil, misconfigured(nil)
	}

	config, err := google.JWTConfigFromJSON(key, scopes...)
	if err != nil {
		return nil, misconfigured(err)
	}

	return config.Client(ctx), nil
}

// Authorize returns an HTTP client for either a service account key or an OAuth client
// credentials file. OAuth clients use the access/refresh token cached in the tokens file by
// the 'authorise' command.
func Authorize(ctx context.Context, key []byte, tokens string, scopes ...string) (*http.Client, error) {
	var c credentials

	if err := json.Unmarshal(key, &c); err != nil {
		return nil, misconfigured(err)
	}

	if c.Type == "service_account" {
		return ServiceAccount(ctx, key, scopes...)
	}

	config, err := google.ConfigFromJSON(key, scopes...)
	if err != nil {
		return nil, misconfigured(err)
	}

	token, err := tokenFromFile(tokens)
	if err != nil {
		return nil, &expenses.ConfigurationError{
			Message: "No cached OAuth token - run 'authorise' first",
			Err:     err,
		}
	}

	return config.Client(ctx, token), nil
}

func misconfigured(err error) error {
	return &expenses.ConfigurationError{
		Message: "Service Account credentials are not configured correctly.",
		Err:     err,
	}
}
