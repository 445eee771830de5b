package google

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Authorise runs the OAuth2 consent flow for an OAuth client credentials file and caches the
// resulting token. The prompt function displays the consent URL and returns the
// authorisation code pasted back by the user.
func Authorise(ctx context.Context, key []byte, tokens string, prompt func(url string) (string, error), scopes ...string) error {
	config, err := google.ConfigFromJSON(key, scopes...)
	if err != nil {
		return err
	}

	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	code, err := prompt(url)
	if err != nil {
		return err
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("Unable to retrieve token from web (%w)", err)
	}

	return saveToken(tokens, token)
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("Unable to cache OAuth token (%w)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
