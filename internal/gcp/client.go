// Package gcp builds authenticated HTTP clients for Google REST APIs.
package gcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const GenerativeLanguageScope = "https://www.googleapis.com/auth/generative-language"

// NewHTTPClient returns an OAuth2 client for the service-account key at
// credentialsFile, or application default credentials when it is empty.
func NewHTTPClient(ctx context.Context, credentialsFile string, timeout time.Duration, scopes ...string) (*http.Client, error) {
	var (
		creds *google.Credentials
		err   error
	)
	if credentialsFile != "" {
		raw, readErr := os.ReadFile(credentialsFile)
		if readErr != nil {
			return nil, fmt.Errorf("gcp: read credentials: %w", readErr)
		}
		creds, err = google.CredentialsFromJSON(ctx, raw, scopes...)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, scopes...)
	}
	if err != nil {
		return nil, fmt.Errorf("gcp: load credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = timeout
	return client, nil
}
