package sezzle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// tokenExpiryDelta refreshes tokens a little before the provider expires them.
const tokenExpiryDelta = 30 * time.Second

// authTokenSource exchanges the merchant key pair for a bearer token.
type authTokenSource struct {
	baseURL     string
	credentials AuthCredentials
	httpClient  *http.Client
}

func (s *authTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.httpClient.Timeout)
	defer cancel()

	payload, err := json.Marshal(authenticationRequest{
		PublicKey:  s.credentials.PublicKey,
		PrivateKey: s.credentials.PrivateKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode authentication request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v2/authentication", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create authentication request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with sezzle: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read authentication response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError("authentication", resp.StatusCode, body)
	}

	var auth authenticationResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("failed to decode authentication response: %w", err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("sezzle authentication returned an empty token")
	}

	token := &oauth2.Token{
		AccessToken: auth.Token,
		TokenType:   "Bearer",
	}
	if !auth.ExpirationDate.IsZero() {
		token.Expiry = auth.ExpirationDate.Add(-tokenExpiryDelta)
	}
	return token, nil
}
