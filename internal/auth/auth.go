package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/httpclient"
	"go.uber.org/zap"
)

var ErrTokenUnavailable = errors.New("TOKEN_UNAVAILABLE")

type Config struct {
	TokenURL     string `mapstructure:"token_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// TokenProvider returns a bearer token for the upstream gateway. Token
// caching and refresh belong to the identity provider, not here.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type nequiAuth struct {
	client httpclient.HTTPClient
	config Config
	logger *zap.Logger
}

func NewTokenProvider(cfg Config, client httpclient.HTTPClient, logger *zap.Logger) TokenProvider {
	return &nequiAuth{config: cfg, client: client, logger: logger}
}

func (a *nequiAuth) Token(ctx context.Context) (string, error) {
	credentials := base64.StdEncoding.EncodeToString(
		[]byte(a.config.ClientID + ":" + a.config.ClientSecret))

	headers := map[string]string{
		"Authorization": "Basic " + credentials,
		"Content-Type":  "application/x-www-form-urlencoded",
		"Accept":        "application/json",
	}

	resp, err := a.client.Post(ctx, a.config.TokenURL, nil, headers)
	if err != nil {
		a.logger.Error("Failed to obtain Nequi token", zap.Error(err))
		return "", ErrTokenUnavailable
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("Nequi token endpoint rejected request",
			zap.Int("status", resp.StatusCode))
		return "", ErrTokenUnavailable
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		a.logger.Error("Failed to decode token response", zap.Error(err))
		return "", ErrTokenUnavailable
	}

	if body.AccessToken == "" {
		return "", ErrTokenUnavailable
	}

	return body.AccessToken, nil
}
