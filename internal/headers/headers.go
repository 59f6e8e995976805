package headers

import (
	"context"
	"errors"
	"fmt"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/auth"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/params"
)

// ErrIncomplete means a required credential was absent. The builder fails
// closed: it never returns a partial header set.
var ErrIncomplete = errors.New("HEADERS_INCOMPLETE")

type Builder interface {
	Build(ctx context.Context) (map[string]string, error)
}

type builder struct {
	tokens   auth.TokenProvider
	resolver params.Resolver
}

func NewBuilder(tokens auth.TokenProvider, resolver params.Resolver) Builder {
	return &builder{tokens: tokens, resolver: resolver}
}

func (b *builder) Build(ctx context.Context) (map[string]string, error) {
	token, err := b.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: bearer token: %v", ErrIncomplete, err)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: empty bearer token", ErrIncomplete)
	}

	apiKey, err := b.resolver.Value(ctx, params.NequiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("%w: api key: %v", ErrIncomplete, err)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: empty api key", ErrIncomplete)
	}

	return map[string]string{
		"Content-Type":  "application/json",
		"x-api-key":     apiKey,
		"Authorization": "Bearer " + token,
	}, nil
}
