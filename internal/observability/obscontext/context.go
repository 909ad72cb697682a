// Package obscontext carries request correlation values through context.
package obscontext

import (
	"context"
	"strings"
)

type requestIDKey struct{}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, strings.TrimSpace(requestID))
}

// RequestIDFromContext returns the request id, or "" when none is set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

type clientKey struct{}

type actorKey struct{}

// Client identifies the caller of a request.
type Client struct {
	IPAddress string
	UserAgent string
}

func WithClient(ctx context.Context, client Client) context.Context {
	client.IPAddress = strings.TrimSpace(client.IPAddress)
	client.UserAgent = strings.TrimSpace(client.UserAgent)
	return context.WithValue(ctx, clientKey{}, client)
}

func ClientFromContext(ctx context.Context) Client {
	if ctx == nil {
		return Client{}
	}
	client, _ := ctx.Value(clientKey{}).(Client)
	return client
}

// Actor names who performed an action, e.g. ("user", "jdelacruz").
type Actor struct {
	Type string
	ID   string
}

func WithActor(ctx context.Context, actorType, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, Actor{
		Type: strings.TrimSpace(actorType),
		ID:   strings.TrimSpace(actorID),
	})
}

// ActorFromContext returns the actor, or the zero Actor when none is set.
func ActorFromContext(ctx context.Context) Actor {
	if ctx == nil {
		return Actor{}
	}
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}
