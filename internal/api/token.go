package api

import "context"

// TokenSource supplies the bearer token for tracker requests. Token
// acquisition and refresh are owned by the auth subsystem; the client
// only attaches whatever the source hands it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource backed by a fixed string, typically read
// from config or the environment.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}
