package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	manifestKey contextKey = "manifest"
)

func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

func WithManifest(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, manifestKey, path)
}

func ManifestFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(manifestKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
