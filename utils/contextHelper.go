package utils

import (
	"context"

	"bitbucket.org/jarzapp/woosync_backend/appctx"
)

var (
	ContextKeyToken         = appctx.ContextKeyToken
	ContextKeyConnectionId  = appctx.ContextKeyConnectionId
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
	ContextKeySyncRunId     = appctx.ContextKeySyncRunId
)

func GetTokenFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyToken)
}

func GetConnectionIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyConnectionId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func GetSyncRunIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeySyncRunId)
}

func SetTokenInContext(ctx context.Context, token string) context.Context {
	return appctx.Set(ctx, ContextKeyToken, token)
}

func SetConnectionIdInContext(ctx context.Context, connectionId int) context.Context {
	return appctx.Set(ctx, ContextKeyConnectionId, connectionId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func SetSyncRunIdInContext(ctx context.Context, runId string) context.Context {
	return appctx.Set(ctx, ContextKeySyncRunId, runId)
}
