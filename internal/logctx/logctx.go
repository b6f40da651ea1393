// Package logctx decorates slog records with connection and message
// attributes carried in the context, so transports can log once per frame
// without threading attribute lists through every call.
package logctx

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if cd, ok := ctx.Value(connDataKey{}).(*ConnData); ok {
		r.AddAttrs(slog.Group("conn",
			slog.String("id", cd.ConnectionID),
			slog.String("realm", cd.Realm),
			slog.String("url", cd.URL),
		))
	}

	if md, ok := ctx.Value(msgDataKey{}).(*MsgData); ok {
		r.AddAttrs(slog.Group("msg",
			slog.String("kind", md.Kind),
		))
	}

	return h.Handler.Handle(ctx, r)
}

type connDataKey struct{}

type ConnData struct {
	ConnectionID string
	Realm        string
	URL          string
}

func WithConnData(ctx context.Context, data *ConnData) context.Context {
	return context.WithValue(ctx, connDataKey{}, data)
}

type msgDataKey struct{}

type MsgData struct {
	Kind string
}

func WithMsgData(ctx context.Context, data *MsgData) context.Context {
	return context.WithValue(ctx, msgDataKey{}, data)
}
