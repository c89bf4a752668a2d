package app

import (
	"context"
	"log/slog"

	"github.com/five82/mapdeck/internal/device"
	"github.com/five82/mapdeck/internal/lifecycle"
	"github.com/five82/mapdeck/internal/state"
)

// poster delivers hook results to the UI loop.
type poster interface {
	Post(events ...state.Event)
	RequestConsent()
}

// registerHooks wires the screen lifecycle. Start hooks re-run on every
// foreground transition and post their results instead of dispatching, so
// every dispatch stays on the UI loop. The store is registered first so
// Stop closes it last.
func registerHooks(hooks *lifecycle.Hooks, store *state.Store, out poster, checker *device.Checker, perms *device.Permissions) {
	hooks.Register(lifecycle.Hook{
		Name:   "store",
		OnStop: store.Close,
	})
	hooks.Register(lifecycle.Hook{
		Name: "availability",
		OnStart: func(ctx context.Context) {
			out.Post(checker.Check(ctx)...)
		},
	})
	hooks.Register(lifecycle.Hook{
		Name: "permissions",
		OnStart: func(context.Context) {
			status, ok := perms.Evaluate()
			if !ok {
				slog.Debug("location consent undecided, prompting")
				out.RequestConsent()
				return
			}
			out.Post(state.PermissionResult{Status: status})
		},
	})
}
