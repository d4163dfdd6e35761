package app

import "context"

// OnShutdown registers fn to run when the app closes. Hooks run in reverse
// registration order.
func (a *App) OnShutdown(fn func()) {
	a.hooksMu.Lock()
	defer a.hooksMu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Close runs the shutdown hooks and stops the health check server. Only the
// first call does any work.
func (a *App) Close(ctx context.Context) error {
	var err error
	a.closeOnce.Do(func() {
		a.logger.Debug("Closing app...")

		a.hooksMu.Lock()
		hooks := a.hooks
		a.hooks = nil
		a.hooksMu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			hooks[i]()
		}
		err = a.closeHealthCheckServer(ctx)
		a.logger.Debug("App closed.", "hooks_run", len(hooks))
	})
	return err
}
