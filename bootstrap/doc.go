// Package bootstrap runs an application's components through a uniform
// lifecycle: start in registration order, run a task or wait for a signal,
// then stop in reverse order within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(session.NewComponent(cfg.Session))
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    // dispatch
//	    return nil
//	})
package bootstrap
