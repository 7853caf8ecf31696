// Package shutdown coordinates graceful termination of the SnipBoard server.
//
// Components register named hooks; on SIGINT or SIGTERM (or when the parent
// context ends) the hooks run in reverse registration order under a shared
// deadline, so the HTTP listener stops before the store it serves is closed.
//
// Usage:
//
//	h := shutdown.NewHandler(10*time.Second, shutdown.WithLogger(log))
//	h.OnShutdown("storage", engine.Close)
//	h.OnShutdown("http", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
