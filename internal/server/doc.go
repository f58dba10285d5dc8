// Package server holds the ServerContext that MCP tool handlers receive,
// together with the HTTP plumbing around the MCP transports: health probes
// and the dedicated metrics server.
//
// All dependencies are injected with functional options:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithK8sClient(client),
//		server.WithLogger(logger),
//		server.WithNonDestructiveMode(true),
//		server.WithInstrumentationProvider(provider),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
//
// Tool handlers read the Kubernetes client, config and clock from the
// context. Now() is injectable with WithClock so resource ages are
// deterministic in tests.
package server
