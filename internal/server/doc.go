// Package server hosts the Fiber HTTP service and its middleware chain:
// request IDs, panic recovery, the cache-clear admin route and the catch-all
// static route. It also owns the listen/shutdown lifecycle used by the CLI.
// Keep exports narrow and accept explicit dependencies so other packages
// (static, routes) can be tested with fakes.
package server
