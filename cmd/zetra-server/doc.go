// Package main runs zetra-server, the loopback HTTP shell over the local
// identity. It serves the same operations as the zetra CLI (see package
// httpapi for the routes) plus a liveness check and Prometheus metrics.
//
// Behaviour
//
//   - Configuration comes from the same layers as the CLI (--home, --storage,
//     --storage-key and --log-level flags included); --listen and PORT
//     select the address, 127.0.0.1:3000 by default.
//   - Logs are JSON on stderr, one access record per request.
//   - There is no authentication: bind to loopback only. Exposing the server
//     on a network exposes the private key through /v1/profile/export.
//   - SIGINT and SIGTERM trigger a graceful shutdown.
package main
