// Package httpapi exposes the identity service over loopback HTTP.
//
// HTTP API
//
//	GET /health
//	    Liveness check: {"status":"ok","timestamp":<epoch ms>}.
//
//	GET /
//	    Plain-text greeting.
//
//	GET /v1/profile
//	    The stored profile without its private key; 404 when none exists.
//
//	POST /v1/profile {"displayName": "...", "color": "#rrggbb"}
//	    Generate a new identity, replacing any stored one. Both fields are
//	    optional.
//
//	POST /v1/profile/import
//	    Body is an export file. Sealed files need the X-Zetra-Passphrase
//	    header. The stored profile is replaced only if the file is valid.
//
//	GET /v1/profile/export
//	    Download the export file. With X-Zetra-Passphrase set the file is
//	    sealed under that passphrase.
//
//	DELETE /v1/profile
//	    Remove the stored profile. Idempotent.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Errors are {"error": "<notice>"} with a status derived from the error.
// Private key material never appears in a response other than the export
// download.
package httpapi
