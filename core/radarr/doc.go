// Package radarr is a minimal client for the Radarr v3 movie API.
//
// Only the two calls needed to copy movies between instances are implemented:
//
//   - FetchCatalog: GET  {url}/api/v3/movie?apikey={key}
//   - CreateEntry:  POST {url}/api/v3/movie?apikey={key}
//
// # Client Interface
//
// The Client interface abstracts the HTTP implementation so the reconcile
// engine can be tested with the testify mock in core/radarr/mocks, or against
// the in-process fake instance in core/radarr/radarrtest.
//
// # Errors
//
// Every failed call returns a *RemoteError carrying the operation, instance
// name, HTTP status (0 for transport failures) and the start of the response
// body. The API key travels as a query parameter and is stripped from every
// error message.
//
// # Transport
//
// A single HTTPClient is shared by all instances. Requests always carry an
// explicit timeout, environment proxies are ignored unless enabled, and the
// number of connections per instance is capped.
package radarr
