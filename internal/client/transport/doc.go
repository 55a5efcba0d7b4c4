// Package transport attaches the session's access token to outgoing calls
// and recovers from an expired token by renewing it once and retrying.
//
// RoundTripper does this for HTTP, UnaryClientInterceptor for gRPC. Both
// defer renewal to a TokenSource, normally a *session.Coordinator, whose
// Refresh is single-flight: any number of concurrent 401s produce one
// renewal round-trip.
package transport
