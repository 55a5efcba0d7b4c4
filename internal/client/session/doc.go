// Package session keeps the client's authenticated session alive.
//
// A Coordinator owns the single live Credential, mirrors it into exactly one
// persistence tier, and renews its access token:
//
//   - reactively, when the HTTP or gRPC interceptor sees an auth failure and
//     calls Refresh;
//   - proactively, from a one-shot timer armed RefreshBuffer ahead of the
//     token's expiry.
//
// Both paths go through Refresh, which is single-flight: while one renewal
// round-trip is outstanding every other caller waits on it and receives the
// same token or the same error. A failed renewal ends the session, clears
// both tiers, and fires the OnExpired callback once.
//
// Coordinators hold no package-level state; build one per process (or per
// test) with New.
package session
