// Package store holds the client's two persistence tiers for the session
// record.
//
// The durable tier ("remember me") is a SQLite file that survives restarts;
// the ephemeral tier ("this session only") lives in process memory. Tiers
// keeps them mutually exclusive: a record saved to one tier is first removed
// from the other, so at most one tier holds a given key at any time.
//
// Both tiers implement Store, a minimal key/value contract. Get returns
// (nil, nil) for a missing key.
package store
