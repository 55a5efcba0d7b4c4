// Package cli provides the interactive diplomadesk admin client.
//
// NewApp wires the durable SQLite tier, the cookie jar, the API client, the
// session coordinator and the authenticating transport. App.Root restores a
// remembered session, then runs a REPL until the user exits:
//
//   - login / logout
//   - whoami, status
//   - get <path>   fetch any admin resource, e.g. get /api/degree-types
//   - stats        renewal counters
//
// When the session expires the next prompt asks the user to log in again.
package cli
