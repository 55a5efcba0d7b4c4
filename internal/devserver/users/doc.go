// Package users holds the dev backend's accounts and refresh sessions and
// issues token pairs for them.
package users
