// Package handler exposes the dev backend over HTTP with gin. Every
// response is wrapped in the {resultCode, message, data} envelope the
// client expects.
package handler
