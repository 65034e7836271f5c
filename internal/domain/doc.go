// Package domain holds the render requests accepted by the tool servers and
// the validation errors they report. It has no transport, browser or
// filesystem dependencies.
package domain
