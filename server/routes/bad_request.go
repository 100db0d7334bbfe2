// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

// BadRequestError signals that the request shape itself is invalid, before
// any upstream work happens.
//
// The error handling middleware is expected to catch this error, set the
// HTTP status to 400 Bad Request, and reply with ClientMessage in the JSON
// error envelope.
type BadRequestError struct {
	// ClientMessage is returned verbatim to the caller.
	ClientMessage string
}

// Error implements the error interface. The message is simple, as the primary
// purpose of this type is to carry the client-facing text to the error handler.
func (e *BadRequestError) Error() string {
	return e.ClientMessage
}

// NewBadRequestError creates a BadRequestError.
func NewBadRequestError(clientMessage string) error {
	return &BadRequestError{ClientMessage: clientMessage}
}
