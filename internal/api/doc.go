// Package api exposes the user directory, the note ledger and authentication
// over HTTP. Handlers decode JSON bodies, call the services and translate
// service errors into status codes with a {"message"} body.
package api
