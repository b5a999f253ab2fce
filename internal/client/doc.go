// Package client is a typed HTTP client for the notes API.
//
// The client logs in once, keeps the access token for later calls and
// remembers the refresh cookie so it can obtain a new access token. Reads
// are retried with exponential backoff on transport errors and 5xx replies.
package client
