package api

import "encoding/json"

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccessTokenResponse is returned by login and refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// IDRequest is the body of the delete endpoints.
type IDRequest struct {
	ID string `json:"id"`
}

// CreateNoteRequest is the body of POST /notes.
// The owner may be given as "user" or, for older clients, as "id".
type CreateNoteRequest struct {
	User  string `json:"user"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UpdateNoteRequest is the body of PATCH /notes.
// Completed must be a JSON boolean; a string such as "true" fails to decode.
type UpdateNoteRequest struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Text      string      `json:"text"`
	Completed *bool       `json:"completed"`
	Ticket    json.Number `json:"ticket"`
}
