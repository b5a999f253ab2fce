package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"github.com/phrazzld/notes-api/internal/service"
)

// NoteHandler serves the /notes endpoints.
type NoteHandler struct {
	notes service.NoteService
}

// NewNoteHandler creates a NoteHandler backed by the given service.
func NewNoteHandler(notes service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// ListNotes handles GET /notes.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notes)
}

// CreateNote handles POST /notes.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgFieldsRequired, err)
		return
	}

	userID := req.User
	if userID == "" {
		userID = req.ID
	}

	_, owner, err := h.notes.Create(r.Context(), service.CreateNoteInput{
		UserID: userID,
		Title:  req.Title,
		Text:   req.Text,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, fmt.Sprintf("New note for user %s created", owner.Username))
}

// UpdateNote handles PATCH /notes.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgFieldsRequired, err)
		return
	}

	// A ticket that is not an integer counts as missing.
	ticket, _ := req.Ticket.Int64()

	note, err := h.notes.Update(r.Context(), service.UpdateNoteInput{
		ID:        req.ID,
		Title:     req.Title,
		Text:      req.Text,
		Completed: req.Completed,
		Ticket:    ticket,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, fmt.Sprintf("Ticket no %d has been updated", note.Ticket))
}

// DeleteNote handles DELETE /notes and answers with a bare JSON string.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decodeBody(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgNoteIDRequired, err)
		return
	}

	note, err := h.notes.Delete(r.Context(), req.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, fmt.Sprintf("Note with ticket number %d is deleted", note.Ticket))
}
