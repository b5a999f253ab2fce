// Package service contains the application rules of the notes system.
//
// UserService owns the user directory: username uniqueness, password hashing
// and the guard that refuses to delete users who still own notes.
// NoteService owns the note ledger: notes are created only for existing users,
// listed with their owner's username, and keep their ticket number forever.
//
// Services receive their stores through constructor injection and report
// failures as *Error values of kind ErrValidation, ErrNotFound or ErrConflict,
// carrying a message that is safe to return to clients. Any other error is an
// unexpected infrastructure failure.
//
// No operation runs in a transaction. Checks such as "user owns no notes" and
// the write that follows are separate store calls and may interleave with
// concurrent requests.
package service
