package services

import (
	"database/sql"
	"errors"

	"github.com/pcruz7/notebook-be/internal/models"
)

// NoteServiceProvider defines the interface for note services.
type NoteServiceProvider interface {
	SaveNote(userID int64, content string) (models.Note, error)
	CurrentNote(userID int64) (string, error)
}

// NoteService stores and retrieves notes. Saves are append-only; the note
// with the highest id is the one a user currently sees, so history is kept
// even though only the latest revision is surfaced.
type NoteService struct {
	db *sql.DB
}

// NewNoteService creates a new NoteService.
func NewNoteService(db *sql.DB) *NoteService {
	return &NoteService{db: db}
}

// SaveNote appends a new note row for the user. Empty content is allowed.
func (s *NoteService) SaveNote(userID int64, content string) (models.Note, error) {
	stmt, err := s.db.Prepare("INSERT INTO notes(user_id, content) VALUES(?, ?)")
	if err != nil {
		return models.Note{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(userID, content)
	if err != nil {
		return models.Note{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	row := s.db.QueryRow("SELECT id, user_id, content, created_at FROM notes WHERE id = ?", id)
	if err := row.Scan(&note.ID, &note.UserID, &note.Content, &note.CreatedAt); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// CurrentNote returns the content of the user's latest note, or the empty
// string if they have none.
func (s *NoteService) CurrentNote(userID int64) (string, error) {
	var content string
	row := s.db.QueryRow("SELECT content FROM notes WHERE user_id = ? ORDER BY id DESC LIMIT 1", userID)
	if err := row.Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return content, nil
}
