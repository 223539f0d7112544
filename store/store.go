// Package store connects to the data store and manages the persisted
// application state.
package store

import (
	"github.com/ayoisaiah/studytrack/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// GetState returns the persisted application state. A missing or
	// corrupt blob yields the default state, never an error.
	GetState() (*models.AppState, error)
	// SaveState persists the entire application state atomically.
	SaveState(state *models.AppState) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
