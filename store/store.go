// Package store persists the credential unit (tokens + profile) and the
// selected term across process restarts.
package store

import (
	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
)

// CredentialStore is durable key-value storage for the session. Load never
// fails on missing entries; it returns empty defaults instead. Save and
// Clear act on the whole credential unit so the three underlying entries
// cannot be observed half-written by another caller.
type CredentialStore interface {
	Load() (models.Credentials, error)
	Save(creds models.Credentials) error
	Clear() error

	// Term selection is persisted independently of the credential unit and
	// survives logout.
	LoadTermID() (int, error)
	SaveTermID(id int) error

	Close() error
}
