// Package docstore abstracts the hosted document database as named
// collections of JSON documents with get/set/patch/query primitives. Writes
// are atomic per document only; there are no multi-document transactions, so
// orchestrations built on top of this interface are read-modify-write and
// last-write-wins by design.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names used by the service.
const (
	CollectionOrganizer   = "organizer"
	CollectionTestBatches = "testBatches"
	CollectionFullQuizzes = "fullQuizzes"
	CollectionQuestions   = "questions"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
)

// IsNotFound reports whether err is a missing-document error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Document is a raw document together with its id, as returned by queries.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Decode unmarshals the document payload into dest.
func (d Document) Decode(dest interface{}) error {
	return json.Unmarshal(d.Data, dest)
}

// Store is the document-store adapter. Implementations must make Set and
// Patch atomic for the single addressed document.
type Store interface {
	// Get unmarshals the document collection/id into dest. Returns
	// ErrNotFound when absent.
	Get(ctx context.Context, collection, id string, dest interface{}) error

	// Set replaces the whole document, creating it when absent (upsert).
	Set(ctx context.Context, collection, id string, doc interface{}) error

	// Patch merges the given top-level fields into an existing document.
	// Returns ErrNotFound when the document does not exist.
	Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Add stores doc under a generated id and returns that id.
	Add(ctx context.Context, collection string, doc interface{}) (string, error)

	// Exists reports whether the document collection/id exists.
	Exists(ctx context.Context, collection, id string) (bool, error)

	// QueryByField returns every document whose top-level field equals value.
	QueryByField(ctx context.Context, collection, field, value string) ([]Document, error)

	// List returns every document in a collection.
	List(ctx context.Context, collection string) ([]Document, error)

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error
}
