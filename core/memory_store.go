package core

// ResultsCollection is the logical collection name results are persisted
// under by the default save stage.
const ResultsCollection = "Results"

// SaveRequest is the persistence payload handed to a MemoryStore: a sequence
// of items tagged with a logical collection name.
type SaveRequest struct {
	Data       []any
	Collection string
}

// MemoryStore is the storage collaborator boundary. The pipeline treats Save
// as best effort: a failed save is logged and the run continues, since
// losing the ability to recall a past result should not block delivering the
// current one. Implementations own any retry or durability policy.
type MemoryStore interface {
	Save(req SaveRequest) error
}
