package core

// Batch is one job slot of the split test plan.
type Batch struct {
	Slot    string   `json:"slot"`
	Targets []string `json:"targets"`
	Total   int      `json:"total"`
}

// TestSplitter splits the test plan of a collection into job slots.
type TestSplitter interface {
	// Batches returns the non-empty slots of the collection test plan.
	Batches(collectionName string, plan []*Target) ([]Batch, error)
}
