package db

// KNNQuery is the input for vector similarity search on one shard index.
type KNNQuery struct {
	IndexName    string
	Filter       string // optional prebuilt filter expression, e.g. "@tenant:{acme}"
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
