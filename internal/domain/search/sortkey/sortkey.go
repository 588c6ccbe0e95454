package sortkey

// Key is the explore result ordering.
type Key string

// Sort key constants.
const (
	// Relevance orders by descending score when a query is present,
	// otherwise by descending creation date.
	Relevance Key = "relevance"
	Date      Key = "date"
	Title     Key = "title"
)

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	return k == Relevance || k == Date || k == Title
}
