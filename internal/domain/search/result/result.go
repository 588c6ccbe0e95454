package result

import "github.com/instabrief/instabrief/internal/domain/document"

// ScoredDocument is a document annotated with a transient relevance
// score. The score only exists for one request cycle and is absent when
// no query was given.
type ScoredDocument struct {
	doc    document.Document
	score  int
	scored bool
}

// New creates a scored document.
func New(doc document.Document, score int) ScoredDocument {
	return ScoredDocument{doc: doc, score: score, scored: true}
}

// Unscored wraps a document without a relevance score.
func Unscored(doc document.Document) ScoredDocument {
	return ScoredDocument{doc: doc}
}

// Document returns the underlying document.
func (r ScoredDocument) Document() document.Document { return r.doc }

// Score returns the relevance score (0 when unscored).
func (r ScoredDocument) Score() int { return r.score }

// HasScore reports whether a relevance score applies.
func (r ScoredDocument) HasScore() bool { return r.scored }
