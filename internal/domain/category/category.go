package category

// Category is a derived document classification label.
// Categories are recomputed on every read, never stored.
type Category string

// The fixed category set.
const (
	TechnicalDocs       Category = "Technical Docs"
	BusinessReports     Category = "Business Reports"
	ResearchPapers      Category = "Research Papers"
	MarketingMaterials  Category = "Marketing Materials"
	AIMachineLearning   Category = "AI & Machine Learning"
	CloudInfrastructure Category = "Cloud & Infrastructure"
	OtherDocuments      Category = "Other Documents"
)

// all lists the categories in classification precedence order.
// Ties resolve to the earliest entry because scoring compares with strict >.
var all = []Category{
	TechnicalDocs,
	BusinessReports,
	ResearchPapers,
	MarketingMaterials,
	AIMachineLearning,
	CloudInfrastructure,
	OtherDocuments,
}

// All returns the categories in precedence order.
func All() []Category {
	c := make([]Category, len(all))
	copy(c, all)
	return c
}

// IsValid checks if c is one of the fixed categories.
func (c Category) IsValid() bool {
	for _, v := range all {
		if c == v {
			return true
		}
	}
	return false
}
