package category

// tierWeights holds the points awarded per match location for one keyword
// tier: title hits weigh more than tag hits, tag hits more than content hits.
type tierWeights struct {
	title   int
	tag     int
	content int
}

var (
	highWeights   = tierWeights{title: 30, tag: 20, content: 10}
	mediumWeights = tierWeights{title: 15, tag: 10, content: 5}
	lowWeights    = tierWeights{title: 6, tag: 4, content: 2}
)

// keywordTiers holds the per-category keyword tables. Global constant
// data: never mutated at runtime.
type keywordSet struct {
	high   []string
	medium []string
	low    []string
}

var keywordTiers = map[Category]keywordSet{
	TechnicalDocs: {
		high:   []string{"documentation", "api reference", "specification", "architecture", "runbook"},
		medium: []string{"guide", "tutorial", "configuration", "changelog", "readme"},
		low:    []string{"install", "setup", "technical", "system", "version"},
	},
	BusinessReports: {
		high:   []string{"quarterly", "revenue", "earnings", "fiscal", "balance sheet"},
		medium: []string{"report", "forecast", "budget", "kpi", "stakeholder"},
		low:    []string{"business", "sales", "growth", "performance", "summary"},
	},
	ResearchPapers: {
		high:   []string{"abstract", "hypothesis", "methodology", "peer review", "citation"},
		medium: []string{"research", "study", "experiment", "dataset", "findings"},
		low:    []string{"results", "conclusion", "literature", "analysis", "survey"},
	},
	MarketingMaterials: {
		high:   []string{"campaign", "brand", "promotion", "advertising", "press release"},
		medium: []string{"marketing", "audience", "engagement", "launch", "newsletter"},
		low:    []string{"social media", "creative", "customer", "outreach", "content"},
	},
	AIMachineLearning: {
		high:   []string{"machine learning", "neural network", "deep learning", "transformer", "llm"},
		medium: []string{"model", "training", "inference", "fine-tuning", "artificial intelligence"},
		low:    []string{"algorithm", "prediction", "embedding", "classifier", "nlp"},
	},
	CloudInfrastructure: {
		high:   []string{"kubernetes", "terraform", "aws", "cloud native", "serverless"},
		medium: []string{"docker", "deployment", "infrastructure", "devops", "microservice"},
		low:    []string{"server", "cluster", "scaling", "container", "pipeline"},
	},
	// OtherDocuments carries no keywords: it is the < 5 point fallback.
}

// titleFastPath maps strong single-keyword title signals straight to a
// category. First match wins and short-circuits weighted scoring.
var titleFastPath = []struct {
	keyword  string
	category Category
}{
	{"manual", TechnicalDocs},
	{"resume", OtherDocuments},
	{"invoice", OtherDocuments},
	{"receipt", OtherDocuments},
	{"whitepaper", ResearchPapers},
	{"thesis", ResearchPapers},
	{"brochure", MarketingMaterials},
	{"pitch deck", MarketingMaterials},
}
