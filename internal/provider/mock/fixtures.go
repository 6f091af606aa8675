package mock

import (
	"writeassist/internal/analysis"
	"writeassist/internal/domain"
)

// SampleText is the demo manuscript shown when no document is loaded.
const SampleText = `Artificial intelligence (AI) has become a vital component of modern technology, transforming the way we live and work. One of the primary benefits of AI is its ability to automate repetitive and mundane tasks, freeing up human resources for more complex and creative work. Additionally, AI has made significa Artificial intelligence (AI) has become a vital component of modern technology, transforming the way we live and work. One of the primary benefits of AI is its ability to automate repetitive and complex and creative work. Furthermore, AI has made significant contributions to various industries, enhancing efficiency and productivity.nt advancements in machine learning and natural language processing, enabling machines to learn from data and interact with humans in a more intuitive and user-friendly manner. Furthermore, AI has the potential to revolutionize various industries, including healthcare, finance, and transportation, by providing accurate diagnoses, personalized recommendations, and optimized routes. Overall, the impact of AI on society is profound, and its continued development and integration will likely have a lasting impact on the world.`

// SampleDrafts are the canned grammar and style findings for SampleText.
var SampleDrafts = []analysis.Draft{
	{
		Kind:        domain.KindStyle,
		Category:    "Use a uniform English spelling style",
		Original:    "revolutionize",
		Replacement: "revolutionise",
		Explanation: "Maintain a consistent spelling style throughout your document.",
	},
	{
		Kind:        domain.KindSpelling,
		Category:    "Spelling",
		Original:    "significa",
		Replacement: "significant",
		Explanation: "This word is not in our dictionary. If it is a valid word, please add it to your dictionary.",
	},
	{
		Kind:        domain.KindClarity,
		Category:    "Conciseness",
		Original:    "has the potential to",
		Replacement: "can",
		Explanation: "This phrase can be shortened for better clarity and conciseness.",
	},
	{
		Kind:        domain.KindGrammar,
		Category:    "Punctuation",
		Original:    "productivity.nt",
		Replacement: "productivity. nt",
		Explanation: "It seems there is a missing space after the period.",
	},
}

// SampleReadiness is the canned submission readiness breakdown.
var SampleReadiness = []domain.ReadinessDimension{
	{Name: "Formatting", Score: 95, Details: "Journal template applied."},
	{Name: "Language", Score: 82, Details: "5 alerts remaining."},
	{Name: "Citations", Score: 70, Details: "Diversity could be improved."},
	{Name: "Plagiarism/AI", Score: 88, Details: "Low risk detected."},
	{Name: "Compliance", Score: 100, Details: "All checks passed."},
}

// SamplePlagiarism is the canned plagiarism and AI-content report.
var SamplePlagiarism = domain.PlagiarismResult{
	SimilarityScore: 8,
	AIContentScore:  12,
	Sources: []domain.Source{
		{URL: "https://example.com/source1", Percentage: 4},
		{URL: "https://example.com/source2", Percentage: 3},
	},
}

// SampleParaphrase is returned for every paraphrase request.
var SampleParaphrase = domain.ParaphraseResult{
	Formal:   "Artificial intelligence represents an essential element of contemporary technological advancement, fundamentally altering human existence and professional activities. A principal advantage of AI lies in its capacity to mechanize routine and tedious operations, thereby liberating human capital for more sophisticated and innovative endeavors. Moreover, AI has contributed substantially to diverse sectors, improving operational effectiveness and output.",
	Concise:  "AI is crucial to modern technology, changing how we live and work. It automates repetitive tasks, freeing people for complex work. AI enhances efficiency across industries.",
	Detailed: "Artificial intelligence (AI) has emerged as an indispensable component within the framework of contemporary technological infrastructure, fundamentally reshaping the paradigms of human existence and professional engagement. One of the most significant advantages offered by AI is its remarkable capability to automate repetitive and mundane operational tasks, thereby emancipating human intellectual resources to focus on more intricate and creative intellectual pursuits. Furthermore, AI has delivered substantial contributions across multiple industrial domains, significantly augmenting operational efficiency and overall productivity levels.",
}
