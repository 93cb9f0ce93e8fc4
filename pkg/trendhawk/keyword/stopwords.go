package keyword

// defaultStopwords is the built-in filter list: English function words,
// pronouns and a handful of filler words that dominate feed titles
// ("new", "best of", "how to get ...") without carrying topical signal.
var defaultStopwords = []string{
	"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "shall", "can", "need", "dare", "ought",
	"used", "to", "of", "in", "for", "on", "with", "at", "by", "from",
	"as", "into", "through", "during", "before", "after", "above",
	"below", "between", "out", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so",
	"than", "too", "very", "just", "because", "but", "and", "or",
	"if", "while", "about", "up", "it", "its", "my", "your", "his",
	"her", "their", "our", "this", "that", "these", "those", "what",
	"which", "who", "whom", "i", "you", "he", "she", "we", "they",
	"me", "him", "us", "them", "new", "get", "got", "like", "one",
	"any", "also", "much", "many", "still", "even", "ever", "never",
	"now", "via", "per", "really", "thing", "things", "make", "makes",
	"made", "way", "ways", "using", "want",
}
