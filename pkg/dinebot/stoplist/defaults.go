package stoplist

// DefaultTerms returns the built-in stoplist. Terms are written in the
// canonical form the lexicon normalizes to ("prices" arrives as "price").
func DefaultTerms() map[Reason][]string {
	return map[Reason][]string{
		ReasonPrice: {
			"cost", "price", "rate", "how", "much", "how-much", "rupee",
			"cheap", "affordable", "budget", "inexpensive", "expensive",
			"premium", "costly", "pricey",
			"under", "below", "less", "than", "above", "over", "more",
			"greater", "between", "and", "to", "from", "up", "upto", "at",
			"most", "least", "or", "within", "max", "maximum", "min",
			"minimum", "range", "average", "overall", "general", "starting",
		},
		ReasonIntent: {
			"show", "list", "display", "give", "tell", "get", "want", "need",
			"find", "have", "has", "got", "see", "recommend", "suggest",
			"available", "serve", "offer", "option", "order", "describe",
			"about", "detail", "info", "information", "know", "explain",
			"what", "which", "whats", "ingredient", "contain", "made",
			"recipe", "menu", "item", "dish", "food", "everything", "all",
		},
		ReasonFiller: {
			"the", "an", "is", "are", "was", "of", "for", "in", "on", "me",
			"my", "you", "your", "do", "does", "can", "could", "would",
			"will", "please", "some", "any", "with", "without", "there",
			"it", "its", "this", "that", "these", "those", "us", "we", "our",
			"be", "many", "like", "also", "just", "only", "something",
			"anything", "thing", "kind", "type", "good", "best", "nice",
			"really", "very", "today", "now", "here", "one", "lot", "if",
			"into", "by", "so", "should", "try", "tasty", "let",
		},
		ReasonGreeting: {
			"hi", "hello", "hey", "greetings", "morning", "evening",
			"afternoon", "thanks", "thank", "bye",
		},
		ReasonInfo: {
			"address", "location", "located", "where", "situated", "timing",
			"hour", "open", "opening", "close", "closing", "closed", "when",
			"contact", "phone", "email", "call", "number", "restaurant",
			"reach", "time", "day", "weekend", "weekday",
		},
		ReasonDietary: {
			"vegan", "veg", "non", "non-veg",
		},
		ReasonSpice: {
			"spicy", "hot", "mild", "medium", "spice", "not-spicy", "not",
		},
		ReasonCategory: {
			"appetizer", "main-course", "main", "course", "dessert", "beverage",
		},
	}
}
