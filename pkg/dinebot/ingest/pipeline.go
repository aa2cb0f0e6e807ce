package ingest

// Pipeline orchestrates the query analysis flow:
// text → tokenization → multi-token recognition → taxonomy tagging
type Pipeline struct {
	tokenizer *Tokenizer
	parser    *MultiTokenParser
	taxonomy  *Taxonomy
}

// NewPipeline creates an analysis pipeline with the given components
func NewPipeline(tokenizer *Tokenizer, parser *MultiTokenParser, taxonomy *Taxonomy) *Pipeline {
	if parser == nil {
		parser = NewMultiTokenParser(nil)
	}
	if taxonomy == nil {
		taxonomy = NewTaxonomy()
	}
	return &Pipeline{
		tokenizer: tokenizer,
		parser:    parser,
		taxonomy:  taxonomy,
	}
}

// Processed is a query after analysis.
type Processed struct {
	Tokens []string
	Labels map[string][]string // dimension → labels in precedence order
}

// Label returns the highest-precedence label of dim, if any.
func (p Processed) Label(dim string) (string, bool) {
	labels := p.Labels[dim]
	if len(labels) == 0 {
		return "", false
	}
	return labels[0], true
}

// Process runs text through the full pipeline
func (p *Pipeline) Process(text string) Processed {
	tokens := p.tokenizer.Tokenize(text)
	tokens = p.parser.Parse(tokens)

	return Processed{
		Tokens: tokens,
		Labels: p.taxonomy.AssignAll(tokens),
	}
}
