// Package dinebot wires query understanding, filtering and reply assembly
// into one engine answering free-text questions about a restaurant menu.
package dinebot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/dinebot/pkg/dinebot/config"
	"github.com/cognicore/dinebot/pkg/dinebot/entities"
	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/respond"
)

// Observer receives one event per answered query. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveQuery(in intent.Intent, status filter.Status, confidence float64, elapsed time.Duration)
}

// Engine is the main query engine facade. It holds only read-only state
// after New and is safe for concurrent use.
type Engine struct {
	catalog    *menu.Catalog
	extractor  *entities.Extractor
	classifier *intent.Classifier
	pipeline   *filter.Pipeline
	assembler  *respond.Assembler
	logger     *zap.Logger
	observer   Observer
}

// Options configures an Engine. Nil components fall back to defaults built
// around Catalog.
type Options struct {
	Catalog    *menu.Catalog
	Extractor  *entities.Extractor
	Classifier *intent.Classifier
	Pipeline   *filter.Pipeline
	Assembler  *respond.Assembler
	Logger     *zap.Logger
	Observer   Observer
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	e := &Engine{
		catalog:    opts.Catalog,
		extractor:  opts.Extractor,
		classifier: opts.Classifier,
		pipeline:   opts.Pipeline,
		assembler:  opts.Assembler,
		logger:     opts.Logger,
		observer:   opts.Observer,
	}
	if e.catalog == nil {
		e.catalog = menu.MustCatalog(nil)
	}
	if e.extractor == nil {
		e.extractor = entities.NewDefault(e.catalog)
	}
	if e.classifier == nil {
		e.classifier = intent.NewClassifier()
	}
	if e.pipeline == nil {
		e.pipeline = filter.NewPipeline()
	}
	if e.assembler == nil {
		e.assembler = respond.New(respond.Restaurant{})
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// FromComponents builds an Engine from loaded configuration.
func FromComponents(c *config.Components, logger *zap.Logger, obs Observer) *Engine {
	return New(Options{
		Catalog:    c.Catalog,
		Extractor:  c.Extractor,
		Classifier: c.Classifier,
		Pipeline:   c.Pipeline,
		Assembler:  c.Assembler,
		Logger:     logger,
		Observer:   obs,
	})
}

// Catalog returns the catalog queries are answered against.
func (e *Engine) Catalog() *menu.Catalog {
	return e.catalog
}

// Restaurant returns the profile used for restaurant questions.
func (e *Engine) Restaurant() respond.Restaurant {
	return e.assembler.Restaurant()
}

// ClassifyAndExtract parses text and picks its intent.
func (e *Engine) ClassifyAndExtract(text string) (intent.Result, entities.Entities) {
	ents := e.extractor.Extract(text)
	return e.classifier.Classify(text, ents), ents
}

// Execute runs the filter pipeline. A nil cat means the engine's catalog.
func (e *Engine) Execute(cat *menu.Catalog, cls intent.Result, ents entities.Entities) filter.Result {
	if cat == nil {
		cat = e.catalog
	}
	return e.pipeline.Execute(cat, cls, ents)
}

// Answer is the full outcome of one query.
type Answer struct {
	Query          string            `json:"query"`
	Classification intent.Result     `json:"classification"`
	Entities       entities.Entities `json:"entities"`
	Result         filter.Result     `json:"result"`
	Reply          respond.Reply     `json:"reply"`
}

// Ask answers text end to end. The only error is ctx's; unknown questions
// and empty results are reported in the Answer.
func (e *Engine) Ask(ctx context.Context, text string) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	start := time.Now()

	cls, ents := e.ClassifyAndExtract(text)
	res := e.Execute(nil, cls, ents)
	reply := e.assembler.Assemble(text, cls, ents, res)
	elapsed := time.Since(start)

	e.logger.Debug("query answered",
		zap.String("id", reply.ID),
		zap.String("query", text),
		zap.String("intent", string(cls.Intent)),
		zap.Float64("confidence", cls.Confidence),
		zap.String("rule", cls.Rule),
		zap.String("status", string(res.Status)),
		zap.Int("count", res.Count),
		zap.Duration("elapsed", elapsed),
	)
	if e.observer != nil {
		e.observer.ObserveQuery(cls.Intent, res.Status, cls.Confidence, elapsed)
	}

	return Answer{
		Query:          text,
		Classification: cls,
		Entities:       ents,
		Result:         res,
		Reply:          reply,
	}, nil
}
