package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/dateparse"
	"github.com/hann12-34/discovr-pipeline/internal/event"
	"github.com/hann12-34/discovr-pipeline/internal/logger"
	"github.com/hann12-34/discovr-pipeline/internal/metrics"
)

// Rejection pairs a dropped candidate with its reason code.
type Rejection struct {
	Event  *event.CandidateEvent `json:"event"`
	Reason Reason                `json:"reason"`
}

// Report carries the per-batch counts: total in, accepted,
// rejected-by-reason, deduplicated away.
type Report struct {
	Total        int            `json:"total"`
	Accepted     int            `json:"accepted"`
	Deduplicated int            `json:"deduplicated"`
	Rejected     map[Reason]int `json:"rejected_by_reason"`
	Duration     time.Duration  `json:"-"`
}

// Result is the structured outcome of one pipeline invocation. Data
// quality problems land in Rejected; they are never errors.
type Result struct {
	Accepted []*event.NormalizedEvent `json:"accepted"`
	Rejected []*Rejection             `json:"rejected"`
	Report   Report                   `json:"report"`
}

// Pipeline runs intake output through date resolution, the admission
// filter, and per-batch deduplication. It holds no per-batch state, so one
// Pipeline may serve concurrent batches; each Run gets its own dedup set.
type Pipeline struct {
	Config   *config.Config
	Resolver *dateparse.Resolver
	Filter   *Filter
	Metrics  *metrics.Metrics
	Log      *logger.Logger
}

// New creates a Pipeline over the given config (nil means defaults), with
// the date resolver referenced to the current time.
func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	resolver := dateparse.NewResolver(time.Now())
	resolver.MaxSkewYears = cfg.Dates.MaxSkewYears
	return &Pipeline{
		Config:   cfg,
		Resolver: resolver,
		Filter:   NewFilter(cfg),
		Log:      logger.New(logger.LevelWarn, os.Stderr),
	}
}

// Run processes one batch. Only a nil batch is an API-boundary error; an
// empty batch is a valid no-op, and malformed records are rejections.
func (p *Pipeline) Run(batch []*event.CandidateEvent) (*Result, error) {
	if batch == nil {
		return nil, errors.New("pipeline: nil batch")
	}

	start := time.Now()
	dedup := NewDeduplicator()
	result := &Result{
		Accepted: make([]*event.NormalizedEvent, 0, len(batch)),
		Rejected: make([]*Rejection, 0),
		Report:   Report{Total: len(batch), Rejected: make(map[Reason]int)},
	}

	for _, candidate := range batch {
		p.processOne(candidate, dedup, result)
	}

	result.Report.Accepted = len(result.Accepted)
	result.Report.Duration = time.Since(start)

	if p.Metrics != nil {
		rejected := make(map[string]int, len(result.Report.Rejected))
		for reason, n := range result.Report.Rejected {
			rejected[string(reason)] = n
		}
		p.Metrics.ObserveBatch(result.Report.Total, result.Report.Accepted,
			result.Report.Deduplicated, rejected, result.Report.Duration)
	}
	if p.Log != nil {
		p.Log.Info("batch processed", logger.Fields{
			"total":        result.Report.Total,
			"accepted":     result.Report.Accepted,
			"rejected":     len(result.Rejected),
			"deduplicated": result.Report.Deduplicated,
		})
	}

	return result, nil
}

// processOne converts a single candidate. A panic from a contract-violating
// record is caught and logged with context; the rest of the batch is never
// affected by one bad record.
func (p *Pipeline) processOne(c *event.CandidateEvent, dedup *Deduplicator, result *Result) {
	defer func() {
		if r := recover(); r != nil {
			if p.Log != nil {
				p.Log.Error("record conversion panicked", logger.Fields{
					"event": fmt.Sprintf("%+v", c),
				}, fmt.Errorf("%v", r))
			}
			p.reject(result, c, ReasonInvalidRecord)
		}
	}()

	if c == nil {
		p.reject(result, nil, ReasonInvalidRecord)
		return
	}

	resolution := p.Resolver.Resolve(c.RawDate, c.URL, c.Context)

	if reason, ok := p.Filter.Check(c, resolution); !ok {
		p.reject(result, c, reason)
		return
	}

	sourceURL, ok := p.Filter.ResolveURL(c.URL)
	if !ok {
		p.reject(result, c, ReasonBadURL)
		return
	}
	imageURL := p.Filter.CleanImage(c.ImageURL)

	normalized := event.NewNormalized(c, resolution.Time, resolution.Dateless, sourceURL, imageURL)

	if dedup.Seen(normalized) {
		result.Report.Deduplicated++
		p.reject(result, c, ReasonDuplicate)
		return
	}

	result.Accepted = append(result.Accepted, normalized)
}

func (p *Pipeline) reject(result *Result, c *event.CandidateEvent, reason Reason) {
	result.Rejected = append(result.Rejected, &Rejection{Event: c, Reason: reason})
	result.Report.Rejected[reason]++
}
