// Package coevo runs minimal-substrate coevolution experiments and keeps
// their records for the lifetime of the client.
package coevo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"coevo/internal/config"
	"coevo/internal/evo"
	"coevo/internal/genotype"
	"coevo/internal/logging"
	"coevo/internal/model"
	"coevo/internal/stats"
	"coevo/internal/storage"
)

type Options struct {
	StoreKind string
	Logger    *slog.Logger
}

type Client struct {
	store storage.Store
	log   *slog.Logger
}

type RunRequest struct {
	// Experiment defaults to config.Default() when nil. It is validated
	// but never modified.
	Experiment *config.Experiment
}

type RunSummary struct {
	RunID       string
	Seed        int64
	Generations int
	Samples     int
	SummaryA    []model.GenerationSummary
	SummaryB    []model.GenerationSummary
	// Result holds the full population history for callers that render it.
	Result evo.CoevolutionResult
}

type RunItem struct {
	RunID          string
	Name           string
	CreatedAtUTC   string
	Seed           int64
	Generations    int
	PopulationSize int
	Scorer         string
	Selector       string
	FinalMeanA     float64
	FinalMeanB     float64
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	store, err := storage.NewStore(storeKind)
	if err != nil {
		return nil, err
	}
	if err := store.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{store: store, log: logger}, nil
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	exp := req.Experiment
	if exp == nil {
		exp = config.Default()
	}
	if err := exp.Validate(); err != nil {
		return RunSummary{}, fmt.Errorf("invalid experiment: %w", err)
	}

	engine, err := buildEngine(exp, c.log)
	if err != nil {
		return RunSummary{}, err
	}
	popA, popB, err := initialPopulations(exp.Population)
	if err != nil {
		return RunSummary{}, err
	}

	runID := uuid.NewString()
	c.log.Info("run started", "run_id", runID, "name", exp.Name, "seed", engine.seed)
	result, err := engine.co.Run(ctx, popA, popB, exp.Generations)
	if err != nil {
		return RunSummary{}, fmt.Errorf("run %s: %w", runID, err)
	}

	summaryA, summaryB := stats.Summarize(result)
	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:             runID,
		Name:           exp.Name,
		CreatedAtUTC:   time.Now().UTC().Format(time.RFC3339),
		Seed:           result.Seed,
		Generations:    result.Generations,
		PopulationSize: exp.Population.Size,
		TraitBits:      exp.Population.TraitBits,
		TraitCount:     exp.Population.TraitCount,
		Scorer:         engine.scorer,
		Selector:       engine.selector,
		Mutator:        engine.mutator,
		MutationRate:   exp.Mutator.Rate,
		Samples:        result.Samples,
		ObjectiveA:     stats.ObjectiveValues(result.PopulationsA),
		ObjectiveB:     stats.ObjectiveValues(result.PopulationsB),
		SubjectiveA:    append([]float64(nil), result.SubjectiveA...),
		SubjectiveB:    append([]float64(nil), result.SubjectiveB...),
		SummaryA:       summaryA,
		SummaryB:       summaryB,
	}
	if exp.HallOfFame.Enabled {
		record.HallOfFameSize = exp.HallOfFame.Size
		record.HallOfFameScorer = engine.hallOfFame
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, fmt.Errorf("save run %s: %w", runID, err)
	}

	return RunSummary{
		RunID:       runID,
		Seed:        result.Seed,
		Generations: result.Generations,
		Samples:     result.Samples,
		SummaryA:    summaryA,
		SummaryB:    summaryB,
		Result:      result,
	}, nil
}

// GetRun returns the stored record of one run.
func (c *Client) GetRun(ctx context.Context, runID string) (model.RunRecord, error) {
	if runID == "" {
		return model.RunRecord{}, errors.New("run id is required")
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("%w: %s", storage.ErrRunNotFound, runID)
	}
	return record, nil
}

// Runs lists stored runs newest first. limit <= 0 defaults to 20.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RunItem, 0, len(records))
	for _, r := range records {
		item := RunItem{
			RunID:          r.ID,
			Name:           r.Name,
			CreatedAtUTC:   r.CreatedAtUTC,
			Seed:           r.Seed,
			Generations:    r.Generations,
			PopulationSize: r.PopulationSize,
			Scorer:         r.Scorer,
			Selector:       r.Selector,
		}
		if n := len(r.SummaryA); n > 0 {
			item.FinalMeanA = r.SummaryA[n-1].MeanObjective
		}
		if n := len(r.SummaryB); n > 0 {
			item.FinalMeanB = r.SummaryB[n-1].MeanObjective
		}
		out = append(out, item)
	}
	return out, nil
}

type engine struct {
	co         *evo.Coevolution
	seed       int64
	scorer     string
	selector   string
	mutator    string
	hallOfFame string
}

func buildEngine(exp *config.Experiment, logger *slog.Logger) (engine, error) {
	scorer, err := evo.ResolveScorer(evo.ScorerSpec{
		Kind:         exp.Scorer.Kind,
		SampleSize:   exp.Scorer.SampleSize,
		Intransitive: exp.Scorer.Intransitive,
	})
	if err != nil {
		return engine{}, err
	}

	spec := evo.SelectorSpec{
		Name:           exp.Selector.Kind,
		Bias:           exp.Selector.Bias,
		TournamentSize: exp.Selector.TournamentSize,
	}
	if v := exp.Selector.Virulence; v.Enabled {
		spec.Virulence = &evo.VirulenceSpec{Lambda: v.Lambda, Normalise: v.Normalise}
	}
	selector, err := evo.ResolveSelector(spec)
	if err != nil {
		return engine{}, err
	}

	mutator, err := evo.NewMutator(exp.Mutator.Rate, exp.Mutator.BitFlip)
	if err != nil {
		return engine{}, err
	}

	var (
		hof     *evo.HallOfFame
		hofName string
	)
	if exp.HallOfFame.Enabled {
		hofScorer, err := evo.ResolveScorer(evo.ScorerSpec{
			Kind:         exp.HallOfFame.Kind,
			SampleSize:   exp.HallOfFame.SampleSize,
			Intransitive: exp.HallOfFame.Intransitive,
		})
		if err != nil {
			return engine{}, err
		}
		hof, err = evo.NewHallOfFame(hofScorer, exp.HallOfFame.Size)
		if err != nil {
			return engine{}, err
		}
		hofName = hofScorer.Name()
	}

	seed := evo.ResolveSeed(exp.Seed, exp.FixedSeed)
	co, err := evo.NewCoevolution(evo.CoevolutionConfig{
		Scorer:     scorer,
		Selector:   selector,
		Mutator:    &mutator,
		HallOfFame: hof,
		Seed:       seed,
		Logger:     logger,
	})
	if err != nil {
		return engine{}, err
	}
	return engine{
		co:         co,
		seed:       seed,
		scorer:     scorer.Name(),
		selector:   selector.Name(),
		mutator:    mutator.Name(),
		hallOfFame: hofName,
	}, nil
}

func initialPopulations(cfg config.PopulationConfig) (genotype.Population, genotype.Population, error) {
	gen, err := genotype.NewGenerator(cfg.TraitBits, cfg.TraitCount)
	if err != nil {
		return nil, nil, err
	}
	popA, err := gen.Population(cfg.Size, cfg.InitialValueA)
	if err != nil {
		return nil, nil, fmt.Errorf("population a: %w", err)
	}
	popB, err := gen.Population(cfg.Size, cfg.InitialValueB)
	if err != nil {
		return nil, nil, fmt.Errorf("population b: %w", err)
	}
	return popA, popB, nil
}
