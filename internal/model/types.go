package model

// VersionedRecord captures schema and codec evolution for stored data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// GenerationSummary condenses one side of one generation.
type GenerationSummary struct {
	Generation    int     `json:"generation"`
	Side          string  `json:"side"`
	Size          int     `json:"size"`
	TotalBits     int     `json:"total_bits"`
	MeanObjective float64 `json:"mean_objective"`
	MinObjective  int     `json:"min_objective"`
	MaxObjective  int     `json:"max_objective"`
	Subjective    float64 `json:"subjective"`
}

// RunRecord is everything kept about a finished run.
type RunRecord struct {
	VersionedRecord
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	CreatedAtUTC     string  `json:"created_at_utc"`
	Seed             int64   `json:"seed"`
	Generations      int     `json:"generations"`
	PopulationSize   int     `json:"population_size"`
	TraitBits        int     `json:"trait_bits"`
	TraitCount       int     `json:"trait_count"`
	Scorer           string  `json:"scorer"`
	Selector         string  `json:"selector"`
	Mutator          string  `json:"mutator"`
	MutationRate     float64 `json:"mutation_rate"`
	HallOfFameSize   int     `json:"hall_of_fame_size,omitempty"`
	HallOfFameScorer string  `json:"hall_of_fame_scorer,omitempty"`
	Samples          int     `json:"samples"`

	// Per generation, per individual objective values.
	ObjectiveA [][]int `json:"objective_a"`
	ObjectiveB [][]int `json:"objective_b"`

	SubjectiveA []float64 `json:"subjective_a"`
	SubjectiveB []float64 `json:"subjective_b"`

	SummaryA []GenerationSummary `json:"summary_a"`
	SummaryB []GenerationSummary `json:"summary_b"`
}
