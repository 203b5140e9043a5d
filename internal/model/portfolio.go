package model

// Distribution describes one normally distributed quantity: a value is drawn
// from N(Mean, SD) and then clamped to [Min, Max].
type Distribution struct {
	Mean float64 `yaml:"mean"`
	SD   float64 `yaml:"sd"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// SegmentConfig holds one segment's share of new originations and the six
// distribution tuples its parameters are drawn from.
type SegmentConfig struct {
	Name       string  `yaml:"name"`
	Proportion float64 `yaml:"proportion"`

	SurvivalShape   Distribution `yaml:"survival_shape"`
	SurvivalScale   Distribution `yaml:"survival_scale"`
	InterestRate    Distribution `yaml:"interest_rate"`
	FeeRate         Distribution `yaml:"fee_rate"`
	InterchangeRate Distribution `yaml:"interchange_rate"`
	ServicingCost   Distribution `yaml:"servicing_cost"`
}

// SegmentParameters is one sampled parameter set for one segment. All six
// values are drawn once per simulation and reused across every year of it.
type SegmentParameters struct {
	SurvivalShape float64
	SurvivalScale float64

	InterestRate    float64
	FeeRate         float64
	InterchangeRate float64
	ServicingCost   float64
}
