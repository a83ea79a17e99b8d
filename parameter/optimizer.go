package parameter

// Scoring
const (
	// ScoreTimeWeight multiplies remaining seconds in the plan score
	ScoreTimeWeight = 100.0

	// DefaultRunsPerPlan is simulations averaged per plan evaluation
	DefaultRunsPerPlan = 4
)

// Random Search
const (
	// RandomSearchPlansPerStep is fresh plans evaluated per step
	RandomSearchPlansPerStep = 8
)

// Simulated Annealing
const (
	// AnnealingIterations is the iteration budget over which temperature decays 1 -> 0
	AnnealingIterations = 200

	// AnnealingIterationsPerStep is iterations run per step
	AnnealingIterationsPerStep = 4
)

// Genetic Search
const (
	// GAPopulationSize is candidates kept per generation
	GAPopulationSize = 24

	// GAFreshPerGeneration is random plans injected each generation
	GAFreshPerGeneration = 4

	// GATemperatureDecay multiplies mutation temperature each generation
	GATemperatureDecay = 0.93

	// GAInitialTemperature is the first generation's mutation temperature
	GAInitialTemperature = 1.0

	// GATournamentSize is candidates compared per tournament-selected parent
	GATournamentSize = 3
)

// Continuous Search
const (
	// ContinuousEvaluationsPerStep is score evaluations granted to the solver per step
	ContinuousEvaluationsPerStep = 40

	// ContinuousSimplexSize is the initial Nelder-Mead simplex edge in normalized units
	ContinuousSimplexSize = 0.15
)
