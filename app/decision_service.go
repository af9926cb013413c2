package app

import (
	"context"
	"time"

	"gopolicy/domain/core"
	"gopolicy/domain/policy"
)

// DecisionService evaluates the baseline decision with a full per-component
// utility breakdown for presentation consumers.
type DecisionService struct {
	model *policy.Model
}

// NewDecisionService creates a decision service over the given model.
func NewDecisionService(model *policy.Model) *DecisionService {
	return &DecisionService{model: model}
}

// ScenarioBreakdown holds the per-component utilities behind one scenario.
type ScenarioBreakdown struct {
	AdoptionRate    float64 `json:"adoption_rate"`
	ExpectedDeaths  float64 `json:"expected_deaths"`
	LivesSaved      float64 `json:"lives_saved"`
	LifeUtility     float64 `json:"life_utility"`
	FreedomUtility  float64 `json:"freedom_utility"`
	EnforcementCost float64 `json:"enforcement_cost"`
	TotalUtility    float64 `json:"total_utility"`
}

// DecisionResult contains the complete output of one decision evaluation.
type DecisionResult struct {
	RunID      core.RunID        `json:"run_id"`
	CreatedAt  core.Timestamp    `json:"created_at"`
	Parameters policy.Parameters `json:"parameters"`
	Outcome    policy.Outcome    `json:"outcome"`
	Mandate    ScenarioBreakdown `json:"mandate"`
	Voluntary  ScenarioBreakdown `json:"voluntary"`
	RuntimeMs  int64             `json:"runtime_ms"`
}

// Evaluate runs the decision once and assembles the breakdown.
func (s *DecisionService) Evaluate(ctx context.Context) (*DecisionResult, error) {
	startTime := time.Now()

	outcome, err := s.model.Decide()
	if err != nil {
		return nil, err
	}

	mandate, err := s.breakdown(true)
	if err != nil {
		return nil, err
	}
	voluntary, err := s.breakdown(false)
	if err != nil {
		return nil, err
	}

	return &DecisionResult{
		RunID:      core.RunID(core.NewID()),
		CreatedAt:  core.Now(),
		Parameters: s.model.Parameters(),
		Outcome:    outcome,
		Mandate:    mandate,
		Voluntary:  voluntary,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

func (s *DecisionService) breakdown(isMandate bool) (ScenarioBreakdown, error) {
	params := s.model.Parameters()
	adoption := params.VoluntaryAdoption
	if isMandate {
		adoption = params.MandateAdoption
	}

	lifeUtility, err := s.model.LifeUtility(isMandate)
	if err != nil {
		return ScenarioBreakdown{}, err
	}
	totalUtility, err := s.model.TotalUtility(isMandate)
	if err != nil {
		return ScenarioBreakdown{}, err
	}

	return ScenarioBreakdown{
		AdoptionRate:    adoption,
		ExpectedDeaths:  s.model.ExpectedDeaths(adoption),
		LivesSaved:      s.model.LivesSaved(adoption),
		LifeUtility:     lifeUtility,
		FreedomUtility:  s.model.FreedomUtility(isMandate),
		EnforcementCost: s.model.EnforcementCost(isMandate),
		TotalUtility:    totalUtility,
	}, nil
}
