package policy

import (
	"math"

	"gopolicy/domain/core"
)

// diminishingReturns is the fixed exponent applied to lives saved before
// valuation: early lives saved count for more than late ones.
const diminishingReturns = 0.9

// Model evaluates the mandate-vs-voluntary utility comparison over one
// parameter set. The zero value is not usable; construct with NewModel.
//
// All evaluation methods are read-only, so a Model is safe for concurrent
// readers. Only SetParameters mutates state.
type Model struct {
	params Parameters
}

// NewModel creates a model with the given parameter set.
func NewModel(params Parameters) *Model {
	return &Model{params: params}
}

// NewDefaultModel creates a model with the documented baseline parameters.
func NewDefaultModel() *Model {
	return NewModel(DefaultParameters())
}

// Parameters returns a copy of the current parameter set.
func (m *Model) Parameters() Parameters {
	return m.params
}

// SetParameters overwrites recognized parameters and returns a warning per
// unrecognized key. Unknown keys never abort the remaining updates.
func (m *Model) SetParameters(updates map[ParameterKey]float64) []Warning {
	return m.params.Apply(updates)
}

// ExpectedDeaths computes expected deaths at the given vaccine adoption rate.
// The vaccinated fraction carries residual risk scaled by (1 - efficacy); the
// unvaccinated fraction carries full baseline risk. Rates outside [0,1] are
// the caller's responsibility; no clamping here.
func (m *Model) ExpectedDeaths(adoptionRate float64) float64 {
	vaccinated := m.params.BaselineDeaths * adoptionRate * (1 - m.params.VaccineEfficacy)
	unvaccinated := m.params.BaselineDeaths * (1 - adoptionRate)
	return vaccinated + unvaccinated
}

// LivesSaved computes lives saved relative to zero vaccination. Non-negative
// for efficacy and adoption in [0,1]; may go negative outside those ranges.
func (m *Model) LivesSaved(adoptionRate float64) float64 {
	return m.params.BaselineDeaths - m.ExpectedDeaths(adoptionRate)
}

// FreedomUtility returns the aggregate societal loss of freedom of choice
// under a mandate, for a population normalized to 1.
func (m *Model) FreedomUtility(isMandate bool) float64 {
	if isMandate {
		return -m.params.FreedomValue
	}
	return 0
}

// EnforcementCost returns the cost of enforcing the mandate, as a utility.
func (m *Model) EnforcementCost(isMandate bool) float64 {
	if isMandate {
		return -m.params.EnforcementCost
	}
	return 0
}

// LifeUtility values the lives saved under the scenario's adoption rate,
// with diminishing returns applied before valuation.
//
// Negative lives saved raised to the fractional exponent has no real result;
// that case returns ErrUndefinedUtility instead of a silent NaN.
func (m *Model) LifeUtility(isMandate bool) (float64, error) {
	adoption := m.params.VoluntaryAdoption
	if isMandate {
		adoption = m.params.MandateAdoption
	}

	livesSaved := m.LivesSaved(adoption)
	if livesSaved < 0 {
		return 0, core.NewUndefinedUtilityError(livesSaved)
	}

	effective := math.Pow(livesSaved, diminishingReturns)
	return effective * m.params.ValueOfLife, nil
}

// TotalUtility sums life, freedom, and enforcement utilities, then applies the
// sign-preserving risk adjustment: |total|^risk_aversion with the original
// sign, so risk_aversion = 1.0 is the identity.
func (m *Model) TotalUtility(isMandate bool) (float64, error) {
	lifeUtility, err := m.LifeUtility(isMandate)
	if err != nil {
		return 0, err
	}

	total := lifeUtility + m.FreedomUtility(isMandate) + m.EnforcementCost(isMandate)

	if total >= 0 {
		return math.Pow(total, m.params.RiskAversion), nil
	}
	return -math.Pow(-total, m.params.RiskAversion), nil
}

// Decide computes both total utilities and recommends a mandate strictly when
// the mandate utility exceeds the voluntary utility. Ties resolve to
// Voluntary; this is the model's only tie-break.
func (m *Model) Decide() (Outcome, error) {
	utilityMandate, err := m.TotalUtility(true)
	if err != nil {
		return Outcome{}, err
	}

	utilityVoluntary, err := m.TotalUtility(false)
	if err != nil {
		return Outcome{}, err
	}

	decision := DecisionVoluntary
	if utilityMandate > utilityVoluntary {
		decision = DecisionMandate
	}

	return Outcome{
		Decision:         decision,
		UtilityMandate:   utilityMandate,
		UtilityVoluntary: utilityVoluntary,
	}, nil
}
