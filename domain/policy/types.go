package policy

import (
	"fmt"

	"gopolicy/domain/core"
)

// ParameterKey identifies one of the fixed model parameters.
type ParameterKey string

const (
	KeyBaselineDeaths    ParameterKey = "baseline_deaths"
	KeyVaccineEfficacy   ParameterKey = "vaccine_efficacy"
	KeyVoluntaryAdoption ParameterKey = "voluntary_adoption"
	KeyMandateAdoption   ParameterKey = "mandate_adoption"
	KeyValueOfLife       ParameterKey = "value_of_life"
	KeyFreedomValue      ParameterKey = "freedom_value"
	KeyEnforcementCost   ParameterKey = "enforcement_cost"
	KeyRiskAversion      ParameterKey = "risk_aversion"
)

// ParameterKeys returns every recognized parameter key in canonical order.
func ParameterKeys() []ParameterKey {
	return []ParameterKey{
		KeyBaselineDeaths,
		KeyVaccineEfficacy,
		KeyVoluntaryAdoption,
		KeyMandateAdoption,
		KeyValueOfLife,
		KeyFreedomValue,
		KeyEnforcementCost,
		KeyRiskAversion,
	}
}

// IsRate reports whether the key is an efficacy/adoption-rate style parameter,
// conventionally in [0,1]. The convention is not enforced by the model.
func (k ParameterKey) IsRate() bool {
	switch k {
	case KeyVaccineEfficacy, KeyVoluntaryAdoption, KeyMandateAdoption:
		return true
	}
	return false
}

// IsMonetary reports whether the key carries a dollar-denominated value.
func (k ParameterKey) IsMonetary() bool {
	switch k {
	case KeyValueOfLife, KeyFreedomValue, KeyEnforcementCost:
		return true
	}
	return false
}

// Parameters holds the complete model parameter set. The fields are explicit
// rather than an open string-keyed map so typos surface at compile time;
// string-keyed access for sweeps and updates goes through Value/WithValue.
type Parameters struct {
	BaselineDeaths    float64 `json:"baseline_deaths"`
	VaccineEfficacy   float64 `json:"vaccine_efficacy"`
	VoluntaryAdoption float64 `json:"voluntary_adoption"`
	MandateAdoption   float64 `json:"mandate_adoption"`
	ValueOfLife       float64 `json:"value_of_life"`
	FreedomValue      float64 `json:"freedom_value"`
	EnforcementCost   float64 `json:"enforcement_cost"`
	RiskAversion      float64 `json:"risk_aversion"`
}

// DefaultParameters returns the documented baseline parameter set.
func DefaultParameters() Parameters {
	return Parameters{
		BaselineDeaths:    1000,  // deaths without any vaccination
		VaccineEfficacy:   0.9,   // reduction in deaths for vaccinated individuals
		VoluntaryAdoption: 0.6,   // population share vaccinating voluntarily
		MandateAdoption:   0.9,   // population share vaccinating under mandate
		ValueOfLife:       1e7,   // value assigned to a life saved
		FreedomValue:      4e8,   // society-wide value of maintaining freedom of choice
		EnforcementCost:   1.5e8, // cost of enforcing the mandate
		RiskAversion:      1.0,   // 1.0 risk-neutral, >1 risk-averse, <1 risk-seeking
	}
}

// Value returns the value stored under key.
func (p Parameters) Value(key ParameterKey) (float64, error) {
	switch key {
	case KeyBaselineDeaths:
		return p.BaselineDeaths, nil
	case KeyVaccineEfficacy:
		return p.VaccineEfficacy, nil
	case KeyVoluntaryAdoption:
		return p.VoluntaryAdoption, nil
	case KeyMandateAdoption:
		return p.MandateAdoption, nil
	case KeyValueOfLife:
		return p.ValueOfLife, nil
	case KeyFreedomValue:
		return p.FreedomValue, nil
	case KeyEnforcementCost:
		return p.EnforcementCost, nil
	case KeyRiskAversion:
		return p.RiskAversion, nil
	}
	return 0, core.NewUnknownParameterError(string(key))
}

// WithValue returns a copy of the parameter set with a single field overridden.
// Sweeps evaluate derived copies instead of mutating shared state, so there is
// no restore step to get wrong.
func (p Parameters) WithValue(key ParameterKey, value float64) (Parameters, error) {
	switch key {
	case KeyBaselineDeaths:
		p.BaselineDeaths = value
	case KeyVaccineEfficacy:
		p.VaccineEfficacy = value
	case KeyVoluntaryAdoption:
		p.VoluntaryAdoption = value
	case KeyMandateAdoption:
		p.MandateAdoption = value
	case KeyValueOfLife:
		p.ValueOfLife = value
	case KeyFreedomValue:
		p.FreedomValue = value
	case KeyEnforcementCost:
		p.EnforcementCost = value
	case KeyRiskAversion:
		p.RiskAversion = value
	default:
		return p, core.NewUnknownParameterError(string(key))
	}
	return p, nil
}

// Warning records a non-fatal problem encountered while applying updates.
type Warning struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Key, w.Message)
}

// Apply overwrites recognized parameters from updates. Unrecognized keys do not
// abort the remaining updates; each produces a structured warning instead.
func (p *Parameters) Apply(updates map[ParameterKey]float64) []Warning {
	var warnings []Warning
	for key, value := range updates {
		next, err := p.WithValue(key, value)
		if err != nil {
			warnings = append(warnings, Warning{
				Key:     string(key),
				Message: "unknown parameter, ignored",
			})
			continue
		}
		*p = next
	}
	return warnings
}

// Decision is the binary policy recommendation.
type Decision string

const (
	DecisionMandate   Decision = "Mandate"
	DecisionVoluntary Decision = "Voluntary"
)

// Outcome carries a decision together with the two utilities it was derived from.
type Outcome struct {
	Decision         Decision `json:"decision"`
	UtilityMandate   float64  `json:"utility_mandate"`
	UtilityVoluntary float64  `json:"utility_voluntary"`
}

// UtilityDifference returns utilityMandate - utilityVoluntary.
func (o Outcome) UtilityDifference() float64 {
	return o.UtilityMandate - o.UtilityVoluntary
}
