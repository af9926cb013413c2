// Package testkit provides shared fixtures for model and sweep tests.
package testkit

import (
	"testing"

	"gopolicy/domain/policy"
)

// BaselineParameters returns the documented default parameter set.
func BaselineParameters() policy.Parameters {
	return policy.DefaultParameters()
}

// TieParameters returns a parameter set where the mandate and voluntary
// utilities are bit-identical: both scenarios share the adoption rate and the
// mandate carries no freedom or enforcement penalty, so the two totals run
// through the exact same arithmetic.
func TieParameters() policy.Parameters {
	params := policy.DefaultParameters()
	params.MandateAdoption = params.VoluntaryAdoption
	params.FreedomValue = 0
	params.EnforcementCost = 0
	return params
}

// NegativeLivesSavedParameters returns a parameter set that drives lives saved
// negative (efficacy below zero), the undefined-utility edge case.
func NegativeLivesSavedParameters() policy.Parameters {
	params := policy.DefaultParameters()
	params.VaccineEfficacy = -0.5
	return params
}

// ParametersWith returns the defaults with a single key overridden, failing
// the test on an unknown key.
func ParametersWith(t *testing.T, key policy.ParameterKey, value float64) policy.Parameters {
	t.Helper()
	params, err := policy.DefaultParameters().WithValue(key, value)
	if err != nil {
		t.Fatalf("override %s: %v", key, err)
	}
	return params
}
