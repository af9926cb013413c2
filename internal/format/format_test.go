package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gopolicy/domain/policy"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "$0.00"},
		{999.99, "$999.99"},
		{1500, "$1.50 thousand"},
		{4000000, "$4.00 million"},
		{1.2e9, "$1.20 billion"},
		{-1500, "$-1.50 thousand"},
		{-2.5e9, "$-2.50 billion"},
		{1e7, "$10.00 million"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.value), "Currency(%v)", tt.value)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "90.0%", Percent(0.9))
	assert.Equal(t, "62.5%", Percent(0.625))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestParameter(t *testing.T) {
	assert.Equal(t, "$400.00 million", Parameter(policy.KeyFreedomValue, 4e8))
	assert.Equal(t, "$10.00 million", Parameter(policy.KeyValueOfLife, 1e7))
	assert.Equal(t, "90.0%", Parameter(policy.KeyVaccineEfficacy, 0.9))
	assert.Equal(t, "60.0%", Parameter(policy.KeyVoluntaryAdoption, 0.6))
	assert.Equal(t, "1000", Parameter(policy.KeyBaselineDeaths, 1000))
	assert.Equal(t, "1.5", Parameter(policy.KeyRiskAversion, 1.5))
}
