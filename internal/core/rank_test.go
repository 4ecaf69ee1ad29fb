package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteAt(provider string, monthly float64) Quote {
	return Quote{
		ProviderName:   provider,
		ProviderCode:   provider[:3],
		MonthlyPremium: monthly,
		AnnualPremium:  monthly * 12,
		Deductible:     300,
		InsuranceModel: "basic",
	}
}

func TestRank_SortsAscendingByMonthlyPremium(t *testing.T) {
	quotes := []Quote{
		quoteAt("Helsana", 200.00),
		quoteAt("Concordia", 180.00),
		quoteAt("Swica", 310.25),
	}

	ranked, cheapest := Rank(quotes)

	require.Len(t, ranked, 3)
	assert.Equal(t, []float64{180.00, 200.00, 310.25}, []float64{
		ranked[0].MonthlyPremium, ranked[1].MonthlyPremium, ranked[2].MonthlyPremium,
	})
	require.NotNil(t, cheapest)
	assert.Equal(t, "Concordia", cheapest.ProviderName)
}

func TestRank_Empty(t *testing.T) {
	ranked, cheapest := Rank(nil)
	assert.Empty(t, ranked)
	assert.Nil(t, cheapest)
}

func TestRank_StableForEqualPremiums(t *testing.T) {
	quotes := []Quote{
		quoteAt("Helsana", 250.00),
		quoteAt("Sanitas", 250.00),
		quoteAt("Concordia", 250.00),
	}

	ranked, cheapest := Rank(quotes)

	// Equal premiums keep insertion order.
	assert.Equal(t, "Helsana", ranked[0].ProviderName)
	assert.Equal(t, "Sanitas", ranked[1].ProviderName)
	assert.Equal(t, "Concordia", ranked[2].ProviderName)
	assert.Equal(t, "Helsana", cheapest.ProviderName)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	quotes := []Quote{
		quoteAt("Helsana", 300.00),
		quoteAt("Concordia", 100.00),
	}

	Rank(quotes)

	assert.Equal(t, "Helsana", quotes[0].ProviderName, "input order preserved")
}
