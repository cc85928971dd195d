package chain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	raw := rawFixture("2021-03-19:30", 30, "R")
	ch, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "XYZ", ch.Info.Symbol)
	assert.Equal(t, "Xyz Corp. Common Stock", ch.Info.Underlying.Description)
	require.Len(t, ch.Expirations, 1)

	date := time.Date(2021, 3, 19, 0, 0, 0, 0, time.UTC)
	expi, ok := ch.Expirations[date]
	require.True(t, ok, "expiration not keyed by parsed date")
	assert.Equal(t, 30, expi.Info.DaysToExpiration)
	assert.Equal(t, "R", expi.Info.ExpirationType)
	assert.True(t, expi.IsRegular())

	// Calls strictly ascending, puts strictly descending by strike.
	require.Len(t, expi.Calls, 3)
	require.Len(t, expi.Puts, 3)
	for i := 1; i < len(expi.Calls); i++ {
		assert.True(t, expi.Calls[i-1].StrikePrice.LessThan(expi.Calls[i].StrikePrice),
			"calls not ascending at %d", i)
	}
	for i := 1; i < len(expi.Puts); i++ {
		assert.True(t, expi.Puts[i-1].StrikePrice.GreaterThan(expi.Puts[i].StrikePrice),
			"puts not descending at %d", i)
	}
}

func TestNormalizeTagMismatch(t *testing.T) {
	raw := rawFixture("2021-03-19:30", 30, "R")
	raw.PutExpDateMap["2021-04-16:58"] = raw.PutExpDateMap["2021-03-19:30"]
	_, err := Normalize(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))

	raw = rawFixture("2021-03-19:30", 30, "R")
	delete(raw.PutExpDateMap, "2021-03-19:30")
	raw.PutExpDateMap["2021-03-26:37"] = sideMap(37, "S",
		optDef{strike: "95", mark: "1.50"})
	_, err = Normalize(raw)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestNormalizeBadTag(t *testing.T) {
	raw := rawFixture("not-a-date:30", 30, "R")
	_, err := Normalize(raw)
	require.Error(t, err)
}

func TestSortedAndRegular(t *testing.T) {
	raw := rawFixture("2021-03-19:30", 30, "R")
	weekly := rawFixture("2021-03-05:16", 16, "S")
	raw.CallExpDateMap["2021-03-05:16"] = weekly.CallExpDateMap["2021-03-05:16"]
	raw.PutExpDateMap["2021-03-05:16"] = weekly.PutExpDateMap["2021-03-05:16"]

	ch, err := Normalize(raw)
	require.NoError(t, err)

	sorted := ch.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, 16, sorted[0].Info.DaysToExpiration)
	assert.Equal(t, 30, sorted[1].Info.DaysToExpiration)
	assert.False(t, sorted[0].IsRegular())

	regular := ch.Regular()
	require.Len(t, regular, 1)
	assert.Equal(t, 30, regular[0].Info.DaysToExpiration)
}
