//go:build unit

package menu

import (
	"bytes"
	"github.com/gostonefire/parcelmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func newTestIndex(t *testing.T) *parcelmap.ParcelIndex {
	pi, err := parcelmap.NewParcelIndex()
	require.NoError(t, err, "create parcel index")
	_, err = pi.Load(strings.NewReader("France,10,5.5\nfrance,3,2.0\nGermany,7,9.9\nKenya,20,1.0\nChile,5,100\n"))
	require.NoError(t, err, "load parcels")
	return pi
}

func runMenu(t *testing.T, pi *parcelmap.ParcelIndex, input string) string {
	var out bytes.Buffer
	err := New(pi, strings.NewReader(input), &out, nil).Run()
	require.NoError(t, err, "run menu")
	return out.String()
}

func TestMenu_Run(t *testing.T) {
	t.Run("lists all parcels for a country", func(t *testing.T) {
		// Execute
		out := runMenu(t, newTestIndex(t), "1\nFRANCE\n7\n")

		// Check
		first := strings.Index(out, "Destination: france, Weight: 3, Valuation: 2.00")
		second := strings.Index(out, "Destination: france, Weight: 10, Valuation: 5.50")
		assert.True(t, first >= 0 && second > first, "french parcels lightest first")
		assert.NotContains(t, out, "germany", "no other country")
		assert.Contains(t, out, "Bye", "exited")
	})

	t.Run("filters by weight", func(t *testing.T) {
		out := runMenu(t, newTestIndex(t), "2\nfrance\n3\n3\nfrance\n3\n7\n")
		assert.Equal(t, 1, strings.Count(out, "Weight: 10,"), "heavier parcel listed once")
		assert.NotContains(t, out, "Weight: 3,", "threshold weight excluded")
		assert.Contains(t, out, "No parcels found for france", "nothing lighter")
	})

	t.Run("shows totals and extremes for one country only", func(t *testing.T) {
		out := runMenu(t, newTestIndex(t), "4\nKenya\n5\nKenya\n7\n")
		assert.Contains(t, out, "Total load for Kenya: 1 parcels, weight 20, valuation 1.00", "colliding chile excluded")
		assert.Contains(t, out, "Lightest parcel: Destination: kenya, Weight: 20", "lightest")
		assert.Contains(t, out, "Heaviest parcel: Destination: kenya, Weight: 20", "heaviest")
	})

	t.Run("shows statistics", func(t *testing.T) {
		out := runMenu(t, newTestIndex(t), "6\n7\n")
		assert.Contains(t, out, "Records: 5", "records")
		assert.Contains(t, out, "1 shared by several countries", "collision bucket")
	})

	t.Run("re-prompts on invalid input", func(t *testing.T) {
		out := runMenu(t, newTestIndex(t), "x\n9\n1\n\nAVeryLongCountryNameIndeed\nPeru\n2\nperu\nheavy\n1\n7\n")
		assert.Contains(t, out, `Invalid input: "x" is not a choice between 1 and 7`, "non numeric choice")
		assert.Contains(t, out, `Invalid input: "9" is not a choice between 1 and 7`, "out of range choice")
		assert.Contains(t, out, "Invalid input: country name can not be empty", "empty country")
		assert.Contains(t, out, "at most 20 allowed", "over long country")
		assert.Contains(t, out, `Invalid input: "heavy" is not a whole number`, "bad weight")
		assert.Equal(t, 2, strings.Count(out, "No parcels found for Peru")+strings.Count(out, "No parcels found for peru"), "queries still answered")
	})

	t.Run("tears the index down on exit and at end of input", func(t *testing.T) {
		pi := newTestIndex(t)
		runMenu(t, pi, "7\n")
		assert.Equal(t, pi.Allocated(), pi.Freed(), "freed on exit")

		pi = newTestIndex(t)
		runMenu(t, pi, "1\n")
		assert.Equal(t, 5, pi.Freed(), "freed at end of input")
	})
}
