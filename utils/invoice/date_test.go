package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each default pattern is exercised on its own so shadowing by a
// higher-priority pattern cannot hide a broken expression.
func TestDatePatternsIndependently(t *testing.T) {
	cases := map[string][]struct {
		text string
		want string
	}{
		"text_month": {
			{"Date: Mar 06 2012", "2012-03-06"},
			{"March 6, 2012", "2012-03-06"},
			{"sept. 30 2021", "2021-09-30"},
			{"Feb 30 2020", ""},
		},
		"mdy": {
			{"on 03/06/2012", "2012-03-06"},
			{"12-25-2019", "2019-12-25"},
			{"13/01/2020", ""},
		},
		"mdy_short": {
			{"12/25/19", "2019-12-25"},
			{"12/25/75", "1975-12-25"},
			{"02/29/01", ""},
		},
		"ymd": {
			{"2019-12-25", "2019-12-25"},
			{"2020/2/29", "2020-02-29"},
			{"2021-02-29", ""},
		},
		"timestamp": {
			{"06/15/2020 14:32:10", "2020-06-15"},
			{"06/15/2020 without time", ""},
		},
	}

	defaults := DefaultPatterns()
	require.Len(t, cases, len(defaults.DatePatterns))

	for _, dp := range defaults.DatePatterns {
		p := DefaultPatterns()
		p.DatePatterns = []DatePattern{dp}
		lib, err := p.Compile()
		require.NoError(t, err)
		e := NewExtractor(lib)

		for _, c := range cases[dp.Name] {
			t.Run(dp.Name+"/"+c.text, func(t *testing.T) {
				assert.Equal(t, c.want, e.ExtractDate(c.text))
			})
		}
	}
}

func TestExtractDatePriority(t *testing.T) {
	e := Default()

	// the text-month pattern outranks numeric dates regardless of position
	assert.Equal(t, "2012-03-06", e.ExtractDate("Paid 03/07/2012\nIssued March 06 2012"))

	// an impossible date is skipped in favour of the next match
	assert.Equal(t, "2020-03-01", e.ExtractDate("02/30/2020 then 03/01/2020"))

	assert.Equal(t, "", e.ExtractDate("no dates here"))
	assert.Equal(t, "", e.ExtractDate(""))
}

func TestExtractDateAlwaysCanonical(t *testing.T) {
	inputs := []string{
		"4/5/21", "Dec 31 1999", "1/1/0001", "99/99/9999", "2020-13-01",
		"Jan 0 2020", "0/0/00", "Oct 15 2020 10/16/2020",
	}
	for _, in := range inputs {
		d := Default().ExtractDate(in)
		if d == "" {
			continue
		}
		_, err := time.Parse(DateLayout, d)
		assert.NoError(t, err, "input %q produced %q", in, d)
	}
}
