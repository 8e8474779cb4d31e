package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentScoreBounds(t *testing.T) {
	assert.Equal(t, 100, IntentScore(100, 20))
	assert.Equal(t, 0, IntentScore(0, 0))
}

func TestIntentScoreLinearRange(t *testing.T) {
	for e := 0; e <= 100; e += 5 {
		for y := 0; y <= 20; y++ {
			want := int(math.Round(float64(e)*0.6 + float64(y)*2))
			assert.Equal(t, want, IntentScore(float64(e), float64(y)), "equity=%d years=%d", e, y)
		}
	}
}

func TestIntentScoreSaturates(t *testing.T) {
	for _, e := range []float64{0, 37, 55, 100} {
		assert.Equal(t, IntentScore(e, 20), IntentScore(e, 21))
		assert.Equal(t, IntentScore(e, 20), IntentScore(e, 45))
	}
	for _, y := range []float64{0, 7, 13, 20} {
		assert.Equal(t, IntentScore(100, y), IntentScore(120, y))
		assert.Equal(t, IntentScore(100, y), IntentScore(1000, y))
	}
}

func TestIntentScoreMonotonic(t *testing.T) {
	for y := 0.0; y <= 25; y++ {
		prev := -1
		for e := 0.0; e <= 110; e++ {
			s := IntentScore(e, y)
			assert.GreaterOrEqual(t, s, prev)
			prev = s
		}
	}
	for e := 0.0; e <= 110; e += 10 {
		prev := -1
		for y := 0.0; y <= 25; y += 0.5 {
			s := IntentScore(e, y)
			assert.GreaterOrEqual(t, s, prev)
			prev = s
		}
	}
}

func TestIntentScoreClampsSumOnly(t *testing.T) {
	// a negative term is offset by the other term before the clamp applies
	assert.Equal(t, 28, IntentScore(-20, 20))
	assert.Equal(t, 0, IntentScore(-200, 0))
}

func TestIntentTier(t *testing.T) {
	cases := map[int]Tier{
		100: TierHot,
		80:  TierHot,
		79:  TierWarm,
		60:  TierWarm,
		59:  TierMild,
		40:  TierMild,
		39:  TierCold,
		0:   TierCold,
	}
	for score, want := range cases {
		assert.Equal(t, want, IntentTier(score), "score %d", score)
	}
}
