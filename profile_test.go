package fundsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileForScore(t *testing.T) {
	tests := []struct {
		score int
		want  RiskProfile
	}{
		{8, ProfileConservative},
		{14, ProfileConservative},
		{15, ProfileModerate},
		{20, ProfileModerate},
		{21, ProfileAggressive},
		{26, ProfileAggressive},
		{27, ProfileVeryAggressive},
		{32, ProfileVeryAggressive},
	}
	for _, tt := range tests {
		got, err := ProfileForScore(tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ProfileForScore(%d)", tt.score)
	}
	for _, score := range []int{0, 7, 33} {
		_, err := ProfileForScore(score)
		assert.ErrorIs(t, err, ErrInvalidArgument, "ProfileForScore(%d)", score)
	}
}

func TestProfileBandsAreContiguous(t *testing.T) {
	next := 8
	for _, b := range profileBands {
		assert.Equal(t, next, b.min)
		next = b.max + 1
	}
	assert.Equal(t, 33, next)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		answers string
		score   int
		want    RiskProfile
	}{
		{"aaaaaaaa", 8, ProfileConservative},
		{"abababab", 12, ProfileConservative},
		{"b,b,b,b,b,b,b,c", 17, ProfileModerate},
		{"c c c c c c c c", 24, ProfileAggressive},
		{"ddddddda", 29, ProfileVeryAggressive},
		{"DDDDDDDD", 32, ProfileVeryAggressive},
	}
	for _, tt := range tests {
		answers, err := ParseAnswers(tt.answers)
		require.NoError(t, err, tt.answers)

		score, err := Score(answers)
		require.NoError(t, err)
		assert.Equal(t, tt.score, score, tt.answers)

		got, err := Classify(answers)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.answers)
	}
}

func TestClassify_InvalidAnswers(t *testing.T) {
	_, err := ParseAnswers("abcd")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	_, err = ParseAnswers("abcdabce")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	var answers [QuestionCount]Answer // zero values are not answers
	_, err = Classify(answers)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestRiskProfile(t *testing.T) {
	for p, s := range map[RiskProfile]Strategy{
		ProfileConservative:   Conservative,
		ProfileModerate:       Moderate,
		ProfileAggressive:     Aggressive,
		ProfileVeryAggressive: VeryAggressive,
	} {
		assert.Equal(t, s, p.Strategy())
		assert.NotEmpty(t, p.Description())
		got, err := ParseRiskProfile(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestQuestionnaire(t *testing.T) {
	for i, q := range Questionnaire {
		assert.NotEmpty(t, q.Text, "question %d", i+1)
		for _, c := range q.Choices {
			assert.NotEmpty(t, c, "question %d", i+1)
		}
	}
}
