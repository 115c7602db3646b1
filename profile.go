package fundsim

import (
	"fmt"
	"strings"
)

// RiskProfile is the investor's tolerance to risk.
type RiskProfile int

const (
	ProfileConservative RiskProfile = iota
	ProfileModerate
	ProfileAggressive
	ProfileVeryAggressive
)

var profileNames = []string{"conservative", "moderate", "aggressive", "very-aggressive"}

var profileDescriptions = []string{
	"You look for stability and safety. You prefer avoiding losses, even at the cost of lower returns.",
	"You accept some risk for higher returns, but protecting your capital comes first.",
	"You are willing to take significant risks to maximize your returns.",
	"High risk tolerance, focused on maximizing gains with high volatility.",
}

func (p RiskProfile) String() string {
	if p < 0 || int(p) >= len(profileNames) {
		return fmt.Sprintf("profile(%d)", int(p))
	}
	return profileNames[p]
}

// Description explains the profile to the investor.
func (p RiskProfile) Description() string {
	if p < 0 || int(p) >= len(profileDescriptions) {
		return ""
	}
	return profileDescriptions[p]
}

// Strategy returns the allocation strategy matching the profile.
func (p RiskProfile) Strategy() Strategy {
	switch p {
	case ProfileModerate:
		return Moderate
	case ProfileAggressive:
		return Aggressive
	case ProfileVeryAggressive:
		return VeryAggressive
	default:
		return Conservative
	}
}

// ParseRiskProfile parses a profile name, case insensitive.
func ParseRiskProfile(name string) (RiskProfile, error) {
	n := strings.NewReplacer(" ", "-", "_", "-").Replace(strings.ToLower(strings.TrimSpace(name)))
	for i, s := range profileNames {
		if s == n {
			return RiskProfile(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown risk profile %q", ErrInvalidArgument, name)
}

func (p RiskProfile) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Answer is the letter of the choice picked for a question, from 'a' to 'd'.
type Answer byte

// ParseAnswer parses a single letter answer, case insensitive.
func ParseAnswer(s string) (Answer, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'a' || s[0] > 'd' {
		return 0, fmt.Errorf("%w %q, want a, b, c or d", ErrInvalidAnswer, s)
	}
	return Answer(s[0]), nil
}

// Weight returns the score of the answer: a=1, b=2, c=3, d=4.
func (a Answer) Weight() (int, error) {
	if a < 'a' || a > 'd' {
		return 0, fmt.Errorf("%w %q", ErrInvalidAnswer, string(rune(a)))
	}
	return int(a-'a') + 1, nil
}

// Question is an entry of the questionnaire. Choices are listed from the
// most cautious (a) to the boldest (d).
type Question struct {
	Text    string
	Choices [4]string
}

// QuestionCount is the number of questions in the Questionnaire.
const QuestionCount = 8

// Questionnaire is the scored instrument used by Classify.
var Questionnaire = [QuestionCount]Question{
	{"What is your main goal when investing?", [4]string{
		"Preserve my capital and avoid losses at all costs.",
		"Grow my money moderately with limited risk.",
		"Achieve high growth, even if it means taking more risk.",
		"Maximize my gains, even with a high chance of losses.",
	}},
	{"What would you do if your portfolio lost 10% of its value in a month?", [4]string{
		"Withdraw my investment immediately to avoid further losses.",
		"Make some adjustments, leaning towards a more conservative position.",
		"Not worry too much, markets fluctuate and I would wait.",
		"See an opportunity to invest more, looking for long-term gains.",
	}},
	{"How long are you willing to keep your investments before needing the money?", [4]string{
		"Less than 1 year.",
		"Between 1 and 3 years.",
		"Between 3 and 5 years.",
		"More than 5 years.",
	}},
	{"How much do you know about investing and financial markets?", [4]string{
		"Nothing, I am a beginner and prefer to keep it simple.",
		"Basic, I understand concepts like risk and diversification.",
		"Intermediate, I know well how markets and some instruments work.",
		"Advanced, I have experience investing and managing portfolios.",
	}},
	{"How would you react if an investment gained 15% in six months?", [4]string{
		"Sell immediately to lock in the gains.",
		"Consider selling a part to protect the gain.",
		"Keep the investment, expecting higher gains.",
		"Invest more in that opportunity to maximize the benefits.",
	}},
	{"Which share of your wealth are you willing to put in risky investments?", [4]string{
		"Less than 10%.",
		"Between 10% and 30%.",
		"Between 30% and 50%.",
		"More than 50%.",
	}},
	{"What do you think about volatility in investments?", [4]string{
		"I prefer to avoid it, I am not comfortable with fluctuations.",
		"I tolerate it at a moderate level, as long as it is manageable.",
		"It is an opportunity for better returns if handled well.",
		"It is part of the game and I am willing to take significant risks.",
	}},
	{"How would you diversify your investments?", [4]string{
		"All in low risk instruments such as bonds or safe funds.",
		"Mostly conservative options with some exposure to stocks.",
		"A balanced mix of stocks, bonds and other assets.",
		"Mostly stocks and high-yield assets.",
	}},
}

// profileBands maps contiguous score ranges to profiles.
var profileBands = []struct {
	min, max int
	profile  RiskProfile
}{
	{8, 14, ProfileConservative},
	{15, 20, ProfileModerate},
	{21, 26, ProfileAggressive},
	{27, 32, ProfileVeryAggressive},
}

// Score sums the weights of the answers, it ranges from 8 to 32.
func Score(answers [QuestionCount]Answer) (int, error) {
	var total int
	for i, a := range answers {
		w, err := a.Weight()
		if err != nil {
			return 0, fmt.Errorf("question %d: %w", i+1, err)
		}
		total += w
	}
	return total, nil
}

// ProfileForScore returns the profile of a questionnaire score.
func ProfileForScore(score int) (RiskProfile, error) {
	for _, b := range profileBands {
		if b.min <= score && score <= b.max {
			return b.profile, nil
		}
	}
	return 0, fmt.Errorf("%w: score %d out of range [8, 32]", ErrInvalidArgument, score)
}

// Classify returns the risk profile of a complete set of answers.
func Classify(answers [QuestionCount]Answer) (RiskProfile, error) {
	score, err := Score(answers)
	if err != nil {
		return 0, err
	}
	return ProfileForScore(score)
}

// ParseAnswers parses answers given as a string of letters, e.g. "abcdabcd",
// optionally separated by commas or spaces.
func ParseAnswers(s string) ([QuestionCount]Answer, error) {
	var answers [QuestionCount]Answer
	letters := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if len(letters) != QuestionCount {
		return answers, fmt.Errorf("%w: got %d answers, want %d", ErrInvalidAnswer, len(letters), QuestionCount)
	}
	for i := range answers {
		a, err := ParseAnswer(letters[i : i+1])
		if err != nil {
			return answers, fmt.Errorf("question %d: %w", i+1, err)
		}
		answers[i] = a
	}
	return answers, nil
}
