package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/etnz/fundsim/docs"
	"github.com/etnz/fundsim/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They keep context of your previous questions.

			The user is an individual investor planning a long term investment in a set of funds.
			Help them understand the funds' figures, pick a strategy matching their risk profile,
			and see what their savings could become.

			Devise a plan of questions to ask to each expert and come up with the best response.
			Never present a projection as a promise: past returns do not predict future ones.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader, aware of the financial products and institutions,
		and of the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			`}}},
		},
	}
}

// Tools computes with fundsim on behalf of the Analyst.
type Tools struct {
	Provider fundsim.SeriesProvider
	Workers  int
	Today    date.Date // zero means today
}

// NewAnalyst returns the expert computing fund metrics, allocations,
// projections and risk profiles.
func NewAnalyst(t *Tools) *Expert {
	lib := t.Functions()
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It computes the historical metrics of funds,
		allocates a portfolio with a strategy, projects the growth of an investment,
		and classifies an investor's risk profile from their questionnaire answers.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a quantitative analyst. Always use the Tools to get figures, never make them up.
			Funds are identified by their symbol, list them with the Funds tool when unsure.

			This is how the figures are computed:

			` + must(docs.GetTopics("metrics", "strategies", "projection", "profile"))}}},
		},
		Library: NewLibrary(lib),
	}
}

// Functions returns the tools of the Analyst.
func (t *Tools) Functions() []Function {
	return []Function{
		&Func{Decl: fundsDecl, Func: t.funds},
		&Func{Decl: metricsDecl, Func: t.metrics},
		&Func{Decl: allocateDecl, Func: t.allocate},
		&Func{Decl: projectDecl, Func: t.project},
		&Func{Decl: classifyDecl, Func: t.classify},
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var fundIDsSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Items:       &genai.Schema{Type: genai.TypeString},
	Description: "The symbols of the funds, like SPY or GLD.",
}

var markdownResponse = &genai.Schema{Type: genai.TypeString, Description: "A markdown report."}

var fundsDecl = &genai.FunctionDeclaration{
	Name:        "Funds",
	Description: "Funds lists the symbol, name and description of the known funds.",
	Response:    markdownResponse,
}

func (t *Tools) funds(_ context.Context, _ map[string]any) (string, error) {
	r := &renderer.CatalogReport{}
	for _, f := range fundsim.Catalog {
		r.Funds = append(r.Funds, renderer.CatalogRow{Fund: f, Available: true})
	}
	return renderer.RenderCatalog(r), nil
}

var metricsDecl = &genai.FunctionDeclaration{
	Name:        "Metrics",
	Description: "Metrics computes the annualized return, volatility, YTD return and dividend yield of funds. Funds that cannot be analyzed are listed with the reason.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"funds":  fundIDsSchema,
			"period": {Type: genai.TypeInteger, Description: "Trailing years of the annualized return and volatility, 5 by default, 0 for the full history."},
		},
		Required: []string{"funds"},
	},
	Response: markdownResponse,
}

func (t *Tools) metrics(ctx context.Context, args map[string]any) (string, error) {
	ids, err := argStrings(args, "funds")
	if err != nil {
		return "", err
	}
	period, err := argNumber(args, "period", fundsim.DefaultPeriod)
	if err != nil {
		return "", err
	}
	a, err := t.analyze(ctx, ids, int(period))
	if err != nil {
		return "", err
	}
	return renderer.RenderMetrics(renderer.NewMetricsReport(a, int(period), t.today())), nil
}

var allocateDecl = &genai.FunctionDeclaration{
	Name:        "Allocate",
	Description: "Allocate selects up to 5 funds and weights them with a strategy, and returns the portfolio's expected return and volatility.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"funds": fundIDsSchema,
			"strategy": {
				Type:        genai.TypeString,
				Enum:        strategyNames(),
				Description: "The allocation strategy.",
			},
		},
		Required: []string{"funds", "strategy"},
	},
	Response: markdownResponse,
}

func (t *Tools) allocate(ctx context.Context, args map[string]any) (string, error) {
	ids, err := argStrings(args, "funds")
	if err != nil {
		return "", err
	}
	name, err := argString(args, "strategy", true)
	if err != nil {
		return "", err
	}
	strategy, err := fundsim.ParseStrategy(name)
	if err != nil {
		return "", err
	}
	a, err := t.analyze(ctx, ids, fundsim.DefaultPeriod)
	if err != nil {
		return "", err
	}
	res, err := fundsim.Allocate(strategy, a.Metrics)
	if err != nil {
		return "", err
	}
	out := renderer.RenderAllocation(renderer.NewAllocationReport(res))
	if excluded := a.Excluded(); len(excluded) > 0 {
		out += "\nExcluded for lack of data: " + strings.Join(excluded, ", ") + "\n"
	}
	return out, nil
}

var projectDecl = &genai.FunctionDeclaration{
	Name:        "Project",
	Description: "Project computes the value of an investment year by year. The rate is either given, or the average annualized return of funds.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"amount":      {Type: genai.TypeNumber, Description: "The initial amount."},
			"currency":    {Type: genai.TypeString, Description: "ISO code of the currency, USD by default."},
			"years":       {Type: genai.TypeInteger, Description: "The number of years."},
			"rate":        {Type: genai.TypeNumber, Description: "The yearly rate in percent, like 7.5. Ignored when funds are given."},
			"funds":       fundIDsSchema,
			"compounding": {Type: genai.TypeString, Enum: []string{"continuous", "annual"}, Description: "continuous by default."},
			"age":         {Type: genai.TypeInteger, Description: "The investor's current age, optional."},
		},
		Required: []string{"amount", "years"},
	},
	Response: markdownResponse,
}

func (t *Tools) project(ctx context.Context, args map[string]any) (string, error) {
	amount, err := argNumber(args, "amount", 0)
	if err != nil {
		return "", err
	}
	years, err := argNumber(args, "years", 0)
	if err != nil {
		return "", err
	}
	age, err := argNumber(args, "age", 0)
	if err != nil {
		return "", err
	}
	currency, err := argString(args, "currency", false)
	if err != nil {
		return "", err
	}
	if currency == "" {
		currency = "USD"
	}
	name, err := argString(args, "compounding", false)
	if err != nil {
		return "", err
	}
	mode := fundsim.Continuous
	if name != "" {
		if mode, err = fundsim.ParseCompounding(name); err != nil {
			return "", err
		}
	}

	var rate float64
	if _, ok := args["funds"]; ok {
		ids, err := argStrings(args, "funds")
		if err != nil {
			return "", err
		}
		rate, err = fundsim.ProjectionRate(ctx, t.Provider, ids, mode)
		if err != nil {
			return "", err
		}
	} else {
		pct, err := argNumber(args, "rate", 0)
		if err != nil {
			return "", err
		}
		rate = fundsim.Percent(pct).Rate()
	}

	initial := fundsim.M(amount, currency)
	values, err := fundsim.ProjectMoney(initial, rate, int(years), mode)
	if err != nil {
		return "", err
	}
	return renderer.RenderProjection(renderer.NewProjectionReport(initial, rate, mode, values, int(age))), nil
}

var classifyDecl = &genai.FunctionDeclaration{
	Name: "Classify",
	Description: "Classify scores the 8 answers of the risk questionnaire and returns the investor's risk profile and matching strategy.\n\n" +
		questionnaire(),
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"answers": {Type: genai.TypeString, Description: "The 8 answers in order, each a letter from a to d, like \"abcdabcd\"."},
		},
		Required: []string{"answers"},
	},
	Response: markdownResponse,
}

func (t *Tools) classify(_ context.Context, args map[string]any) (string, error) {
	s, err := argString(args, "answers", true)
	if err != nil {
		return "", err
	}
	answers, err := fundsim.ParseAnswers(s)
	if err != nil {
		return "", err
	}
	score, err := fundsim.Score(answers)
	if err != nil {
		return "", err
	}
	profile, err := fundsim.ProfileForScore(score)
	if err != nil {
		return "", err
	}
	return renderer.RenderProfile(renderer.NewProfileReport(answers, score, profile)), nil
}

func (t *Tools) analyze(ctx context.Context, ids []string, period int) (fundsim.Analysis, error) {
	if t.Provider == nil {
		return fundsim.Analysis{}, fmt.Errorf("no fund data available")
	}
	return fundsim.AnalyzeFunds(ctx, t.Provider, ids, t.Workers, fundsim.WithPeriod(period), fundsim.WithToday(t.today()))
}

func (t *Tools) today() date.Date {
	if t.Today.IsZero() {
		return date.Today()
	}
	return t.Today
}

func strategyNames() []string {
	var names []string
	for _, s := range fundsim.Strategies() {
		names = append(names, s.String())
	}
	return names
}

// questionnaire lists the questions and their choices.
func questionnaire() string {
	var b strings.Builder
	for i, q := range fundsim.Questionnaire {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
		for j, c := range q.Choices {
			fmt.Fprintf(&b, "   %c) %s\n", 'a'+j, c)
		}
	}
	return b.String()
}
