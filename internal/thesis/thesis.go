package thesis

import (
	"fmt"
	"strings"
	"time"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/model"
)

// Section titles, in document order.
const (
	SectionIdeas        = "1. Core Investment Idea (The Why)"
	SectionCatalysts    = "2. Catalysts & Momentum"
	SectionFundamentals = "3. Fundamental Analysis"
	SectionRisks        = "4. Risk Analysis (Devil's Advocate) [Important]"
	SectionPlan         = "5. Action Plan"
	SectionVerdict      = "6. Final Verdict"
)

const dateLayout = "2006-01-02"

// HoldingPeriod is the target holding horizon.
type HoldingPeriod string

const (
	PeriodShort HoldingPeriod = "short"
	PeriodMid   HoldingPeriod = "mid"
	PeriodLong  HoldingPeriod = "long"
)

// RiskResponse is what the author commits to do when a risk materialises.
type RiskResponse string

const (
	ResponseCut    RiskResponse = "cut"
	ResponseReduce RiskResponse = "reduce"
	ResponseAdd    RiskResponse = "add"
	ResponseWatch  RiskResponse = "watch"
)

// Verdict is the final decision of the thesis.
type Verdict string

const (
	VerdictBuy   Verdict = "buy"
	VerdictWatch Verdict = "watch"
	VerdictPass  Verdict = "pass"
)

// Option is one selectable value with its display label.
type Option[T ~string] struct {
	Value T
	Label string
}

// Selectable values in display order; the first is the default.
var (
	Periods = []Option[HoldingPeriod]{
		{PeriodShort, "Short-term (1 month)"},
		{PeriodMid, "Mid-term (6 months to 1 year)"},
		{PeriodLong, "Long-term (3+ years)"},
	}
	Responses = []Option[RiskResponse]{
		{ResponseCut, "Cut losses decisively"},
		{ResponseReduce, "Reduce the position"},
		{ResponseAdd, "Buy more instead"},
		{ResponseWatch, "Wait and watch"},
	}
	Verdicts = []Option[Verdict]{
		{VerdictBuy, "Approve buy (Strong Buy)"},
		{VerdictWatch, "Watch a little longer (Watch)"},
		{VerdictPass, "Do not buy (Pass)"},
	}
)

func labelOf[T ~string](opts []Option[T], v T) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return string(v)
}

// Input is everything the thesis document is assembled from.
type Input struct {
	Date         string        `json:"date" yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	Author       string        `json:"author" yaml:"author"`
	Ticker       string        `json:"ticker" yaml:"ticker" validate:"required"`
	Price        float64       `json:"price" yaml:"price" validate:"gte=0"`
	Period       HoldingPeriod `json:"period" yaml:"period" validate:"oneof=short mid long"`
	Ideas        []string      `json:"ideas" yaml:"ideas"`
	Catalysts    []string      `json:"catalysts" yaml:"catalysts"`
	Fundamentals []string      `json:"fundamentals" yaml:"fundamentals"`
	Risks        []string      `json:"risks" yaml:"risks"`
	RiskResponse RiskResponse  `json:"risk_response" yaml:"risk_response" validate:"oneof=cut reduce add watch"`
	Plan         []string      `json:"plan" yaml:"plan"`
	Verdict      Verdict       `json:"verdict" yaml:"verdict" validate:"oneof=buy watch pass"`
}

// NewInput returns an input carrying the default selections.
func NewInput(author string, now time.Time) Input {
	return Input{
		Date:         now.Format(dateLayout),
		Author:       author,
		Period:       Periods[0].Value,
		RiskResponse: Responses[0].Value,
		Verdict:      Verdicts[0].Value,
	}
}

// Prefill copies ticker and price from the latest analysis into fields
// the user left empty. a may be nil.
func Prefill(in *Input, a *model.Analysis) {
	if a == nil {
		return
	}
	if in.Ticker == "" {
		in.Ticker = a.Ticker
	}
	if in.Price == 0 {
		in.Price = a.CurrentPrice.InexactFloat64()
	}
}

// Validate rejects inputs with unknown selections or no ticker.
func Validate(in Input) error {
	if err := advisor.NewValidator().Struct(in); err != nil {
		return advisor.ValidationError(err)
	}
	return nil
}

func (in Input) date() time.Time {
	if t, err := time.Parse(dateLayout, in.Date); err == nil {
		return t
	}
	return time.Now()
}

// FileName returns the download name of the markdown document.
func FileName(in Input) string {
	ticker := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, in.Ticker)
	return fmt.Sprintf("Investment_Thesis_%s_%s.md", ticker, in.date().Format(dateLayout))
}

func bullets(items []string) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n") + "\n"
}

// Render assembles the markdown thesis document.
func Render(in Input) string {
	var b strings.Builder

	b.WriteString("# Investment Thesis\n\n")
	b.WriteString(fmt.Sprintf("**Date:** %s  \n", in.date().Format("January 2, 2006")))
	b.WriteString(fmt.Sprintf("**Author:** %s  \n", in.Author))
	b.WriteString(fmt.Sprintf("**Ticker:** %s  \n", in.Ticker))
	b.WriteString(fmt.Sprintf("**Current price:** $%.2f  \n", in.Price))
	b.WriteString(fmt.Sprintf("**Target holding period:** %s\n\n", labelOf(Periods, in.Period)))
	b.WriteString("---\n\n")

	section := func(title, prompt string, items []string) {
		b.WriteString(fmt.Sprintf("## %s\n> \"%s\"\n\n", title, prompt))
		b.WriteString(bullets(items))
		b.WriteString("\n")
	}
	section(SectionIdeas, "Why this stock, and why now?", in.Ideas)
	section(SectionCatalysts, "What will push the price higher?", in.Catalysts)
	section(SectionFundamentals, "How strong is the business underneath?", in.Fundamentals)

	b.WriteString(fmt.Sprintf("## %s\n> \"If I am wrong, what will the reason be?\"\n\n", SectionRisks))
	b.WriteString(bullets(in.Risks))
	b.WriteString(fmt.Sprintf("- **Response plan:** %s\n\n", labelOf(Responses, in.RiskResponse)))

	section(SectionPlan, "A mechanical trading plan with emotion removed", in.Plan)

	b.WriteString(fmt.Sprintf("## %s\n**□ %s**\n\n", SectionVerdict, labelOf(Verdicts, in.Verdict)))
	b.WriteString("---\n")
	b.WriteString(fmt.Sprintf("*Written by %s, a future 100K investor*\n", in.Author))
	return b.String()
}
