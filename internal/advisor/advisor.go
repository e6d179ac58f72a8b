package advisor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

// ErrInvalidInput is returned when a request violates a precondition of the
// decision core. It is checked here so the core never sees a bad price.
var ErrInvalidInput = errors.New("invalid input")

// Request is one analysis request as entered by a user.
type Request struct {
	Ticker         string          `json:"ticker" validate:"required"`
	PurchasePrice  decimal.Decimal `json:"purchase_price" validate:"gt=0"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	MA20           float64         `json:"moving_average_20"`
	RSI            float64         `json:"rsi"`
	MACD           float64         `json:"macd"`
	MACDSignal     float64         `json:"macd_signal"`
	Volume         int64           `json:"volume"`
	PreviousVolume int64           `json:"previous_volume"`
}

// DefaultRequest returns the sample position shown on first use.
func DefaultRequest() Request {
	return Request{
		Ticker:         "IONQ",
		PurchasePrice:  decimal.RequireFromString("15.00"),
		CurrentPrice:   decimal.RequireFromString("16.50"),
		MA20:           15.8,
		RSI:            45,
		MACD:           0.5,
		MACDSignal:     0.3,
		Volume:         1_500_000,
		PreviousVolume: 1_200_000,
	}
}

// Snapshot returns the indicator part of the request.
func (r Request) Snapshot() model.IndicatorSnapshot {
	return model.IndicatorSnapshot{
		CurrentPrice:   r.CurrentPrice.InexactFloat64(),
		MA20:           r.MA20,
		RSI:            r.RSI,
		MACD:           r.MACD,
		MACDSignal:     r.MACDSignal,
		Volume:         r.Volume,
		PreviousVolume: r.PreviousVolume,
	}
}

// Advisor validates requests and runs them through the scorer and the policy.
type Advisor struct {
	validate *validator.Validate
	now      func() time.Time
}

// New creates an Advisor.
func New() *Advisor {
	return &Advisor{validate: NewValidator(), now: time.Now}
}

// NewValidator returns a validator that understands decimal fields.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError wraps validator output as an ErrInvalidInput.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// Analyze scores the snapshot, computes the profit rate and resolves the action.
func (a *Advisor) Analyze(req Request) (*model.Analysis, error) {
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	if err := a.validate.Struct(req); err != nil {
		return nil, ValidationError(err)
	}

	score := strategy.Score(req.Snapshot())
	decision := strategy.Decide(req.PurchasePrice, req.CurrentPrice, score.Probability)

	return &model.Analysis{
		Ticker:        req.Ticker,
		Date:          a.now(),
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		ProfitRate:    decision.ProfitRate,
		Snapshot:      req.Snapshot(),
		Score:         score,
		Decision:      decision,
	}, nil
}
