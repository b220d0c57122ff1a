package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
)

// Logger receives debug output from the engine. *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Engine runs the CLT, PJ and comparison calculations against one set of
// tax rules. An Engine is not modified by its calculations and may be shared
// between goroutines.
type Engine struct {
	Rules  domain.TaxRules
	Logger Logger
}

// NewEngine creates an engine with the built-in 2025 rules
func NewEngine() *Engine {
	return NewEngineWithRules(DefaultRules2025())
}

// NewEngineWithRules creates an engine with the given rules
func NewEngineWithRules(rules domain.TaxRules) *Engine {
	return &Engine{
		Rules:  rules,
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger. nil installs a NopLogger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) log() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

var defaultEngine = NewEngine()

// CalculateCLT runs the CLT calculator with the built-in rules
func CalculateCLT(in domain.CLTInput) domain.CalculationResult {
	return defaultEngine.CalculateCLT(in)
}

// CalculatePJ runs the PJ calculator with the built-in rules
func CalculatePJ(in domain.PJInput) domain.CalculationResult {
	return defaultEngine.CalculatePJ(in)
}

// Compare runs both calculators with the built-in rules
func Compare(clt domain.CLTInput, pj domain.PJInput) domain.ComparisonResult {
	return defaultEngine.Compare(clt, pj)
}
