package datawarehouse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LimitExpression is the comparison shape of a Limit. The string value is the
// schema's canonical expression with LOWERBOUND and HIGHERBOUND placeholders.
type LimitExpression string

const (
	LimitInclusiveRange         LimitExpression = "LOWERBOUND <= X <= HIGHERBOUND"
	LimitLowerExclusiveRange    LimitExpression = "LOWERBOUND < X <= HIGHERBOUND"
	LimitHigherExclusiveRange   LimitExpression = "LOWERBOUND <= X < HIGHERBOUND"
	LimitExclusiveRange         LimitExpression = "LOWERBOUND < X < HIGHERBOUND"
	LimitAtLeast                LimitExpression = "LOWERBOUND <= X"
	LimitAbove                  LimitExpression = "LOWERBOUND < X"
	LimitAtMost                 LimitExpression = "X <= HIGHERBOUND"
	LimitBelow                  LimitExpression = "X < HIGHERBOUND"
	LimitEqual                  LimitExpression = "X == HIGHERBOUND"
	LimitNotEqual               LimitExpression = "X != HIGHERBOUND"
	LimitOutsideInclusive       LimitExpression = "X <= LOWERBOUND OR HIGHERBOUND <= X"
	LimitOutsideLowerExclusive  LimitExpression = "X < LOWERBOUND or HIGHERBOUND <= X"
	LimitOutsideHigherExclusive LimitExpression = "X <= LOWERBOUND or HIGHERBOUND < X"
	LimitOutsideExclusive       LimitExpression = "X < LOWERBOUND or HIGHERBOUND < X"
)

const (
	lowerPlaceholder  = "LOWERBOUND"
	higherPlaceholder = "HIGHERBOUND"
)

// LimitExpressions lists every supported expression in schema order.
func LimitExpressions() []LimitExpression {
	return []LimitExpression{
		LimitInclusiveRange,
		LimitLowerExclusiveRange,
		LimitHigherExclusiveRange,
		LimitExclusiveRange,
		LimitAtLeast,
		LimitAbove,
		LimitAtMost,
		LimitBelow,
		LimitEqual,
		LimitNotEqual,
		LimitOutsideInclusive,
		LimitOutsideLowerExclusive,
		LimitOutsideHigherExclusive,
		LimitOutsideExclusive,
	}
}

// Bounds reports which bounds the expression requires. ok is false for an
// unknown expression.
func (e LimitExpression) Bounds() (lower, higher, ok bool) {
	for _, known := range LimitExpressions() {
		if e == known {
			s := string(e)
			return strings.Contains(s, lowerPlaceholder), strings.Contains(s, higherPlaceholder), true
		}
	}
	return false, false, false
}

// Limit is a pass/fail boundary. The fields are unexported so a Limit only
// exists with exactly the bounds its expression requires.
type Limit struct {
	expression LimitExpression
	lower      float64
	higher     float64
}

type limitBounds struct {
	lower, higher       float64
	hasLower, hasHigher bool
}

// LimitOption supplies a bound to NewLimit.
type LimitOption func(*limitBounds)

func WithLowerBound(v float64) LimitOption {
	return func(b *limitBounds) {
		b.lower = v
		b.hasLower = true
	}
}

func WithHigherBound(v float64) LimitOption {
	return func(b *limitBounds) {
		b.higher = v
		b.hasHigher = true
	}
}

// NewLimit builds a Limit. Supplying a bound the expression does not use, or
// omitting one it does, fails with ErrConstruction.
func NewLimit(expr LimitExpression, opts ...LimitOption) (Limit, error) {
	needLower, needHigher, ok := expr.Bounds()
	if !ok {
		return Limit{}, fmt.Errorf("%w: unknown limit expression %q", ErrConstruction, string(expr))
	}
	var b limitBounds
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	if needLower != b.hasLower {
		return Limit{}, boundMismatch(expr, "lower", needLower)
	}
	if needHigher != b.hasHigher {
		return Limit{}, boundMismatch(expr, "higher", needHigher)
	}
	for _, v := range []float64{b.lower, b.higher} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Limit{}, fmt.Errorf("%w: limit bound must be finite", ErrConstruction)
		}
	}
	if needLower && needHigher && b.lower > b.higher {
		return Limit{}, fmt.Errorf("%w: lower bound %s exceeds higher bound %s", ErrConstruction, formatBound(b.lower), formatBound(b.higher))
	}
	return Limit{expression: expr, lower: b.lower, higher: b.higher}, nil
}

func boundMismatch(expr LimitExpression, which string, required bool) error {
	if required {
		return fmt.Errorf("%w: limit %q requires a %s bound", ErrConstruction, string(expr), which)
	}
	return fmt.Errorf("%w: limit %q takes no %s bound", ErrConstruction, string(expr), which)
}

// RangeLimit builds a two-bound limit.
func RangeLimit(expr LimitExpression, lower, higher float64) (Limit, error) {
	return NewLimit(expr, WithLowerBound(lower), WithHigherBound(higher))
}

// LowerLimit builds a lower-bound-only limit.
func LowerLimit(expr LimitExpression, lower float64) (Limit, error) {
	return NewLimit(expr, WithLowerBound(lower))
}

// HigherLimit builds a higher-bound-only limit.
func HigherLimit(expr LimitExpression, higher float64) (Limit, error) {
	return NewLimit(expr, WithHigherBound(higher))
}

func (l Limit) Expression() LimitExpression {
	return l.expression
}

func (l Limit) LowerBound() (float64, bool) {
	needLower, _, _ := l.expression.Bounds()
	return l.lower, needLower
}

func (l Limit) HigherBound() (float64, bool) {
	_, needHigher, _ := l.expression.Bounds()
	return l.higher, needHigher
}

func (l Limit) isZero() bool {
	return l.expression == ""
}

// String renders the expression with its bounds substituted, the form written
// to the LimitExpression attribute.
func (l Limit) String() string {
	out := string(l.expression)
	out = strings.ReplaceAll(out, higherPlaceholder, formatBound(l.higher))
	out = strings.ReplaceAll(out, lowerPlaceholder, formatBound(l.lower))
	return out
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
