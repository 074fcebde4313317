package algebra

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mikecarlton/dimcalc/internal/testutil"
	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/quantity"
	"github.com/mikecarlton/dimcalc/pkg/system"
	"github.com/mikecarlton/dimcalc/pkg/unit"
	"github.com/mikecarlton/dimcalc/pkg/value"
)

// distinct metric units, one per rule variable
var bound = map[string]unit.Defined{
	"A": unit.Meter,
	"B": unit.Second,
	"C": unit.Kilogram,
	"D": unit.Kelvin,
	"E": unit.Mole,
	"Y": unit.Newton,
}

// instantiate builds a unit with the shape of p
func instantiate(t *testing.T, p Pattern) unit.Undefined {
	t.Helper()
	switch p := p.(type) {
	case Var:
		d, ok := bound[string(p)]
		require.True(t, ok, "no unit for variable %s", p)
		return unit.Wrap(d)
	case product:
		u, err := unit.X(instantiate(t, p.left), instantiate(t, p.right))
		require.NoError(t, err)
		return u
	case quotient:
		u, err := unit.Per(instantiate(t, p.numerator), instantiate(t, p.denominator))
		require.NoError(t, err)
		return u
	case inverse:
		return unit.ReciprocalOf(instantiate(t, p.inner))
	case unity:
		return unit.Wrap(unit.One)
	}
	t.Fatalf("unknown pattern %T", p)
	return nil
}

func operands(t *testing.T, rule Rule) (value.Value, value.Value) {
	t.Helper()
	return value.Undefined(number.New(6), instantiate(t, rule.Left)),
		value.Undefined(number.New(2), instantiate(t, rule.Right))
}

// naive combines the operand units without simplification
func naive(t *testing.T, op Op, left, right value.Value) unit.Unit {
	t.Helper()
	l, r := lift(left), lift(right)
	if op == Multiply {
		u, err := unit.X(l, r)
		require.NoError(t, err)
		return u
	}
	u, err := unit.Per(l, r)
	require.NoError(t, err)
	return u
}

func findRule(t *testing.T, name string) Rule {
	t.Helper()
	for _, rule := range DefaultRules() {
		if rule.Name() == name {
			return rule
		}
	}
	t.Fatalf("no rule named %s", name)
	return Rule{}
}

func mustPer(t *testing.T, n, d unit.Defined) unit.Divided {
	t.Helper()
	u, err := unit.Per(unit.Wrap(n), unit.Wrap(d))
	require.NoError(t, err)
	return u
}

func TestSpeedTimesTime(t *testing.T) {
	e := New(WithLogger(testutil.NewTestLogger(t)))

	speed, err := e.Div(value.Of(10, unit.Meter), value.Of(2, unit.Second))
	require.NoError(t, err)
	assert.Equal(t, "5 m/s", speed.String())
	assert.False(t, speed.IsDefined())

	distance, err := e.Times(speed, value.Of(5, unit.Second))
	require.NoError(t, err)
	assert.Equal(t, "25 m", distance.String())
	assert.True(t, distance.IsDefined())
	assert.Equal(t, quantity.Kind(quantity.Extended{Quantity: quantity.Length}), distance.Kind())
}

func TestMixedScales(t *testing.T) {
	speed, err := Div(value.Of(36, unit.Kilometer), value.Of(1, unit.Hour))
	require.NoError(t, err)
	assert.Equal(t, "36 km/hr", speed.String())

	distance, err := Times(speed, value.Of(30, unit.Minute))
	require.NoError(t, err)
	assert.Equal(t, "18 km", distance.String())

	scaled, err := Times(value.Of(50, unit.Percent), value.Of(2, unit.Meter))
	require.NoError(t, err)
	assert.Equal(t, "1 m", scaled.String())
}

func TestFullCancellation(t *testing.T) {
	m, s := unit.Wrap(unit.Meter), unit.Wrap(unit.Second)
	ms, err := unit.X(m, s)
	require.NoError(t, err)
	sm, err := unit.X(s, m)
	require.NoError(t, err)

	left := value.Undefined(number.One, unit.ReciprocalOf(ms))
	right := value.Undefined(number.One, sm)

	match, err := Resolve(Multiply, left, right)
	require.NoError(t, err)
	assert.Equal(t, "Reciprocal(AXB)TimesBXA", match.Rule.Name())

	result, err := Times(left, right)
	require.NoError(t, err)
	assert.Equal(t, "1", result.Magnitude().String())
	assert.True(t, result.IsDefined())
	assert.True(t, result.IsDimensionless())
	assert.Equal(t, unit.Unit(unit.One), result.Unit())
}

func TestReciprocalRoundTrip(t *testing.T) {
	one := value.Dimensionless(number.One)

	tests := []struct {
		name    string
		v       value.Value
		inverse string
	}{
		{"defined", value.Of(4, unit.Meter), "0.25 1/m"},
		{"quotient", value.Undefined(number.New(5), mustPer(t, unit.Meter, unit.Second)), "0.2 s/m"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			inverse, err := Div(one, test.v)
			require.NoError(t, err)
			assert.Equal(t, test.inverse, inverse.String())

			product, err := Times(inverse, test.v)
			require.NoError(t, err)
			assert.True(t, product.IsDimensionless())
			assert.Equal(t, "1", product.Magnitude().String())

			back, err := Div(one, inverse)
			require.NoError(t, err)
			assert.True(t, back.Equal(test.v), "got %s", back)
			assert.Equal(t, test.v.IsDefined(), back.IsDefined())
		})
	}
}

func TestCommutation(t *testing.T) {
	pairs := [][2]string{
		{"APerBTimesB", "BTimesAPerB"},
		{"APerBXCTimesB", "BTimesAPerBXC"},
		{"APerBTimesBPerC", "BPerCTimesAPerB"},
		{"CPerAXDTimesAXB", "AXBTimesCPerAXD"},
		{"ReciprocalATimesB", "BTimesReciprocalA"},
		{"ReciprocalATimesAPerB", "APerBTimesReciprocalA"},
		{"ReciprocalATimesA", "ATimesReciprocalA"},
	}

	e := New(WithVerify(true))
	for _, pair := range pairs {
		t.Run(pair[0], func(t *testing.T) {
			first, second := findRule(t, pair[0]), findRule(t, pair[1])
			left, right := operands(t, first)

			forward, err := e.Apply(first, left, right)
			require.NoError(t, err)
			backward, err := e.Apply(second, right, left)
			require.NoError(t, err)

			assert.True(t, forward.Equal(backward), "%s != %s", forward, backward)
		})
	}
}

func TestApplyRejectsShape(t *testing.T) {
	_, err := New().Apply(findRule(t, "APerBTimesB"), value.Of(1, unit.Meter), value.Of(1, unit.Second))
	assert.ErrorIs(t, err, ErrNoRule)
}

func TestEveryRuleIsSound(t *testing.T) {
	e := New(WithVerify(true), WithLogger(testutil.NewTestLogger(t)))

	for _, rule := range e.Rules() {
		t.Run(rule.Name(), func(t *testing.T) {
			left, right := operands(t, rule)

			result, err := e.Apply(rule, left, right)
			require.NoError(t, err)
			assert.True(t, unit.Identical(naive(t, rule.Op, left, right), result.Unit()),
				"%s derived %s", rule, result.Unit())

			want := "12"
			if rule.Op == Divide {
				want = "3"
			}
			assert.Equal(t, want, result.Magnitude().String())
		})
	}
}

func TestResolutionIsClosed(t *testing.T) {
	e := New(WithVerify(true))

	for _, rule := range e.Rules() {
		t.Run(rule.Name(), func(t *testing.T) {
			left, right := operands(t, rule)

			match, err := e.Resolve(rule.Op, left, right)
			require.NoError(t, err)
			assert.True(t, unit.Identical(naive(t, rule.Op, left, right), match.Target),
				"%s derived %s", match.Name(), match.Target)

			if _, ok := match.Target.(unit.Extended); ok {
				t.Errorf("%s left a bare extended unit", match.Name())
			}
		})
	}
}

func TestAssociativity(t *testing.T) {
	a, b, c := value.Of(2, unit.Meter), value.Of(3, unit.Second), value.Of(5, unit.Kilogram)

	ab, err := Times(a, b)
	require.NoError(t, err)
	left, err := Times(ab, c)
	require.NoError(t, err)

	bc, err := Times(b, c)
	require.NoError(t, err)
	right, err := Times(a, bc)
	require.NoError(t, err)

	assert.True(t, left.Equal(right), "%s != %s", left, right)
	assert.Equal(t, "30", left.Magnitude().String())
}

func TestCapability(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		left     value.Value
		right    value.Value
		expected system.Set
	}{
		{"metric with any", Multiply, value.Of(1, unit.Meter), value.Of(1, unit.Hour), system.Metric},
		{"any with any", Multiply, value.Of(1, unit.Hour), value.Of(1, unit.Minute), system.All},
		{"imperial with uk", Multiply, value.Of(1, unit.Foot), value.Of(1, unit.Stone), system.UKImperial},
		{"imperial with us", Divide, value.Of(1, unit.Pound), value.Of(1, unit.USPint), system.USCustomary},
		{"imperial with any", Divide, value.Of(1, unit.Mile), value.Of(1, unit.Hour), system.Imperial},
		{"metric and uk with any", Divide, value.Of(1, unit.Tonne), value.Of(1, unit.Hour), system.MetricUK},
		{"metric and us with any", Divide, value.Of(1, unit.FoodCalorie), value.Of(1, unit.Minute), system.MetricUS},
		{"metric and uk with metric and us", Multiply, value.Of(1, unit.Tonne), value.Of(1, unit.FoodCalorie), system.Metric},
		{"metric and uk with uk", Multiply, value.Of(1, unit.Tonne), value.Of(1, unit.Stone), system.UKImperial},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			match, err := Resolve(test.op, test.left, test.right)
			require.NoError(t, err)
			assert.Equal(t, test.expected, match.System)
			assert.Equal(t, test.expected, match.Target.Systems())
		})
	}
}

func TestIncompatibleSystems(t *testing.T) {
	tests := []struct {
		name  string
		left  value.Value
		right value.Value
	}{
		{"metric with uk", value.Of(1, unit.Kilogram), value.Of(1, unit.Stone)},
		{"metric with imperial", value.Of(1, unit.Meter), value.Of(1, unit.Foot)},
		{"us with uk", value.Of(1, unit.USPint), value.Of(1, unit.ImperialPint)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Times(test.left, test.right)
			assert.ErrorIs(t, err, system.ErrIncompatible)
			_, err = Div(test.left, test.right)
			assert.ErrorIs(t, err, system.ErrIncompatible)
		})
	}
}

func TestRuleNames(t *testing.T) {
	rule := findRule(t, "APerBTimesB")
	assert.Equal(t, "MetricAPerBTimesMetricB", rule.QualifiedName(system.Metric))
	assert.Equal(t, "APerBTimesB -> A", rule.String())

	names := rule.Specializations()
	require.Len(t, names, 7)
	assert.Equal(t, "MetricAndImperialAPerBTimesMetricAndImperialB", names[0])

	seen := map[string]bool{}
	for _, r := range DefaultRules() {
		assert.False(t, seen[r.Name()], "duplicate rule %s", r.Name())
		seen[r.Name()] = true
	}
}

func TestMatchName(t *testing.T) {
	match, err := Resolve(Divide, value.Of(1, unit.Foot), value.Of(1, unit.Stone))
	require.NoError(t, err)
	assert.Equal(t, "UKImperialADivUKImperialB", match.Name())
	assert.Equal(t, "ft/st", match.Target.String())
}

func TestDivisionByZero(t *testing.T) {
	_, err := Div(value.Of(1, unit.Meter), value.Of(0, unit.Second))
	assert.ErrorIs(t, err, number.ErrDivisionByZero)
}

func TestCustomRules(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		_, err := NewWithRules(nil).Times(value.Of(1, unit.Meter), value.Of(1, unit.Second))
		assert.ErrorIs(t, err, ErrNoRule)
	})

	t.Run("unbound variable", func(t *testing.T) {
		e := NewWithRules([]Rule{times(a, b, Var("Z"))})
		_, err := e.Times(value.Of(1, unit.Meter), value.Of(1, unit.Second))
		assert.ErrorIs(t, err, ErrUnbound)
	})

	t.Run("unsound rule", func(t *testing.T) {
		wrong := []Rule{times(a, b, a)}

		_, err := NewWithRules(wrong, WithVerify(true)).Times(value.Of(1, unit.Meter), value.Of(1, unit.Second))
		assert.ErrorIs(t, err, ErrUnsound)

		_, err = NewWithRules(wrong).Times(value.Of(1, unit.Meter), value.Of(1, unit.Second))
		assert.NoError(t, err)
	})
}

func TestPrecision(t *testing.T) {
	result, err := New(WithPrecision(4)).Div(value.Of(2, unit.Meter), value.Of(3, unit.Second))
	require.NoError(t, err)
	assert.Equal(t, "0.6667", result.Magnitude().String())
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Times(value.Of(2, unit.Meter), value.Of(3, unit.Kilogram))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "resolved rule")
	assert.Contains(t, buf.String(), "rule=MetricATimesMetricB")
}

func TestConcurrentUse(t *testing.T) {
	e := New()
	var g errgroup.Group
	results := make([]string, 64)

	for i := range results {
		g.Go(func() error {
			speed, err := e.Div(value.Of(int64(10*(i+1)), unit.Meter), value.Of(2, unit.Second))
			if err != nil {
				return err
			}
			distance, err := e.Times(speed, value.Of(5, unit.Second))
			if err != nil {
				return err
			}
			results[i] = distance.String()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("%d m", 25*(i+1)), result)
	}
}

func TestEvaluateReportsRule(t *testing.T) {
	result, match, err := New().Evaluate(Divide, value.Of(6, unit.Mile), value.Of(2, unit.Hour))
	require.NoError(t, err)
	assert.Equal(t, "3 mi/hr", result.String())
	assert.Equal(t, "ImperialADivImperialB", match.Name())
	assert.Equal(t, "ADivB -> APerB", match.Rule.String())
}
