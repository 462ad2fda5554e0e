package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

func TestOperators(t *testing.T) {
	f := Fuzzified{
		"a": fuzzy.Degrees{"x": 0.3},
		"b": fuzzy.Degrees{"y": 0.7},
		"c": fuzzy.Degrees{"z": 0.5},
	}
	x, y, z := Is("a", "x"), Is("b", "y"), Is("c", "z")

	assert.Equal(t, 0.3, And(x, y).Degree(f))
	assert.Equal(t, 0.7, Or(x, y).Degree(f))
	assert.InDelta(t, 0.7, Not(x).Degree(f), 1e-12)
	assert.Equal(t, 0.3, And(y, z, x).Degree(f))
	assert.Equal(t, 0.7, Or(x, z, y).Degree(f))
	assert.InDelta(t, 0.5, And(Or(x, y), Not(z)).Degree(f), 1e-12)

	missing := Is("a", "nope")
	assert.Equal(t, 0.0, missing.Degree(f))
}

func TestAnyAllOf(t *testing.T) {
	f := Fuzzified{"a": fuzzy.Degrees{"x": 0.2, "y": 0.9}}
	x, y := Is("a", "x"), Is("a", "y")

	assert.Nil(t, AnyOf())
	assert.Nil(t, AllOf())
	assert.Equal(t, x, AnyOf(x))
	assert.Equal(t, 0.9, AnyOf(x, y).Degree(f))
	assert.Equal(t, 0.2, AllOf(x, y).Degree(f))
}

func TestExpressionRefsAndString(t *testing.T) {
	e := And(Or(Is("queue", "full"), Is("queue", "large")), Not(Is("time", "instant")))

	assert.Equal(t, []TermRef{
		{Variable: "queue", Term: "full"},
		{Variable: "queue", Term: "large"},
		{Variable: "time", Term: "instant"},
	}, e.Refs())
	assert.Equal(t, "((queue is full OR queue is large) AND NOT time is instant)", e.String())
}

func TestHasNil(t *testing.T) {
	assert.True(t, hasNil(nil))
	assert.True(t, hasNil(And(Is("a", "x"), nil)))
	assert.True(t, hasNil(Not(Or(nil, Is("a", "x")))))
	assert.False(t, hasNil(Not(Or(Is("a", "y"), Is("a", "x")))))
}

func TestConsequent(t *testing.T) {
	c := Then("fan", "high")
	assert.Equal(t, 1.0, c.Weight)
	assert.Equal(t, "fan is high", c.String())

	w := c.Weighted(0.25)
	assert.Equal(t, 0.25, w.Weight)
	assert.Equal(t, 1.0, c.Weight, "Weighted must not modify the receiver")
	assert.Equal(t, "fan is high (weight 0.25)", w.String())

	r := NewRule("r", Is("temp", "hot"), c, w)
	cs := r.Consequents()
	cs[0].Term = "low"
	require.Len(t, r.Consequents(), 2)
	assert.Equal(t, "high", r.Consequents()[0].Term)
	assert.Equal(t, "r", r.ID())
}
