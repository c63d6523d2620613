package objectchecker

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directiveCase struct {
	name   string
	value  Value
	option any
	want   bool
}

func runDirective(t *testing.T, directive string, tests []directiveCase) {
	t.Helper()
	fn, ok := NewRegistry().Lookup(directive)
	require.True(t, ok, directive)
	for _, tt := range tests {
		t.Run(directive+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fn(tt.value, tt.option))
		})
	}
}

func TestTypeDirective(t *testing.T) {
	runDirective(t, "$type", []directiveCase{
		{"string", String("x"), String("string"), true},
		{"str alias", String("x"), String("str"), true},
		{"case insensitive", String("x"), String("String"), true},
		{"enum", String("x"), String("enum"), true},
		{"commaArray", String("a,b"), String("commaArray"), true},
		{"string rejects number", Int(1), String("string"), false},
		{"number int", Int(1), String("number"), true},
		{"num float", Float(1.5), String("num"), true},
		{"float accepts int", Int(1), String("float"), true},
		{"number rejects string", String("1"), String("number"), false},
		{"int", Int(1), String("int"), true},
		{"integer rejects float", Float(1.0), String("integer"), false},
		{"integer rejects bool", Bool(true), String("integer"), false},
		{"bool", Bool(false), String("bool"), true},
		{"boolean rejects int", Int(0), String("boolean"), false},
		{"array", List(), String("array"), true},
		{"arr rejects object", ObjectValue(NewObject()), String("arr"), false},
		{"object", ObjectValue(NewObject()), String("object"), true},
		{"json rejects list", List(), String("json"), false},
		{"jsonString", String(`{"a": 1}`), String("jsonString"), true},
		{"jsonString rejects text", String("{a"), String("jsonString"), false},
		{"jsonString rejects object", ObjectValue(NewObject()), String("jsonString"), false},
		{"null fails string", Null(), String("string"), false},
		{"unknown type", Int(1), String("uuid"), true},
		{"non-string option", Int(1), Int(1), false},
	})
}

func TestIntegerFlags(t *testing.T) {
	runDirective(t, "$isInteger", []directiveCase{
		{"int", Int(3), Bool(true), true},
		{"float", Float(3), Bool(true), false},
		{"float negated", Float(3), Bool(false), true},
		{"bad option", Int(3), String("yes"), false},
	})
	for _, name := range []string{"$isPositiveZeroInteger", "$isPositiveIntegerOrZero"} {
		runDirective(t, name, []directiveCase{
			{"zero", Int(0), Bool(true), true},
			{"positive", Int(2), Bool(true), true},
			{"negative", Int(-1), Bool(true), false},
			{"negative negated", Int(-1), Bool(false), true},
			{"float", Float(2), Bool(true), false},
		})
	}
	runDirective(t, "$isPositiveInteger", []directiveCase{
		{"zero", Int(0), Bool(true), false},
		{"one", Int(1), Bool(true), true},
	})
	for _, name := range []string{"$isNegativeZeroInteger", "$isNegativeIntegerOrZero"} {
		runDirective(t, name, []directiveCase{
			{"zero", Int(0), Bool(true), true},
			{"negative", Int(-4), Bool(true), true},
			{"positive", Int(1), Bool(true), false},
		})
	}
	runDirective(t, "$isNegativeInteger", []directiveCase{
		{"zero", Int(0), Bool(true), false},
		{"minus one", Int(-1), Bool(true), true},
		{"string", String("-1"), Bool(true), false},
	})
}

func TestMinMaxValue(t *testing.T) {
	runDirective(t, "$minValue", []directiveCase{
		{"equal", Int(5), Int(5), true},
		{"above", Float(5.5), Int(5), true},
		{"below", Int(4), Float(4.5), false},
		{"strings", String("b"), String("a"), true},
		{"string below", String("a"), String("b"), false},
		{"mixed", String("5"), Int(1), false},
		{"null", Null(), Int(0), false},
	})
	runDirective(t, "$maxValue", []directiveCase{
		{"equal", Int(5), Int(5), true},
		{"above", Int(6), Int(5), false},
		{"below", Float(-1), Int(0), true},
		{"bool", Bool(true), Int(1), false},
	})
}

func TestInDirectives(t *testing.T) {
	colors := MustValueOf([]string{"red", "green"})
	runDirective(t, "$in", []directiveCase{
		{"member", String("red"), colors, true},
		{"not member", String("blue"), colors, false},
		{"numbers compare numerically", Float(1), MustValueOf([]int{1, 2}), true},
		{"object keys", String("a"), MustValueOf(map[string]int{"a": 1}), true},
		{"substring", String("ell"), String("hello"), true},
		{"no container", String("a"), Int(1), false},
	})
	runDirective(t, "$notIn", []directiveCase{
		{"member", String("red"), colors, false},
		{"not member", String("blue"), colors, true},
		{"no container", String("a"), Int(1), false},
	})
	runDirective(t, "$commaArrayIn", []directiveCase{
		{"all tokens", String("red,green"), colors, true},
		{"one token", String("red"), colors, true},
		{"unknown token", String("red,blue"), colors, false},
		{"spaces count", String("red, green"), colors, false},
		{"not a string", Int(1), colors, false},
	})
	runDirective(t, "$isValue", []directiveCase{
		{"same", Int(1), Float(1), true},
		{"different", String("1"), Int(1), false},
		{"lists", MustValueOf([]int{1}), MustValueOf([]int{1}), true},
	})
}

func TestLengthDirectives(t *testing.T) {
	runDirective(t, "$minLength", []directiveCase{
		{"string", String("abc"), Int(3), true},
		{"runes", String("héé"), Int(3), true},
		{"short", String("ab"), Int(3), false},
		{"list", MustValueOf([]int{1, 2}), Int(2), true},
		{"number", Int(100), Int(1), false},
		{"bad option", String("abc"), String("3"), false},
	})
	runDirective(t, "$maxLength", []directiveCase{
		{"fits", String("ab"), Int(2), true},
		{"long", String("abc"), Int(2), false},
		{"empty list", List(), Int(0), true},
	})
	runDirective(t, "$isLength", []directiveCase{
		{"exact", String("abcd"), Int(4), true},
		{"float option", String("abcd"), Float(4), true},
		{"off by one", String("abc"), Int(4), false},
	})
}

func TestStringDirectives(t *testing.T) {
	runDirective(t, "$notEmptyString", []directiveCase{
		{"non empty", String("a"), Bool(true), true},
		{"empty", String(""), Bool(true), false},
		{"empty wanted", String(""), Bool(false), true},
		{"not a string", Int(1), Bool(true), false},
		{"not a string negated", Int(1), Bool(false), false},
	})
	runDirective(t, "$matchRegExp", []directiveCase{
		{"match", String("abc123"), String("[a-z]+[0-9]+"), true},
		{"anchored at start", String("x123"), String("[0-9]+"), false},
		{"prefix match", String("123x"), String("[0-9]+"), true},
		{"number string form", Int(42), String("4"), true},
		{"bad pattern", String("a"), String("("), false},
		{"alternation anchored", String("xb"), String("a|b"), false},
	})
	runDirective(t, "$notMatchRegExp", []directiveCase{
		{"no match", String("abc"), String("[0-9]"), true},
		{"match", String("1abc"), String("[0-9]"), false},
		{"bad pattern", String("a"), String("("), false},
	})
	runDirective(t, "$isEmail", []directiveCase{
		{"valid", String("a@b.com"), Bool(true), true},
		{"plus and dots", String("first.last+tag@mail.example.org"), Bool(true), true},
		{"upper case", String("A@B.COM"), Bool(true), true},
		{"no at", String("not-an-email"), Bool(true), false},
		{"short tld", String("a@b.c"), Bool(true), false},
		{"negated", String("not-an-email"), Bool(false), true},
		{"number", Int(1), Bool(true), false},
	})
}

func TestAssertDirectives(t *testing.T) {
	positive := Assertion(func(v Value) bool {
		f, ok := v.AsNumber()
		return ok && f > 0
	})
	runDirective(t, "$assertTrue", []directiveCase{
		{"true", Int(1), positive, true},
		{"false", Int(-1), positive, false},
		{"plain func", Int(1), func(Value) bool { return true }, true},
		{"not a func", Int(1), Bool(true), false},
	})
	runDirective(t, "$assertFalse", []directiveCase{
		{"false", Int(-1), positive, true},
		{"true", Int(1), positive, false},
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	always := func(Value, any) bool { return false }

	require.NoError(t, r.Register("$custom", always))
	fn, ok := r.Lookup("$custom")
	require.True(t, ok)
	assert.False(t, fn(Int(1), nil))

	require.NoError(t, r.Register("$desc", nil))
	fn, ok = r.Lookup("$desc")
	assert.True(t, ok)
	assert.Nil(t, fn)

	assert.Error(t, r.Register("custom", always), "name needs $")
	assert.Error(t, r.Register("$", always), "element key is not a directive")
	assert.Error(t, r.Register("$isOptional", always), "control key")

	r.Seal()
	err := r.Register("$late", always)
	assert.True(t, errors.Is(err, ErrRegistryFrozen))
	_, ok = r.Lookup("$late")
	assert.False(t, ok)

	_, ok = NewRegistry().Lookup("$custom")
	assert.False(t, ok, "registries are independent")
}

func TestRegistryReplacesBuiltin(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("$minLength", func(Value, any) bool { return true }))

	s := MustParseSchema(`{"$type": "string", "$minLength": 5}`)
	assert.True(t, New(WithRegistry(r)).IsValid(String("a"), s))
	assert.False(t, New(WithRegistry(r)).IsValid(Int(1), s), "other built-ins still apply")
	assert.False(t, New(WithRegistry(NewRegistry())).IsValid(String("a"), s), "fresh registries keep the built-in")
}

func TestRegexpCache(t *testing.T) {
	first := compilePattern("[a-z]+")
	require.NotNil(t, first)
	assert.Same(t, first, compilePattern("[a-z]+"))
	assert.True(t, first.MatchString("abc1"))
	assert.False(t, first.MatchString("1abc"))

	assert.Nil(t, compilePattern("("))
	assert.Nil(t, compilePattern("("), "bad patterns stay rejected")
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	c := New(WithRegistry(r))
	require.NoError(t, r.Register("$even", func(v Value, _ any) bool {
		i, _ := v.AsInt()
		return i%2 == 0
	}))

	s := MustParseSchema(`{"$even": true}`)
	assert.False(t, c.IsValid(Int(2), s), "checker built before registration does not see it")
	assert.True(t, New(WithRegistry(r)).IsValid(Int(2), s))
	assert.False(t, New(WithRegistry(r)).IsValid(Int(3), s))
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Register("$c"+string(rune('a'+i)), NoOp)
			_ = New(WithRegistry(r)).IsValid(Int(1), MustParseSchema(`{"$type": "int"}`))
		}()
	}
	wg.Wait()
	for i := range 8 {
		_, ok := r.Lookup("$c" + string(rune('a'+i)))
		assert.True(t, ok)
	}
}
