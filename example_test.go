package objectchecker_test

import (
	"fmt"

	"github.com/Gobd/objectchecker"
)

func ExampleChecker_Check() {
	c := objectchecker.New()
	s := objectchecker.MustParseSchema(`{
		"name": {"$type": "string"},
		"age": {"$type": "integer", "$minValue": 0}
	}`)
	v, _ := objectchecker.ParseJSON([]byte(`{"name": "Ann", "age": -1}`))

	res := c.Check(v, s)
	fmt.Println(res.IsValid)
	fmt.Println(res.Message)
	// Output:
	// false
	// Field `age` value `-1` is not valid. (minValue = 0)
}

func ExampleNew_defaultOptional() {
	c := objectchecker.New(objectchecker.WithDefaultRequired(false))
	s := objectchecker.MustParseSchema(`{"id": {"$type": "string", "$isRequired": true}, "note": {"$type": "string"}}`)
	v, _ := objectchecker.ParseJSON([]byte(`{"id": "a1"}`))

	fmt.Println(c.IsValid(v, s))
	// Output: true
}

func ExampleWithDirective() {
	even := func(v objectchecker.Value, _ any) bool {
		n, ok := v.AsInt()
		return ok && n%2 == 0
	}
	c := objectchecker.New(objectchecker.WithDirective("$isEven", even))
	s := objectchecker.MustParseSchema(`{"$type": "int", "$isEven": true}`)

	fmt.Println(c.IsValid(objectchecker.Int(4), s), c.IsValid(objectchecker.Int(3), s))
	// Output: true false
}

func ExampleFlatten() {
	s := objectchecker.MustParseSchema(`{"user": {"name": {"$type": "string"}}, "tags": {"$": {"$type": "string"}}}`)
	for _, path := range objectchecker.Flatten(s).Paths() {
		fmt.Println(path)
	}
	// Output:
	// user
	// user.name
	// tags
	// tags.0
}

func ExampleGenerateSample() {
	s := objectchecker.MustParseSchema(`{"id": {"$type": "string"}, "count": {"$type": "int", "$minValue": 1}}`)
	fmt.Println(objectchecker.GenerateSample(s))
	// Output: {"id":"X-00000000-0000-0000-0000-000000000000","count":1}
}
