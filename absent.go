package objectchecker

// Absent marks a field that is missing from its parent object. It is the zero
// [Value] and is never produced by [ParseJSON]; explicit nulls decode to
// [Null].
var Absent = Value{}
