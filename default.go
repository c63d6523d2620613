package objectchecker

const rootPath = "obj"

// DefaultTemplates are the message templates used unless overridden with
// [WithMessageTemplates].
var DefaultTemplates = map[ErrorKind]string{
	Invalid:    "Field `{{fieldName}}` value `{{fieldValue}}` is not valid. ({{checkerName}} = {{checkerOption}})",
	Missing:    "Field `{{fieldName}}` is missing.",
	Unexpected: "Found unexpected field `{{fieldName}}`",
}

// DocKeys are documentation-only keys commonly found in schemas. Pass them to
// [WithDocKeys] so they are accepted without checking.
var DocKeys = []string{"$desc", "$name", "$example"}
