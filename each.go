package objectchecker

import (
	"strconv"
)

// verifyEach applies the element schema under [ElemKey] to every item of a
// list value.
func (c *Checker) verifyEach(value Value, option any, path string) *ValidationError {
	items, ok := value.AsList()
	if !ok {
		return &ValidationError{Kind: Invalid, Field: path, Value: value, Directive: ElemKey, Option: option}
	}
	elem, _ := option.(*Schema)
	for i, item := range items {
		if err := c.verify(item, elem, path+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}
