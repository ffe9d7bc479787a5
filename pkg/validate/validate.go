package validate

import "github.com/go-playground/validator/v10"

var v = validator.New()

// Struct checks the validate tags on a request struct.
func Struct(s interface{}) error {
	return v.Struct(s)
}
