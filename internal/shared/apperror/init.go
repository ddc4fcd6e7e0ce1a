package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init makes the validator report field names from json tags, so a failed
// binding names the field the client sent rather than the Go struct field.
// Call once at process start.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if tag == "-" {
			return ""
		}
		return tag
	})
}
