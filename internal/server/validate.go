package server

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators installs the "coord" rule on gin's validator: an
// empty slice, or exactly two non-negative integers.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("coord", validateCoord)
		}
	})
}

func validateCoord(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Slice {
		return false
	}
	switch f.Len() {
	case 0:
		return true
	case 2:
		return f.Index(0).Int() >= 0 && f.Index(1).Int() >= 0
	default:
		return false
	}
}
