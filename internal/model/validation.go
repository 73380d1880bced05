package model

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding rules the request
// structs reference. Call once at startup, before any route binds.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateFormat, fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if _, err := time.Parse(TimeSlotFormat, raw); err == nil {
			return true
		}
		_, err := time.Parse("15:04", raw)
		return err == nil
	})
}
