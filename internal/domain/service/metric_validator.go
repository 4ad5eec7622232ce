package service

import (
	"fmt"
	"math"

	"github.com/LinuxRonin/Basic-System-Monitor/internal/domain/valueobject"
)

// MetricValidator rejects readings outside the physically possible range (Domain Service)
type MetricValidator struct{}

func NewMetricValidator() *MetricValidator {
	return &MetricValidator{}
}

// Check returns the reading unchanged when it is absent or reasonable, and
// an error reading otherwise. A bogus value must never reach the evaluator.
func (v *MetricValidator) Check(mt valueobject.MetricType, r valueobject.Reading) valueobject.Reading {
	value, ok := r.Value()
	if !ok {
		return r
	}
	if err := v.validate(mt, value); err != nil {
		return valueobject.Failed(err)
	}
	return r
}

func (v *MetricValidator) validate(mt valueobject.MetricType, value float64) error {
	if err := mt.Validate(); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s reading is not a number: %v", mt, value)
	}

	switch {
	case mt.IsPercent():
		if value < 0 || value > 100 {
			return fmt.Errorf("%s reading out of range: %.2f%%", mt, value)
		}
	case mt == valueobject.Temperature:
		// below absolute zero or hotter than any silicon survives
		if value < -273.15 || value > 200 {
			return fmt.Errorf("temperature reading out of range: %.1f°C", value)
		}
	}

	return nil
}
