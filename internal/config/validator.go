package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/go-playground/validator/v10"
)

// weightSumTolerance absorbs float parsing noise when checking that the
// content and visual weights sum to 1.
const weightSumTolerance = 1e-6

// ValidateConfig performs validation on the GlobalConfig structure. Any
// failure here is fatal to a comparison run; no work may start on an invalid
// configuration.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errorwrapper.NewConfigError("config", "configuration cannot be nil")
	}

	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var messages []string
			for _, e := range errs {
				rule := e.Tag()
				if e.Param() != "" {
					rule += "=" + e.Param()
				}
				fieldErr := errorwrapper.NewValidationError(e.StructNamespace(), e.Value(), fmt.Sprintf("rule '%s' failed", rule))
				messages = append(messages, fieldErr.Error())
			}
			return errorwrapper.NewConfigError("global_config", strings.Join(messages, "; "))
		}
		return errorwrapper.WrapError(err, "configuration validation error")
	}

	// Structural tags cannot express the cross-field weight constraint.
	sum := cfg.CompareConfig.ContentWeight + cfg.CompareConfig.VisualWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return errorwrapper.NewConfigError("compare_config",
			fmt.Sprintf("content_weight + visual_weight must equal 1, got %g", sum))
	}

	if cfg.CacheConfig.Enabled && cfg.CacheConfig.MaxEntries <= 0 {
		return errorwrapper.NewConfigError("cache_config", "max_entries must be positive when the cache is enabled")
	}

	return nil
}
