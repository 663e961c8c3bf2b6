package conf

import (
	"net"

	"github.com/aerowise/aerowise-go/internal/errors"
)

// ValidateSettings checks the loaded settings for values that would prevent
// the agent from starting.
func ValidateSettings(settings *Settings) error {
	if settings.Main.Log.Enabled && settings.Main.Log.Path == "" {
		return errors.Newf("main.log.path must be set when query logging is enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.LLM.Enabled {
		if settings.LLM.Model == "" {
			return errors.Newf("llm.model must be set when the LLM responder is enabled").
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
		if settings.LLM.MaxTokens <= 0 {
			return errors.Newf("llm.maxtokens must be positive, got %d", settings.LLM.MaxTokens).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
		if settings.LLM.Temperature < 0 || settings.LLM.Temperature > 1 {
			return errors.Newf("llm.temperature must be between 0.0 and 1.0, got %.2f", settings.LLM.Temperature).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
	}

	if settings.Telemetry.Enabled {
		if _, _, err := net.SplitHostPort(settings.Telemetry.Listen); err != nil {
			return errors.Newf("telemetry.listen is not a valid host:port: %q", settings.Telemetry.Listen).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("listen", settings.Telemetry.Listen).
				Build()
		}
	}

	return nil
}
