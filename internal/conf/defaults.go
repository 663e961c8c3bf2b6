package conf

import "github.com/spf13/viper"

// setDefaultConfig sets the default values for the configuration parameters.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "AeroWise")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "aerowise.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	viper.SetDefault("dataset.path", "")

	viper.SetDefault("llm.enabled", false)
	viper.SetDefault("llm.model", "claude-3-5-haiku-20241022")
	viper.SetDefault("llm.apikey", "")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.maxtokens", 1000)
	viper.SetDefault("llm.cachettl", 15)

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.listen", "localhost:8090")
}
