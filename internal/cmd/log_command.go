package cmd

import (
	"flag"
	"fmt"
	"strings"

	ripple "github.com/Tap30/ripple-analytics"
	"github.com/Tap30/ripple-analytics/adapters"
	"github.com/mitchellh/cli"
)

type LogCommand struct {
	Ui cli.Ui

	// flags
	name     string
	params   paramFlags
	provider string
	endpoint string
	apiKey   string
	logLevel string
}

func (c *LogCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("log")

	c.params = paramFlags{}

	fs.StringVar(&c.name, "name", "", "event name (1-40 characters)")
	fs.Var(c.params, "param", "event parameter as key=value, may be repeated;"+
		" values are typed as int, true/false, finite float or string")
	fs.StringVar(&c.provider, "provider", ripple.ProviderRipple, "analytics provider: ripple, console or none")
	fs.StringVar(&c.endpoint, "endpoint", "", "collector endpoint, overrides "+ripple.EnvPrefix+"ENDPOINT")
	fs.StringVar(&c.apiKey, "api-key", "", "API key, overrides "+ripple.EnvPrefix+"API_KEY")
	fs.StringVar(&c.logLevel, "log-level", "", "client log level (DEBUG, INFO, WARN, ERROR, NONE),"+
		" overrides "+ripple.EnvPrefix+"LOG_LEVEL")

	fs.Usage = func() { c.Ui.Error(c.Help()) }

	return fs
}

func (c *LogCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}

	if c.name == "" {
		c.Ui.Error("Missing required flag -name")
		return 1
	}

	config, err := ripple.LoadConfig()
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to load configuration: %s", err))
		return 1
	}
	if c.endpoint != "" {
		config.Endpoint = c.endpoint
	}
	if c.apiKey != "" {
		config.APIKey = c.apiKey
	}
	if c.logLevel != "" {
		level, err := adapters.ParseLogLevel(c.logLevel)
		if err != nil {
			c.Ui.Error(err.Error())
			return 1
		}
		config.LogLevel = level
	}

	logger := adapters.NewWriterLoggerAdapter(uiWriter{c.Ui}, config.LogLevel)
	config.LoggerAdapter = logger

	app := ripple.NewApplication(config)
	consoleLogger := adapters.NewWriterLoggerAdapter(uiWriter{c.Ui}, adapters.LogLevelInfo)

	sender, err := ripple.NewSender(c.provider, app, consoleLogger)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to create sender: %s", err))
		return 1
	}

	sender.LogEvent(c.name, ripple.Params(c.params))

	if err := app.Close(); err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to deliver events: %s", err))
		return 1
	}

	c.Ui.Output(fmt.Sprintf("Logged %s", c.name))
	return 0
}

func (c *LogCommand) Help() string {
	helpText := `
Usage: ripple log -name <event> [-param key=value ...] [options]

` + c.Synopsis() + `

Configuration is read from ` + ripple.EnvPrefix + `* environment variables; flags
override it.

` + helpForFlags(c.flags())

	return strings.TrimSpace(helpText)
}

func (c *LogCommand) Synopsis() string {
	return "Logs a single analytics event"
}
