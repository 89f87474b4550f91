package options

import (
	"log/slog"
	"os"

	"github.com/scriptforge/searchscript/execution/constants"
	"github.com/scriptforge/searchscript/execution/data"
)

// WithDefaults fills in any missing configuration values. It is applied as
// the final step by the evaluator constructors, after user options.
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = slog.NewTextHandler(os.Stderr, nil)
		}

		if c.dataProvider == nil {
			c.dataProvider = data.NewContextProvider(constants.EvalData)
		}

		return nil
	}
}
