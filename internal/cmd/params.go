package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	ripple "github.com/Tap30/ripple-analytics"
)

// paramFlags collects repeated -param key=value flags.
type paramFlags ripple.Params

func (p paramFlags) String() string {
	pairs := make([]string, 0, len(p))
	for k, v := range p {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(pairs, ",")
}

func (p paramFlags) Set(value string) error {
	key, raw, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	p[key] = parseParamValue(raw)
	return nil
}

// parseParamValue types a raw flag value as int, bool (only "true" and
// "false"), finite float or string, in that order.
func parseParamValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return int(i)
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return raw
}
