package ripple

import (
	"fmt"
	"strings"
)

// Analytics providers understood by NewSender.
const (
	ProviderRipple  = "ripple"
	ProviderConsole = "console"
	ProviderNone    = "none"
)

// ParseProvider normalizes a provider name. An empty value selects ripple.
func ParseProvider(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", ProviderRipple:
		return ProviderRipple, nil
	case ProviderConsole:
		return ProviderConsole, nil
	case ProviderNone, "noop", "disabled", "off":
		return ProviderNone, nil
	default:
		return "", fmt.Errorf("%w %q (expected ripple|console|none)", ErrUnknownProvider, value)
	}
}

// NewSender builds the Sender for provider. Only the ripple provider touches
// app; console writes to logger.
func NewSender(provider string, app AppContext, logger LoggerAdapter) (Sender, error) {
	p, err := ParseProvider(provider)
	if err != nil {
		return nil, err
	}

	switch p {
	case ProviderConsole:
		return &LoggerSender{Logger: logger}, nil
	case ProviderNone:
		return NoopSender{}, nil
	default:
		sender, err := NewEventSender(app)
		if err != nil {
			return nil, err
		}
		return sender, nil
	}
}
