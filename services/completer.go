package services

import "fmt"

// NewCompleter picks the completer for transport: "sdk" or "rest".
func NewCompleter(transport string, opts ProviderOptions) (Completer, error) {
	switch transport {
	case "", "sdk":
		return NewSDKCompleter(opts)
	case "rest":
		return NewRESTCompleter(opts)
	default:
		return nil, fmt.Errorf("services: unknown transport %q", transport)
	}
}
