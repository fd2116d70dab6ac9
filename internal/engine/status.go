package engine

// ProviderStatus records what the engine has learned about a provider.
type ProviderStatus int

// Provider status values.
const (
	StatusUndetermined ProviderStatus = iota
	StatusAvailable
	StatusUnavailable
)

func (s ProviderStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "undetermined"
	}
}
