package telemetry

import "os"

var observeEnabled bool

func init() {
	// Read once at process start. Mid-run environment changes have no effect,
	// except for the test override below.
	observeEnabled = os.Getenv("CCHAT_OBSERVE_JSON") == "1"
}

// ObserveEnabled reports whether JSONL emission was enabled at startup.
func ObserveEnabled() bool {
	// Preserve the startup-evaluated value, but allow tests to toggle mid-run
	// via the env override.
	if v, ok := os.LookupEnv("CCHAT_OBSERVE_JSON"); ok {
		return v == "1"
	}
	return observeEnabled
}
