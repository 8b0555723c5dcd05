package parallel

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ConfigEnvVar is the environment variable read by ConfigFromEnv.
//
// Accepted values:
//
//	""                    DefaultConfig()
//	"on", "1", "true"     DefaultConfig() with parallelism forced on
//	"off", "0", "false"   sequential
//	"workers=N"           N workers (N=1 means sequential)
//	"workers=N,chunk=M"   N workers, at least M items per worker
const ConfigEnvVar = "BATCHMATMUL_PARALLEL"

// ParseConfig parses a configuration string in the ConfigEnvVar format.
func ParseConfig(spec string) (Config, error) {
	cfg := DefaultConfig()
	spec = strings.TrimSpace(strings.ToLower(spec))
	switch spec {
	case "":
		return cfg, nil
	case "on", "1", "true":
		cfg.Enabled = true
		return cfg, nil
	case "off", "0", "false":
		cfg.Enabled = false
		return cfg, nil
	}

	cfg.Enabled = true
	for _, part := range strings.Split(spec, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return Config{}, errors.Errorf("invalid parallel config entry %q in %q: expected key=value", part, spec)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid value for %q in parallel config %q", key, spec)
		}
		if n <= 0 {
			return Config{}, errors.Errorf("value for %q in parallel config %q must be positive, got %d", key, spec, n)
		}
		switch key {
		case "workers":
			cfg.NumWorkers = n
			cfg.Enabled = n > 1
		case "chunk":
			cfg.MinChunkSize = n
		default:
			return Config{}, errors.Errorf("unknown key %q in parallel config %q", key, spec)
		}
	}
	return cfg, nil
}

// ConfigFromEnv returns the configuration given by ConfigEnvVar.
// Invalid values are logged and DefaultConfig() is used instead.
func ConfigFromEnv() Config {
	spec := os.Getenv(ConfigEnvVar)
	cfg, err := ParseConfig(spec)
	if err != nil {
		klog.Warningf("Ignoring $%s: %v", ConfigEnvVar, err)
		cfg = DefaultConfig()
	}
	klog.V(1).Infof("parallel config: enabled=%v workers=%d min_chunk=%d", cfg.Enabled, cfg.NumWorkers, cfg.MinChunkSize)
	return cfg
}
