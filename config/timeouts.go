package config

import (
	"strconv"
	"strings"
	"time"
)

// Environment variables let operators widen or shrink the bounded waits
// around native stream handshakes without rebuilding.
const (
	ConnectTimeoutEnv = "MINIMAP_CALLER_CONNECT_TIMEOUT_MS"
	ProbeTimeoutEnv   = "MINIMAP_CALLER_PROBE_TIMEOUT_MS"

	DefaultConnectTimeoutMS = 10_000
	MinConnectTimeoutMS     = 3_000
	MaxConnectTimeoutMS     = 30_000

	DefaultProbeTimeoutMS = 3_000
	MinProbeTimeoutMS     = 500
)

// ConnectTimeoutMS reads the GUI connect timeout from env. Values outside
// the allowed range, or unparsable ones, fall back to the default.
func ConnectTimeoutMS(env map[string]string) int {
	raw := strings.TrimSpace(env[ConnectTimeoutEnv])
	if raw == "" {
		return DefaultConnectTimeoutMS
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultConnectTimeoutMS
	}
	if ms < MinConnectTimeoutMS || ms > MaxConnectTimeoutMS {
		return DefaultConnectTimeoutMS
	}
	return ms
}

// ProbeTimeout reads the stream handshake probe timeout from env, with a
// hard floor so a misconfigured value can never spin-fail the probe.
func ProbeTimeout(env map[string]string) time.Duration {
	raw := strings.TrimSpace(env[ProbeTimeoutEnv])
	ms := DefaultProbeTimeoutMS
	if raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			ms = v
		}
	}
	if ms < MinProbeTimeoutMS {
		ms = DefaultProbeTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

// EnvMap converts os.Environ() style "K=V" pairs into a lookup map.
func EnvMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			m[kv[:i]] = kv[i+1:]
		}
	}
	return m
}
