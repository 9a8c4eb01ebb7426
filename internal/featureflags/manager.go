// Package featureflags evaluates statically configured feature flags,
// with deterministic percentage rollouts keyed by user.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager holds flags parsed from a comma-separated key=value list,
// e.g. "reading_challenges=on,new_feed=25%,legacy_profile=off".
type Manager struct {
	flags map[string]string
}

// NewManager parses the config string. Malformed or empty pairs are
// dropped silently; a bad flag must not keep the server from booting.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = normalize(key)
		value = normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled reports whether a flag is on for the given user. Values are
// on/true/1, off/false/0, or "N%" for a deterministic per-user rollout.
// Unknown flags and unrecognized values read as off.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if pctRaw, isPct := strings.CutSuffix(value, "%"); isPct {
		return m.inRollout(name, pctRaw, userID)
	}

	return false
}

// inRollout buckets the user into 0..99 and admits them when the bucket
// falls under the configured percentage. Anonymous users (userID 0)
// never join a partial rollout.
func (m *Manager) inRollout(name, pctRaw string, userID uint) bool {
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	if userID == 0 {
		return false
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32()%100) < pct
}

// Raw returns a copy of the configured flag values.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Snapshot evaluates every flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
