package bucache

import (
	"context"
	"time"
)

// Mode values reported by Stats.
const (
	ModeRemoteLocal = "remote+local"
	ModeLocalOnly   = "local-only"
	ModeDisabled    = "disabled"
)

// Stats is a point-in-time snapshot of both tiers, shaped for a diagnostics
// endpoint. Local figures are always present; remote figures carry a note in
// RemoteError when the probe failed.
type Stats struct {
	Mode            string    `json:"mode"`
	LocalEntries    int       `json:"local_entries"`
	RemoteConnected bool      `json:"remote_connected"`
	RemoteKeys      int64     `json:"remote_keys,omitempty"`
	RemoteMemory    string    `json:"remote_memory,omitempty"`
	RemoteError     string    `json:"remote_error,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

func (c *cache[V]) Stats(ctx context.Context) Stats {
	st := Stats{
		Mode:      ModeLocalOnly,
		Timestamp: time.Now(),
	}
	if !c.enabled {
		st.Mode = ModeDisabled
		return st
	}
	st.LocalEntries = c.local.Len()
	if c.remote == nil {
		return st
	}

	st.Mode = ModeRemoteLocal
	info, err := c.remote.Stats(ctx)
	if err != nil {
		c.degraded("stats", "", err)
		st.RemoteError = err.Error()
		return st
	}
	st.RemoteConnected = true
	st.RemoteKeys = info.Keys
	st.RemoteMemory = info.UsedMemory
	return st
}
