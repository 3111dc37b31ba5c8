package supervisor

const (
	Starting Phase = iota
	Idle
	RequestSent
	RequestReceived
	Calculating
	Coloring
	Canceled
	Shutdown
)

// Phase is the externally visible state of the supervisor.
type Phase int32

func (p Phase) String() string {
	names := []string{
		"starting", "idle", "request sent", "request received", "calculating", "coloring", "canceled", "shutdown",
	}
	if p < 0 || int(p) >= len(names) {
		return "unknown"
	}
	return names[p]
}
