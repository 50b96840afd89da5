package connect

// Controls describes how the connect widgets should present for a given
// connection state.
type Controls struct {
	ConnectEnabled    bool
	CancelEnabled     bool
	ConnectButtonText string
}

// BuildControls maps connection state to widget presentation. While an
// attempt is in flight only cancel is active; otherwise the connect button
// doubles as a reconnect button once a source is attached.
func BuildControls(connecting, connected bool) Controls {
	if connecting {
		return Controls{
			ConnectEnabled:    false,
			CancelEnabled:     true,
			ConnectButtonText: "Connecting...",
		}
	}
	text := "Connect source"
	if connected {
		text = "Reconnect source"
	}
	return Controls{
		ConnectEnabled:    true,
		CancelEnabled:     false,
		ConnectButtonText: text,
	}
}
