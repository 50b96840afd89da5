package connect

import (
	"log/slog"
	"testing"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestMachineSuccessfulAttempt(t *testing.T) {
	m := NewMachine(discardLogger)
	if m.Current() != StateDisconnected {
		t.Fatalf("initial state = %v", m.Current())
	}

	id := m.StartAttempt()
	if m.Current() != StateConnecting {
		t.Fatalf("state after start = %v", m.Current())
	}
	if !m.Connecting() {
		t.Fatal("Connecting() should be true during attempt")
	}

	if !m.Succeed(id) {
		t.Fatal("active attempt should be allowed to succeed")
	}
	if m.Current() != StateConnected {
		t.Fatalf("state after success = %v", m.Current())
	}
}

func TestMachineStaleCallbacksIgnored(t *testing.T) {
	m := NewMachine(discardLogger)

	first := m.StartAttempt()
	second := m.StartAttempt()

	// The first worker finishing late must not flip the state.
	if m.Succeed(first) {
		t.Fatal("stale attempt must be rejected")
	}
	if m.Current() != StateConnecting {
		t.Fatalf("state = %v, want connecting", m.Current())
	}

	if !m.Succeed(second) {
		t.Fatal("active attempt rejected")
	}
	// A stale timeout firing after completion is a no-op.
	if m.Timeout(second) {
		t.Fatal("timeout after completion must be rejected")
	}
	if m.Current() != StateConnected {
		t.Fatalf("state = %v, want connected", m.Current())
	}
}

func TestMachineTimeoutDisconnects(t *testing.T) {
	m := NewMachine(discardLogger)
	id := m.StartAttempt()
	if !m.Timeout(id) {
		t.Fatal("active attempt should time out")
	}
	if m.Current() != StateDisconnected {
		t.Fatalf("state = %v", m.Current())
	}
	// Worker result arriving after the timeout is stale.
	if m.Succeed(id) {
		t.Fatal("post-timeout success must be rejected")
	}
}

func TestMachineCancel(t *testing.T) {
	m := NewMachine(discardLogger)

	if _, ok := m.Cancel(); ok {
		t.Fatal("cancel with no attempt should report false")
	}

	id := m.StartAttempt()
	got, ok := m.Cancel()
	if !ok || got != id {
		t.Fatalf("Cancel = (%d, %v), want (%d, true)", got, ok, id)
	}
	if m.Current() != StateDisconnected {
		t.Fatalf("state = %v", m.Current())
	}
	if m.Fail(id, "late failure") {
		t.Fatal("cancelled attempt must be stale")
	}
}

func TestMachineDisconnectIgnoredWhileConnecting(t *testing.T) {
	m := NewMachine(discardLogger)
	id := m.StartAttempt()
	m.Disconnect()
	if m.Current() != StateConnecting {
		t.Fatalf("state = %v, disconnect should not interrupt an attempt", m.Current())
	}
	m.Succeed(id)
	m.Disconnect()
	if m.Current() != StateDisconnected {
		t.Fatalf("state = %v", m.Current())
	}
}

func TestMachineListeners(t *testing.T) {
	m := NewMachine(nil)
	var transitions [][2]State
	m.AddListener(func(prev, next State) {
		transitions = append(transitions, [2]State{prev, next})
	})

	id := m.StartAttempt()
	m.Succeed(id)
	m.Disconnect()

	want := [][2]State{
		{StateDisconnected, StateConnecting},
		{StateConnecting, StateConnected},
		{StateConnected, StateDisconnected},
	}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d = %v, want %v", i, transitions[i], want[i])
		}
	}
}

func TestBuildControls(t *testing.T) {
	c := BuildControls(true, false)
	if c.ConnectEnabled || !c.CancelEnabled || c.ConnectButtonText != "Connecting..." {
		t.Fatalf("connecting controls = %+v", c)
	}

	c = BuildControls(false, false)
	if !c.ConnectEnabled || c.CancelEnabled || c.ConnectButtonText != "Connect source" {
		t.Fatalf("disconnected controls = %+v", c)
	}

	c = BuildControls(false, true)
	if c.ConnectButtonText != "Reconnect source" {
		t.Fatalf("connected controls = %+v", c)
	}
}
