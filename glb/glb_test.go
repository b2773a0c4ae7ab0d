//go:build !bl602

package glb

import (
	"errors"
	"testing"
)

func splitForTest(t *testing.T) *Parts {
	t.Helper()
	SimReset()
	p, err := Split()
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	return p
}

func TestSplitSucceedsExactlyOnce(t *testing.T) {
	splitForTest(t)

	if _, err := Split(); !errors.Is(err, ErrAlreadySplit) {
		t.Fatalf("second Split err = %v, want ErrAlreadySplit", err)
	}
	// And stays rejected.
	if _, err := Split(); !errors.Is(err, ErrAlreadySplit) {
		t.Fatalf("third Split err = %v, want ErrAlreadySplit", err)
	}
}

func TestSplitIssuesResetStateHandles(t *testing.T) {
	p := splitForTest(t)

	pins := p.Pins()
	if len(pins) != 23 {
		t.Fatalf("expected 23 pins, got %d", len(pins))
	}
	for i, pin := range pins {
		if pin.Number() != i {
			t.Errorf("pin %d: Number() = %d", i, pin.Number())
		}
		if pin.Pull() != Floating {
			t.Errorf("pin %d: initial pull = %v, want floating", i, pin.Pull())
		}
	}

	for i, mux := range p.Muxes() {
		if mux.Signal() != i {
			t.Errorf("mux %d: Signal() = %d", i, mux.Signal())
		}
		if mux.Role() != Uart0Cts {
			t.Errorf("mux %d: initial role = %v, want uart0-cts", i, mux.Role())
		}
	}
}

func TestSplitWritesNothing(t *testing.T) {
	SimReset()
	if _, err := Split(); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if log := SimWriteLog(); len(log) != 0 {
		t.Fatalf("Split performed %d register writes, want 0 (handles describe reset state)", len(log))
	}
}

func TestHandleCopiesAliasTheSamePin(t *testing.T) {
	p := splitForTest(t)

	copy1 := p.Pin4
	copy2 := p.Pins()[4]

	// A transition through one copy revokes the other.
	out := copy1.IntoFloatingOutput()
	out.SetHigh()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from revoked handle copy")
		}
	}()
	copy2.IsHigh()
}
