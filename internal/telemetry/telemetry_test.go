package telemetry

import (
	"testing"

	"github.com/samdwyer/lunge/internal/duel"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio string
		want  string
	}{
		{"", "ParentBased{root:AlwaysOnSampler"},
		{"1", "ParentBased{root:AlwaysOnSampler"},
		{"abc", "ParentBased{root:AlwaysOnSampler"},
		{"0.25", "ParentBased{root:TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		got := Sampler(tt.ratio).Description()
		if len(got) < len(tt.want) || got[:len(tt.want)] != tt.want {
			t.Errorf("Sampler(%q) = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}

func TestStateAttributes(t *testing.T) {
	attrs := StateAttributes(duel.ActiveState{P1: duel.PlayerState{Pos: 2, Energy: 7}, P2: duel.PlayerState{Pos: 5, Energy: 9}})
	want := map[string]int64{"p1.pos": 2, "p1.energy": 7, "p2.pos": 5, "p2.energy": 9}
	if len(attrs) != len(want) {
		t.Fatalf("StateAttributes() = %v", attrs)
	}
	for _, kv := range attrs {
		if v, ok := want[string(kv.Key)]; !ok || kv.Value.AsInt64() != v {
			t.Errorf("attribute %s = %v", kv.Key, kv.Value.Emit())
		}
	}
}

func TestEndAttributes(t *testing.T) {
	attrs := EndAttributes(duel.EndState{Cause: duel.TurnTie})
	for _, kv := range attrs {
		if kv.Key == "end.winner" && kv.Value.AsString() != "tie" {
			t.Errorf("end.winner = %q, want tie", kv.Value.AsString())
		}
	}
}
