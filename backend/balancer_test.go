package backend

import "testing"

func TestRoundRobinCyclesThroughServers(t *testing.T) {
	b := &RoundRobin{}
	servers := []Server{{Addr: "a"}, {Addr: "b"}, {Addr: "c"}}
	seen := make(map[string]int)
	for i := 0; i < 9; i++ {
		pick, err := b.Pick(servers)
		if err != nil {
			t.Fatal(err)
		}
		seen[pick.Addr]++
	}
	for _, addr := range []string{"a", "b", "c"} {
		if seen[addr] != 3 {
			t.Fatalf("addr %s picked %d times, want 3", addr, seen[addr])
		}
	}
}

func TestRoundRobinEmptyFleet(t *testing.T) {
	b := &RoundRobin{}
	if _, err := b.Pick(nil); err == nil {
		t.Fatalf("expected error for empty fleet")
	}
}
