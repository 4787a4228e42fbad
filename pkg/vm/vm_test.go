package vm

import "testing"

func TestVM_TreeWalkOrdering(t *testing.T) {
	v := NewVM()
	v.Launch()

	var log []string
	record := func(name string) NativeFunc {
		return func(owner *Object, params []Value, paramCount int) *Value {
			log = append(log, name)
			return nil
		}
	}
	v.Bind("Application", "state:main", record("root"), 0)
	v.Bind("A", "state:main", record("A"), 0)
	v.Bind("B", "state:main", record("B"), 0)
	v.Bind("C", "state:main", record("C"), 0)

	root := v.RootObject()
	a := v.SpawnObject(root, "A", nil, nil, nil)
	v.SpawnObject(root, "B", nil, nil, nil)
	v.SpawnObject(a, "C", nil, nil, nil)

	v.Update()

	want := []string{"root", "A", "C", "B"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestVM_KillDuringTick(t *testing.T) {
	v := NewVM()
	v.Launch()

	var log []string
	record := func(name string) NativeFunc {
		return func(owner *Object, params []Value, paramCount int) *Value {
			log = append(log, name)
			return nil
		}
	}
	v.Bind("Application", "state:main", record("root"), 0)
	v.Bind("C", "state:main", record("C"), 0)

	root := v.RootObject()
	a := v.SpawnObject(root, "A", nil, nil, nil)
	c := v.SpawnObject(a, "C", nil, nil, nil)

	v.Bind("A", "state:main", func(owner *Object, params []Value, paramCount int) *Value {
		log = append(log, "A")
		c.Kill()
		return nil
	}, 0)

	v.Update() // tick T: A kills C before C's turn, but C is still visited

	foundC := false
	for _, name := range log {
		if name == "C" {
			foundC = true
		}
	}
	if !foundC {
		t.Error("expected C to be logged during the tick it was killed in")
	}
	if v.ObjectManager().Exists(c.Handle()) {
		t.Error("expected C to be swept at the end of tick T")
	}
	if len(a.Children()) != 0 {
		t.Error("expected A to have no children after C is swept")
	}

	log = nil
	v.Update() // tick T+1: C must not appear again

	for _, name := range log {
		if name == "C" {
			t.Error("expected C to be absent from tick T+1's log")
		}
	}
}

func TestVM_PoolFallback(t *testing.T) {
	v := NewVM()
	v.Launch()

	v.Bind("Object", "toString", func(owner *Object, params []Value, paramCount int) *Value {
		result := StringValue("anonymous")
		return &result
	}, 0)

	root := v.RootObject()
	obj := v.SpawnObject(root, "T", nil, nil, nil)

	if got := obj.CallMethod("toString", nil).GetString(); got != "anonymous" {
		t.Errorf("expected fallback result \"anonymous\", got %q", got)
	}

	v.Bind("T", "toString", func(owner *Object, params []Value, paramCount int) *Value {
		result := StringValue("specific")
		return &result
	}, 0)

	if got := obj.CallMethod("toString", nil).GetString(); got != "specific" {
		t.Errorf("expected override result \"specific\", got %q", got)
	}
}

func TestVM_LaunchAndKillLifecycle(t *testing.T) {
	v := NewVM()
	if v.IsActive() {
		t.Fatal("expected VM to be inactive before Launch")
	}
	v.Launch()
	if !v.IsActive() {
		t.Fatal("expected VM to be active after Launch")
	}

	v.Kill()
	v.Update()
	if v.IsActive() {
		t.Error("expected VM to be inactive after killing and updating past the root")
	}
}
