package registry

import (
	"testing"

	"github.com/vovakirdan/starquest/internal/voyage"
)

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-test", func() *voyage.Scenario {
		return &voyage.Scenario{ID: "zz-test", Title: "Test Run", Description: "for tests"}
	})

	if !Exists("zz-test") {
		t.Fatal("Exists(zz-test) = false")
	}

	sc, err := Create("zz-test")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if sc.Title != "Test Run" {
		t.Errorf("Title = %q", sc.Title)
	}

	var found bool
	for _, info := range List() {
		if info.ID == "zz-test" {
			found = true
			if info.Title != "Test Run" || info.Description != "for tests" {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() does not contain zz-test")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func() *voyage.Scenario { return &voyage.Scenario{ID: "zz-dup"} }
	Register("zz-dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz-dup", f)
}

func TestListSorted(t *testing.T) {
	Register("zz-b", func() *voyage.Scenario { return &voyage.Scenario{} })
	Register("zz-a", func() *voyage.Scenario { return &voyage.Scenario{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List not sorted: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}
