package hal

import (
	"strings"
	"testing"
)

func validLayout() Layout {
	return Layout{
		Peripheral: "FAKE",
		Base:       0x40010000,
		Size:       8,
		WantSize:   8,
		Entries: []LayoutEntry{
			{Name: "A", Offset: 0, Documented: 0x40010000},
			{Name: "B", Offset: 4, Documented: 0x40010004},
		},
	}
}

func TestLayoutCheck(t *testing.T) {
	if err := validLayout().Check(); err != nil {
		t.Errorf("consistent layout rejected: %v", err)
	}

	t.Run("offsetMismatch", func(t *testing.T) {
		l := validLayout()
		l.Entries[1].Documented = 0x40010008
		err := l.Check()
		if err == nil {
			t.Fatal("transposed entry accepted")
		}
		if !strings.Contains(err.Error(), "FAKE.B") {
			t.Errorf("error does not name the offending entry: %v", err)
		}
	})

	t.Run("sizeMismatch", func(t *testing.T) {
		l := validLayout()
		l.WantSize = 12
		if l.Check() == nil {
			t.Error("short register map accepted")
		}
	})
}

func TestRegisterLayoutRecorded(t *testing.T) {
	l := validLayout()
	l.Peripheral = "FAKE_RECORDED"
	l.Entries = nil
	MustRegisterLayout(l)

	for _, got := range Layouts() {
		if got.Peripheral == l.Peripheral {
			return
		}
	}
	t.Errorf("%s missing from Layouts()", l.Peripheral)
}

func TestRegisterLayoutDuplicatePanics(t *testing.T) {
	l := validLayout()
	l.Peripheral = "FAKE_DUP"
	l.Entries = nil
	MustRegisterLayout(l)

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	MustRegisterLayout(l)
}

func TestRegisterLayoutInconsistentPanics(t *testing.T) {
	l := validLayout()
	l.Peripheral = "FAKE_BROKEN"
	l.Entries[0].Documented = 0x40010004

	defer func() {
		if recover() == nil {
			t.Error("inconsistent registration did not panic")
		}
	}()
	MustRegisterLayout(l)
}

func TestLayoutsSorted(t *testing.T) {
	all := Layouts()
	for i := 1; i < len(all); i++ {
		if all[i-1].Peripheral > all[i].Peripheral {
			t.Errorf("Layouts() out of order: %s before %s",
				all[i-1].Peripheral, all[i].Peripheral)
		}
	}
}
