package platform

import (
	"errors"
	"testing"
)

func TestEmbeddedMapLoads(t *testing.T) {
	if len(All()) == 0 {
		t.Fatal("no peripherals in the embedded address map")
	}
}

func TestFindByName(t *testing.T) {
	p, err := All().FindByName("nvic")
	if err != nil {
		t.Fatalf("FindByName(nvic): %v", err)
	}
	if p.Base != 0xE000E100 {
		t.Errorf("NVIC base = %#x, want 0xe000e100", p.Base)
	}

	if _, err := All().FindByName("dma"); !errors.Is(err, ErrUnknownPeripheral) {
		t.Errorf("FindByName(dma): %v, want ErrUnknownPeripheral", err)
	}
}

func TestFindRegister(t *testing.T) {
	p, err := All().FindByName("UART")
	if err != nil {
		t.Fatalf("FindByName(UART): %v", err)
	}

	r, err := p.FindRegister("bauddiv")
	if err != nil {
		t.Fatalf("FindRegister(bauddiv): %v", err)
	}
	if r.Address != 0x40004010 {
		t.Errorf("BAUDDIV address = %#x, want 0x40004010", r.Address)
	}

	if _, err := p.FindRegister("FIFO"); !errors.Is(err, ErrUnknownRegister) {
		t.Errorf("FindRegister(FIFO): %v, want ErrUnknownRegister", err)
	}
}
