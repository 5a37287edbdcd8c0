package nvic

import (
	"testing"

	"github.com/zmij/armpp/hal"
	"github.com/zmij/armpp/hal/scb"
)

func newTestDevice() (*Device, *Registers, *scb.Registers) {
	regs := new(Registers)
	sysRegs := new(scb.Registers)
	return Bind(regs, scb.Bind(sysRegs)), regs, sysRegs
}

func TestEnableIRQPlacement(t *testing.T) {
	d, regs, _ := newTestDevice()

	d.EnableIRQ(37)
	for i := range regs.ISER {
		want := hal.Raw(0)
		if i == 1 {
			want = 1 << 5
		}
		if got := regs.ISER[i].Load(); got != want {
			t.Errorf("ISER[%d] = %#x, want %#x", i, got, want)
		}
	}
	if !d.IRQEnabled(37) {
		t.Error("IRQEnabled(37) = false after enable")
	}
	if d.IRQEnabled(38) {
		t.Error("IRQEnabled(38) = true, neighbour bit leaked")
	}
}

func TestDisableIRQIsPureStore(t *testing.T) {
	// ICER is write 1 to clear; disabling one interrupt must not carry
	// back the other enabled bits as clear commands.
	d, regs, _ := newTestDevice()
	regs.ICER[1].Store(0xFFFF_FFFF)

	d.DisableIRQ(37)
	if got := regs.ICER[1].Load(); got != 1<<5 {
		t.Errorf("ICER[1] = %#x, want %#x", got, 1<<5)
	}
}

func TestPendingOperations(t *testing.T) {
	d, regs, _ := newTestDevice()

	d.SetPending(200)
	if got := regs.ISPR[6].Load(); got != 1<<8 {
		t.Errorf("ISPR[6] = %#x, want %#x", got, 1<<8)
	}
	if !d.IsPending(200) {
		t.Error("IsPending(200) = false after SetPending")
	}

	d.ClearPending(200)
	if got := regs.ICPR[6].Load(); got != 1<<8 {
		t.Errorf("ICPR[6] = %#x, want %#x", got, 1<<8)
	}
}

func TestIsActive(t *testing.T) {
	d, regs, _ := newTestDevice()

	regs.IABR[0].Store(1 << 3)
	if !d.IsActive(3) {
		t.Error("IsActive(3) = false")
	}
	if d.IsActive(4) {
		t.Error("IsActive(4) = true")
	}
}

func TestPeripheralPriorityPlacement(t *testing.T) {
	d, regs, sysRegs := newTestDevice()

	d.SetPriority(37, 0xA0)
	// Interrupt 37 is byte 1 of priority word 9.
	if got := regs.IPR[9].Load(); got != 0xA0<<8 {
		t.Errorf("IPR[9] = %#x, want %#x", got, 0xA0<<8)
	}
	if got := d.Priority(37); got != 0xA0 {
		t.Errorf("Priority(37) = %#x, want 0xa0", got)
	}
	for i := range sysRegs.SHPR {
		if got := sysRegs.SHPR[i].Load(); got != 0 {
			t.Errorf("SHPR[%d] = %#x, peripheral priority leaked into the SCB", i, got)
		}
	}
}

func TestCoreExceptionPriorityRouting(t *testing.T) {
	d, regs, sysRegs := newTestDevice()

	d.SetPriority(hal.SysTick, 0x80)
	// SysTick is handler 11, the top byte of the third system word.
	if got := sysRegs.SHPR[2].Load(); got != 0x80<<24 {
		t.Errorf("SHPR[2] = %#x, want %#x", got, 0x80<<24)
	}
	for i := range regs.IPR {
		if got := regs.IPR[i].Load(); got != 0 {
			t.Errorf("IPR[%d] = %#x, core exception priority leaked into the NVIC", i, got)
		}
	}
	if got := d.Priority(hal.SysTick); got != 0x80 {
		t.Errorf("Priority(SysTick) = %#x, want 0x80", got)
	}
}

func TestPriorityGroupingDelegates(t *testing.T) {
	d, _, sysRegs := newTestDevice()

	d.SetPriorityGrouping(hal.Split5x3)
	if got := d.PriorityGrouping(); got != hal.Split5x3 {
		t.Errorf("PriorityGrouping() = %d, want %d", got, hal.Split5x3)
	}
	if got := sysRegs.AIRCR.Load() >> 16; got != 0x05FA {
		t.Errorf("AIRCR key half-word = %#x, want 0x5fa", got)
	}
}

func TestTriggerInterrupt(t *testing.T) {
	d, regs, _ := newTestDevice()

	d.TriggerInterrupt(137)
	if got := regs.STIR.Load(); got != 137 {
		t.Errorf("STIR = %d, want 137", got)
	}
}
