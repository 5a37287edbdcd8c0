package systick

import (
	"testing"

	"github.com/zmij/armpp/hal"
)

func TestConfigure(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	d.Configure(Config{
		Reload:        0x00FF_FFFF,
		Source:        CoreClock,
		HandlerEnable: true,
		Enable:        true,
	})

	if got := regs.CSR.Load(); got != 1<<0|1<<1|1<<2 {
		t.Errorf("CSR = %#x, want enable, tickint and clksource set", got)
	}
	if got := regs.RVR.Load(); got != 0x00FF_FFFF {
		t.Errorf("RVR = %#x, want 0xffffff", got)
	}
	// Any write zeroes CVR on hardware; the test memory just records
	// that the clearing store happened.
	if got := regs.CVR.Load(); got != 1 {
		t.Errorf("CVR = %#x, want the clearing store value", got)
	}
}

func TestConfigureDisabled(t *testing.T) {
	var regs Registers
	regs.CSR.Store(1) // previously running
	d := Bind(&regs)

	d.Configure(Config{Reload: 1000, Source: ExternalClock})

	if d.Enabled() {
		t.Error("counter still enabled")
	}
	if d.HandlerEnabled() {
		t.Error("handler enabled without being requested")
	}
	if got := d.Source(); got != ExternalClock {
		t.Errorf("Source() = %d, want ExternalClock", got)
	}
}

func TestReloadValueIs24Bit(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	d.SetReloadValue(0x1234_5678)
	if got := regs.RVR.Load(); got != 0x0034_5678 {
		t.Errorf("RVR = %#x, want the value truncated to 24 bits", got)
	}
}

func TestCountFlag(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	if d.CountFlag() {
		t.Error("CountFlag() = true on a quiet counter")
	}
	regs.CSR.Store(1 << 16)
	if !d.CountFlag() {
		t.Error("CountFlag() = false with the flag raised")
	}
}

func TestCalibration(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	regs.CALIB.Store(hal.Raw(1)<<31 | 10500)
	tenMS, skew, noRef := d.Calibration()
	if tenMS != 10500 {
		t.Errorf("tenMS = %d, want 10500", tenMS)
	}
	if skew {
		t.Error("skew = true")
	}
	if !noRef {
		t.Error("noRef = false")
	}
}

func TestCurrentValue(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	regs.CVR.Store(0x0012_3456)
	if got := d.CurrentValue(); got != 0x0012_3456 {
		t.Errorf("CurrentValue() = %#x, want 0x123456", got)
	}
}
