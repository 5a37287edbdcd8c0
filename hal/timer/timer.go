// Package timer drives the general purpose APB timers.
package timer

import (
	"unsafe"

	"github.com/zmij/armpp/hal"
)

// Input selects what drives the counter.
type Input uint8

const (
	// SysClock counts core clock cycles.
	SysClock Input = iota
	// ExternalInput counts external events; the external pin also gates
	// the clock select, matching the control word the original vendor
	// code programs for event counting.
	ExternalInput
	// ExternalClock counts external clock edges.
	ExternalClock
)

// Registers is a timer instance's register map.
type Registers struct {
	Ctrl   hal.Reg // +0x0 control
	Value  hal.Reg // +0x4 current value
	Reload hal.Reg // +0x8 reload value
	Intr   hal.Reg // +0xC interrupt status, write 1 to clear
}

func init() {
	var r Registers
	hal.MustRegisterLayout(hal.Layout{
		Peripheral: "TIMER",
		Base:       hal.Timer0Address,
		Size:       unsafe.Sizeof(r),
		WantSize:   0x10,
		Entries: []hal.LayoutEntry{
			{Name: "CTRL", Offset: unsafe.Offsetof(r.Ctrl), Documented: hal.Timer0Address + 0x0},
			{Name: "VALUE", Offset: unsafe.Offsetof(r.Value), Documented: hal.Timer0Address + 0x4},
			{Name: "RELOAD", Offset: unsafe.Offsetof(r.Reload), Documented: hal.Timer0Address + 0x8},
			{Name: "INTR", Offset: unsafe.Offsetof(r.Intr), Documented: hal.Timer0Address + 0xC},
		},
	})
}

// Config gathers the initial timer programming.
type Config struct {
	Value           hal.Raw
	Reload          hal.Raw
	Enable          bool
	InterruptEnable bool
	Input           Input
}

// Device is a timer instance's behavioral API over its register map.
type Device struct {
	regs *Registers

	enable    hal.Field[hal.Raw]
	extEnable hal.Field[hal.Raw]
	extClock  hal.Field[hal.Raw]
	intEnable hal.Field[hal.Raw]

	value  hal.Field[hal.Raw]
	reload hal.Field[hal.Raw]

	intStatus hal.ROField[hal.Raw]
	intClear  hal.WOField[hal.Clear]
}

// New binds the driver to a timer instance at addr. The caller guarantees
// addr denotes a live timer.
func New(addr hal.Address) *Device {
	return Bind(hal.MapAt[Registers](addr))
}

// Bind binds the driver to an explicit register map, which may be
// simulated memory.
func Bind(regs *Registers) *Device {
	d := &Device{regs: regs}
	d.enable = hal.Bit[hal.Raw](&regs.Ctrl, 0, hal.Packed, hal.Volatile)
	d.extEnable = hal.Bit[hal.Raw](&regs.Ctrl, 1, hal.Packed, hal.Volatile)
	d.extClock = hal.Bit[hal.Raw](&regs.Ctrl, 2, hal.Packed, hal.Volatile)
	d.intEnable = hal.Bit[hal.Raw](&regs.Ctrl, 3, hal.Packed, hal.Volatile)
	d.value = hal.NewField[hal.Raw](&regs.Value, 0, 32, hal.Packed, hal.Volatile)
	d.reload = hal.NewField[hal.Raw](&regs.Reload, 0, 32, hal.Packed, hal.Volatile)
	d.intStatus = hal.Bit[hal.Raw](&regs.Intr, 0, hal.MaskShift, hal.Volatile).RO()
	d.intClear = hal.Bit[hal.Clear](&regs.Intr, 0, hal.StoreMask, hal.Volatile).WO()
	return d
}

// Configure fully resets control, value, reload and interrupt state,
// loads the requested value and reload, selects the input mode and
// applies the requested enables.
func (d *Device) Configure(cfg Config) {
	d.regs.Ctrl.Store(0)
	d.regs.Value.Store(0)
	d.regs.Reload.Store(0)
	d.regs.Intr.Store(0)

	d.value.Set(cfg.Value)
	d.reload.Set(cfg.Reload)
	d.intEnable.SetBit(cfg.InterruptEnable)

	switch cfg.Input {
	case SysClock:
		// Both external selects stay cleared.
	case ExternalInput:
		d.extEnable.Set(1)
		d.extClock.Set(1)
	case ExternalClock:
		d.extClock.Set(1)
	}

	d.enable.SetBit(cfg.Enable)
}

func (d *Device) Start()        { d.enable.Set(1) }
func (d *Device) Stop()         { d.enable.Set(0) }
func (d *Device) Enabled() bool { return d.enable.IsSet() }

// Interrupt reports whether the timer's interrupt flag is raised.
func (d *Device) Interrupt() bool { return d.intStatus.IsSet() }

// ClearInterrupt lowers the interrupt flag; the word is write 1 to
// clear.
func (d *Device) ClearInterrupt() { d.intClear.Set(hal.ClearBit) }

func (d *Device) InterruptEnabled() bool { return d.intEnable.IsSet() }
func (d *Device) EnableInterrupt()       { d.intEnable.Set(1) }
func (d *Device) DisableInterrupt()      { d.intEnable.Set(0) }

func (d *Device) Value() hal.Raw     { return d.value.Get() }
func (d *Device) SetValue(v hal.Raw) { d.value.Set(v) }

// Reset zeroes the current count.
func (d *Device) Reset() { d.value.Set(0) }

func (d *Device) Reload() hal.Raw     { return d.reload.Get() }
func (d *Device) SetReload(v hal.Raw) { d.reload.Set(v) }

// Delay busy-waits for ticks timer ticks. It owns the timer for the
// duration: the counter is stopped, reprogrammed, spun on until the
// interrupt flag is observed, then fully quiesced (stopped, interrupt
// disabled, flag cleared, value zero). There is no timeout; if the
// timer's clock never runs, Delay spins forever.
func (d *Device) Delay(ticks hal.Raw) {
	d.Stop()
	d.Reset()
	d.EnableInterrupt()

	d.SetReload(ticks)
	d.Start()

	for !d.Interrupt() {
	}

	d.Stop()
	d.DisableInterrupt()
	d.ClearInterrupt()
	d.Reset()
}
