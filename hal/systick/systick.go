// Package systick drives the core periodic down counter.
package systick

import (
	"unsafe"

	"github.com/zmij/armpp/hal"
)

// BaseAddress is the core-defined SysTick address.
const BaseAddress hal.Address = 0xE000E010

// ClockSource selects what drives the counter.
type ClockSource hal.Raw

const (
	ExternalClock ClockSource = 0
	CoreClock     ClockSource = 1
)

// Registers is the SysTick register map, 0xE000E010-0xE000E020.
type Registers struct {
	CSR   hal.Reg // 0xE000E010 control and status
	RVR   hal.Reg // 0xE000E014 reload value, 24 bit
	CVR   hal.Reg // 0xE000E018 current value, 24 bit
	CALIB hal.Reg // 0xE000E01C calibration
}

func init() {
	var r Registers
	hal.MustRegisterLayout(hal.Layout{
		Peripheral: "SysTick",
		Base:       BaseAddress,
		Size:       unsafe.Sizeof(r),
		WantSize:   0x10,
		Entries: []hal.LayoutEntry{
			{Name: "CSR", Offset: unsafe.Offsetof(r.CSR), Documented: 0xE000E010},
			{Name: "RVR", Offset: unsafe.Offsetof(r.RVR), Documented: 0xE000E014},
			{Name: "CVR", Offset: unsafe.Offsetof(r.CVR), Documented: 0xE000E018},
			{Name: "CALIB", Offset: unsafe.Offsetof(r.CALIB), Documented: 0xE000E01C},
		},
	})
}

// Config gathers the initial SysTick programming.
type Config struct {
	Reload        hal.Raw // 24 bit reload value
	Source        ClockSource
	HandlerEnable bool // raise the SysTick exception on wrap
	Enable        bool
}

// Device is the SysTick behavioral API over its register map.
type Device struct {
	regs *Registers

	enable    hal.Field[hal.Raw]
	tickInt   hal.Field[hal.Raw]
	source    hal.Field[ClockSource]
	countFlag hal.ROField[hal.Raw]

	reload  hal.Field[hal.Raw]
	current hal.ROField[hal.Raw]

	tenMS hal.ROField[hal.Raw]
	skew  hal.ROField[hal.Raw]
	noRef hal.ROField[hal.Raw]
}

// New binds the driver to the core-defined SysTick address.
func New() *Device {
	return Bind(hal.MapAt[Registers](BaseAddress))
}

// Bind binds the driver to an explicit register map, which may be
// simulated memory.
func Bind(regs *Registers) *Device {
	d := &Device{regs: regs}
	d.enable = hal.Bit[hal.Raw](&regs.CSR, 0, hal.Packed, hal.Volatile)
	d.tickInt = hal.Bit[hal.Raw](&regs.CSR, 1, hal.Packed, hal.Volatile)
	d.source = hal.Bit[ClockSource](&regs.CSR, 2, hal.MaskShift, hal.Volatile)
	d.countFlag = hal.Bit[hal.Raw](&regs.CSR, 16, hal.MaskShift, hal.Volatile).RO()
	d.reload = hal.NewField[hal.Raw](&regs.RVR, 0, 24, hal.Packed, hal.Volatile)
	d.current = hal.NewField[hal.Raw](&regs.CVR, 0, 24, hal.Packed, hal.Volatile).RO()
	d.tenMS = hal.NewField[hal.Raw](&regs.CALIB, 0, 24, hal.Packed, hal.Volatile).RO()
	d.skew = hal.Bit[hal.Raw](&regs.CALIB, 30, hal.MaskShift, hal.Volatile).RO()
	d.noRef = hal.Bit[hal.Raw](&regs.CALIB, 31, hal.MaskShift, hal.Volatile).RO()
	return d
}

// Configure programs reload, source and interrupt state, then applies
// the requested enable.
func (d *Device) Configure(cfg Config) {
	d.Disable()
	d.SetReloadValue(cfg.Reload)
	d.SetSource(cfg.Source)
	d.tickInt.SetBit(cfg.HandlerEnable)
	// Clear the current count; any write zeroes CVR.
	d.regs.CVR.Store(1)
	d.enable.SetBit(cfg.Enable)
}

func (d *Device) Enabled() bool { return d.enable.IsSet() }
func (d *Device) Enable()       { d.enable.Set(1) }
func (d *Device) Disable()      { d.enable.Set(0) }

func (d *Device) HandlerEnabled() bool { return d.tickInt.IsSet() }
func (d *Device) HandlerEnable()       { d.tickInt.Set(1) }
func (d *Device) HandlerDisable()      { d.tickInt.Set(0) }

func (d *Device) Source() ClockSource       { return d.source.Get() }
func (d *Device) SetSource(src ClockSource) { d.source.Set(src) }

// CountFlag reports whether the counter wrapped to zero since the flag
// was last observed. The hardware clears it on any read of the control
// and status word, including this one.
func (d *Device) CountFlag() bool { return d.countFlag.IsSet() }

func (d *Device) ReloadValue() hal.Raw     { return d.reload.Get() }
func (d *Device) SetReloadValue(v hal.Raw) { d.reload.Set(v) }

// CurrentValue returns the counter's present value.
func (d *Device) CurrentValue() hal.Raw { return d.current.Get() }

// Calibration returns the vendor's 10ms reload calibration value and its
// skew/no-reference flags; tenMS of 0 means the value is unknown.
func (d *Device) Calibration() (tenMS hal.Raw, skew, noRef bool) {
	return d.tenMS.Get(), d.skew.IsSet(), d.noRef.IsSet()
}
