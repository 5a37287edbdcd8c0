// Package scb drives the System Control Block: CPU identification,
// system reset, fault status, system-handler priorities and priority
// grouping.
package scb

import (
	"unsafe"

	"github.com/zmij/armpp/hal"
)

// BaseAddress is the core-defined SCB address.
const BaseAddress hal.Address = 0xE000ED00

// Registers is the SCB register map, 0xE000ED00-0xE000ED40.
type Registers struct {
	CPUID hal.Reg    // 0xE000ED00 CPU identification
	ICSR  hal.Reg    // 0xE000ED04 interrupt control and state
	VTOR  hal.Reg    // 0xE000ED08 vector table offset
	AIRCR hal.Reg    // 0xE000ED0C application interrupt and reset control
	SCR   hal.Reg    // 0xE000ED10 system control
	CCR   hal.Reg    // 0xE000ED14 configuration control
	SHPR  [3]hal.Reg // 0xE000ED18 system handler priorities, 12 x 8 bit
	SHCSR hal.Reg    // 0xE000ED24 system handler control and state
	CFSR  hal.Reg    // 0xE000ED28 configurable fault status, write 1 to clear
	HFSR  hal.Reg    // 0xE000ED2C hard fault status, write 1 to clear
	DFSR  hal.Reg    // 0xE000ED30 debug fault status, write 1 to clear
	MMFAR hal.Reg    // 0xE000ED34 memory manage fault address
	BFAR  hal.Reg    // 0xE000ED38 bus fault address
	AFSR  hal.Reg    // 0xE000ED3C auxiliary fault status
}

func init() {
	var r Registers
	hal.MustRegisterLayout(hal.Layout{
		Peripheral: "SCB",
		Base:       BaseAddress,
		Size:       unsafe.Sizeof(r),
		WantSize:   0x40,
		Entries: []hal.LayoutEntry{
			{Name: "CPUID", Offset: unsafe.Offsetof(r.CPUID), Documented: 0xE000ED00},
			{Name: "ICSR", Offset: unsafe.Offsetof(r.ICSR), Documented: 0xE000ED04},
			{Name: "VTOR", Offset: unsafe.Offsetof(r.VTOR), Documented: 0xE000ED08},
			{Name: "AIRCR", Offset: unsafe.Offsetof(r.AIRCR), Documented: 0xE000ED0C},
			{Name: "SCR", Offset: unsafe.Offsetof(r.SCR), Documented: 0xE000ED10},
			{Name: "CCR", Offset: unsafe.Offsetof(r.CCR), Documented: 0xE000ED14},
			{Name: "SHPR", Offset: unsafe.Offsetof(r.SHPR), Documented: 0xE000ED18, Bits: 96},
			{Name: "SHCSR", Offset: unsafe.Offsetof(r.SHCSR), Documented: 0xE000ED24},
			{Name: "CFSR", Offset: unsafe.Offsetof(r.CFSR), Documented: 0xE000ED28},
			{Name: "HFSR", Offset: unsafe.Offsetof(r.HFSR), Documented: 0xE000ED2C},
			{Name: "DFSR", Offset: unsafe.Offsetof(r.DFSR), Documented: 0xE000ED30},
			{Name: "MMFAR", Offset: unsafe.Offsetof(r.MMFAR), Documented: 0xE000ED34},
			{Name: "BFAR", Offset: unsafe.Offsetof(r.BFAR), Documented: 0xE000ED38},
			{Name: "AFSR", Offset: unsafe.Offsetof(r.AFSR), Documented: 0xE000ED3C},
		},
	})
}

// AIRCR layout. Writes take effect only when accompanied by the vector
// key in the top half-word.
const (
	aircrSysResetReq  = 2
	aircrPriGroupOff  = 8
	aircrPriGroupMask = 0x7 << aircrPriGroupOff
	aircrVectKey      = hal.Raw(0x05FA) << 16
	aircrVectKeyMask  = hal.Raw(0xFFFF) << 16
)

// SystemHandler indexes a core exception's slot in the SHPR bank.
type SystemHandler uint32

const (
	MemManageFault SystemHandler = 0
	BusFault       SystemHandler = 1
	UsageFault     SystemHandler = 2
	SVCall         SystemHandler = 7
	DebugMonitor   SystemHandler = 8
	PendSV         SystemHandler = 10
	SysTick        SystemHandler = 11
)

// HandlerFor maps a core-exception IRQ number to its SHPR slot. NMI and
// HardFault have fixed priorities and no SHPR byte; for them the result
// falls outside the priority bank and reads/writes through it become
// no-ops.
func HandlerFor(irq hal.IRQ) SystemHandler {
	return SystemHandler((uint32(irq) & 0xF) - 4)
}

// CPUID is the decomposed CPU identification word.
type CPUID struct {
	Revision    uint32
	PartNo      uint32
	Constant    uint32
	Variant     uint32
	Implementer uint32
}

// Device is the SCB behavioral API over its register map.
type Device struct {
	regs *Registers

	revision    hal.ROField[hal.Raw]
	partNo      hal.ROField[hal.Raw]
	constant    hal.ROField[hal.Raw]
	variant     hal.ROField[hal.Raw]
	implementer hal.ROField[hal.Raw]

	vectActive  hal.ROField[hal.Raw]
	vectPending hal.ROField[hal.Raw]
	pendStClr   hal.WOField[hal.Clear]
	pendStSet   hal.Field[hal.Set]
	pendSVClr   hal.WOField[hal.Clear]
	pendSVSet   hal.Field[hal.Set]

	sleepOnExit hal.Field[hal.Raw]
	sleepDeep   hal.Field[hal.Raw]
	sevOnPend   hal.Field[hal.Enabled]

	priorities hal.FieldArray[hal.Raw]
}

// New binds the driver to the core-defined SCB address.
func New() *Device {
	return Bind(hal.MapAt[Registers](BaseAddress))
}

// Bind binds the driver to an explicit register map, which may be
// simulated memory.
func Bind(regs *Registers) *Device {
	d := &Device{regs: regs}

	d.revision = hal.NewField[hal.Raw](&regs.CPUID, 0, 4, hal.Packed, hal.Volatile).RO()
	d.partNo = hal.NewField[hal.Raw](&regs.CPUID, 4, 12, hal.Packed, hal.Volatile).RO()
	d.constant = hal.NewField[hal.Raw](&regs.CPUID, 16, 4, hal.Packed, hal.Volatile).RO()
	d.variant = hal.NewField[hal.Raw](&regs.CPUID, 20, 4, hal.Packed, hal.Volatile).RO()
	d.implementer = hal.NewField[hal.Raw](&regs.CPUID, 24, 8, hal.Packed, hal.Volatile).RO()

	d.vectActive = hal.NewField[hal.Raw](&regs.ICSR, 0, 9, hal.MaskShift, hal.Volatile).RO()
	d.vectPending = hal.NewField[hal.Raw](&regs.ICSR, 12, 9, hal.MaskShift, hal.Volatile).RO()
	d.pendStClr = hal.Bit[hal.Clear](&regs.ICSR, 25, hal.StoreMask, hal.Volatile).WO()
	d.pendStSet = hal.Bit[hal.Set](&regs.ICSR, 26, hal.StoreMask, hal.Volatile)
	d.pendSVClr = hal.Bit[hal.Clear](&regs.ICSR, 27, hal.StoreMask, hal.Volatile).WO()
	d.pendSVSet = hal.Bit[hal.Set](&regs.ICSR, 28, hal.StoreMask, hal.Volatile)

	d.sleepOnExit = hal.Bit[hal.Raw](&regs.SCR, 1, hal.Packed, hal.Volatile)
	d.sleepDeep = hal.Bit[hal.Raw](&regs.SCR, 2, hal.Packed, hal.Volatile)
	d.sevOnPend = hal.Bit[hal.Enabled](&regs.SCR, 4, hal.Packed, hal.Volatile)

	d.priorities = hal.NewFieldArray[hal.Raw](regs.SHPR[:], hal.ArraySpec{
		Width: 8, Count: 12, Access: hal.Packed, Mode: hal.Volatile,
	})
	return d
}

// CPUID reads and decodes the CPU identification register.
func (d *Device) CPUID() CPUID {
	return CPUID{
		Revision:    d.revision.Get(),
		PartNo:      d.partNo.Get(),
		Constant:    d.constant.Get(),
		Variant:     d.variant.Get(),
		Implementer: d.implementer.Get(),
	}
}

// ActiveVector returns the exception number of the running handler.
func (d *Device) ActiveVector() hal.Raw { return d.vectActive.Get() }

// PendingVector returns the highest priority pending exception number.
func (d *Device) PendingVector() hal.Raw { return d.vectPending.Get() }

func (d *Device) PendSysTick()         { d.pendStSet.Set(hal.SetBit) }
func (d *Device) ClearPendingSysTick() { d.pendStClr.Set(hal.ClearBit) }
func (d *Device) PendSV()              { d.pendSVSet.Set(hal.SetBit) }
func (d *Device) ClearPendingSV()      { d.pendSVClr.Set(hal.ClearBit) }

// Priority returns a system handler's priority byte.
func (d *Device) Priority(h SystemHandler) uint32 {
	return uint32(d.priorities.Get(uint32(h)))
}

// SetPriority sets a system handler's priority byte.
func (d *Device) SetPriority(h SystemHandler, priority uint32) {
	d.priorities.Set(uint32(h), hal.Raw(priority))
}

// PriorityGrouping returns the AIRCR PRIGROUP split.
func (d *Device) PriorityGrouping() hal.PriorityGrouping {
	return hal.PriorityGrouping((d.regs.AIRCR.Load() & aircrPriGroupMask) >> aircrPriGroupOff)
}

// SetPriorityGrouping programs the AIRCR PRIGROUP split. The whole word
// is rewritten with the vector key; the hardware ignores writes without
// it.
func (d *Device) SetPriorityGrouping(g hal.PriorityGrouping) {
	w := d.regs.AIRCR.Load() &^ (aircrPriGroupMask | aircrVectKeyMask)
	w |= hal.Raw(g)<<aircrPriGroupOff | aircrVectKey
	d.regs.AIRCR.Store(w)
}

// RequestSystemReset asserts SYSRESETREQ, preserving the priority
// grouping. The reset is asynchronous; callers normally spin after this.
func (d *Device) RequestSystemReset() {
	w := d.regs.AIRCR.Load() & aircrPriGroupMask
	d.regs.AIRCR.Store(w | aircrVectKey | 1<<aircrSysResetReq)
}

func (d *Device) SleepOnExit() bool     { return d.sleepOnExit.IsSet() }
func (d *Device) SetSleepOnExit(v bool) { d.sleepOnExit.SetBit(v) }
func (d *Device) SleepDeep() bool       { return d.sleepDeep.IsSet() }
func (d *Device) SetSleepDeep(v bool)   { d.sleepDeep.SetBit(v) }
func (d *Device) SetSendEventOnPend(v bool) {
	if v {
		d.sevOnPend.Set(hal.IsEnabled)
	} else {
		d.sevOnPend.Set(hal.Disabled)
	}
}

// FaultStatus returns the configurable fault status word (memory manage,
// bus and usage fault flags).
func (d *Device) FaultStatus() hal.Raw { return d.regs.CFSR.Load() }

// ClearFaultStatus clears the given configurable fault flags; the
// register is write 1 to clear.
func (d *Device) ClearFaultStatus(flags hal.Raw) { d.regs.CFSR.Store(flags) }

// HardFaultStatus returns the hard fault status word.
func (d *Device) HardFaultStatus() hal.Raw { return d.regs.HFSR.Load() }

// ClearHardFaultStatus clears the given hard fault flags.
func (d *Device) ClearHardFaultStatus(flags hal.Raw) { d.regs.HFSR.Store(flags) }

// MemFaultAddress returns the address that caused a memory manage fault.
func (d *Device) MemFaultAddress() hal.Address { return hal.Address(d.regs.MMFAR.Load()) }

// BusFaultAddress returns the address that caused a bus fault.
func (d *Device) BusFaultAddress() hal.Address { return hal.Address(d.regs.BFAR.Load()) }
