// Package nvic drives the Nested Vectored Interrupt Controller:
// enabling, pending, active state and priority of the 240 peripheral
// interrupts. Core-exception priorities live in the SCB, not here; the
// priority operations route by the sign of the IRQ number.
package nvic

import (
	"unsafe"

	"github.com/zmij/armpp/hal"
	"github.com/zmij/armpp/hal/scb"
)

// BaseAddress is the core-defined address of the interrupt-enable region.
const BaseAddress hal.Address = 0xE000E100

// InterruptCount is the number of peripheral interrupts the NVIC serves.
const InterruptCount = 240

const bankWords = 8 // one bit per interrupt, 8 words per bank

// Registers is the NVIC register map, 0xE000E100-0xE000EF04. The blank
// filler keeps the documented gaps between banks.
type Registers struct {
	ISER [bankWords]hal.Reg // 0xE000E100 set enable
	_    [24]hal.Reg
	ICER [bankWords]hal.Reg // 0xE000E180 clear enable
	_    [24]hal.Reg
	ISPR [bankWords]hal.Reg // 0xE000E200 set pending
	_    [24]hal.Reg
	ICPR [bankWords]hal.Reg // 0xE000E280 clear pending
	_    [24]hal.Reg
	IABR [bankWords]hal.Reg // 0xE000E300 active bits
	_    [56]hal.Reg
	IPR  [60]hal.Reg // 0xE000E400 priorities, 240 x 8 bit
	_    [644]hal.Reg
	STIR hal.Reg // 0xE000EF00 software trigger
}

func init() {
	var r Registers
	hal.MustRegisterLayout(hal.Layout{
		Peripheral: "NVIC",
		Base:       BaseAddress,
		Size:       unsafe.Sizeof(r),
		WantSize:   0xE000EF04 - uintptr(BaseAddress),
		Entries: []hal.LayoutEntry{
			{Name: "ISER", Offset: unsafe.Offsetof(r.ISER), Documented: 0xE000E100, Bits: bankWords * 32},
			{Name: "ICER", Offset: unsafe.Offsetof(r.ICER), Documented: 0xE000E180, Bits: bankWords * 32},
			{Name: "ISPR", Offset: unsafe.Offsetof(r.ISPR), Documented: 0xE000E200, Bits: bankWords * 32},
			{Name: "ICPR", Offset: unsafe.Offsetof(r.ICPR), Documented: 0xE000E280, Bits: bankWords * 32},
			{Name: "IABR", Offset: unsafe.Offsetof(r.IABR), Documented: 0xE000E300, Bits: bankWords * 32},
			{Name: "IPR", Offset: unsafe.Offsetof(r.IPR), Documented: 0xE000E400, Bits: 60 * 32},
			{Name: "STIR", Offset: unsafe.Offsetof(r.STIR), Documented: 0xE000EF00},
		},
	})
}

// Device is the NVIC behavioral API over its register map.
type Device struct {
	regs *Registers
	sys  *scb.Device

	enabled      hal.FieldArray[hal.Enabled]
	setEnable    hal.FieldArray[hal.Set]
	clearEnable  hal.FieldArray[hal.Clear]
	pending      hal.FieldArray[hal.Active]
	setPending   hal.FieldArray[hal.Set]
	clearPending hal.FieldArray[hal.Clear]
	active       hal.FieldArray[hal.Active]
	priorities   hal.FieldArray[hal.Raw]
}

// New binds the driver to the core-defined NVIC and SCB addresses.
func New() *Device {
	return Bind(hal.MapAt[Registers](BaseAddress), scb.New())
}

// Bind binds the driver to explicit register maps, which may be simulated
// memory. Core-exception priority operations are served by sys.
func Bind(regs *Registers, sys *scb.Device) *Device {
	// State reads are plain extracts; the set/clear banks take one-shot
	// bit commands, so their writes must not read-modify-write.
	read := hal.ArraySpec{Width: 1, Count: InterruptCount, Access: hal.MaskShift, Mode: hal.Volatile}
	cmd := hal.ArraySpec{Width: 1, Count: InterruptCount, Access: hal.StoreMask, Mode: hal.Volatile}
	d := &Device{regs: regs, sys: sys}
	d.enabled = hal.NewFieldArray[hal.Enabled](regs.ISER[:], read)
	d.setEnable = hal.NewFieldArray[hal.Set](regs.ISER[:], cmd)
	d.clearEnable = hal.NewFieldArray[hal.Clear](regs.ICER[:], cmd)
	d.pending = hal.NewFieldArray[hal.Active](regs.ISPR[:], read)
	d.setPending = hal.NewFieldArray[hal.Set](regs.ISPR[:], cmd)
	d.clearPending = hal.NewFieldArray[hal.Clear](regs.ICPR[:], cmd)
	d.active = hal.NewFieldArray[hal.Active](regs.IABR[:], read)
	d.priorities = hal.NewFieldArray[hal.Raw](regs.IPR[:], hal.ArraySpec{
		Width: 8, Count: InterruptCount, Access: hal.Packed, Mode: hal.Volatile,
	})
	return d
}

// EnableIRQ enables a peripheral interrupt. The IRQ number cannot be
// negative; core exceptions are not controlled through the NVIC.
func (d *Device) EnableIRQ(irq hal.IRQ) {
	d.setEnable.Set(uint32(irq), hal.SetBit)
}

// DisableIRQ disables a peripheral interrupt.
func (d *Device) DisableIRQ(irq hal.IRQ) {
	d.clearEnable.Set(uint32(irq), hal.ClearBit)
}

// IRQEnabled reports whether a peripheral interrupt is enabled.
func (d *Device) IRQEnabled(irq hal.IRQ) bool {
	return d.enabled.Get(uint32(irq)) == hal.IsEnabled
}

// SetPending marks a peripheral interrupt pending.
func (d *Device) SetPending(irq hal.IRQ) {
	d.setPending.Set(uint32(irq), hal.SetBit)
}

// ClearPending removes a peripheral interrupt's pending state.
func (d *Device) ClearPending(irq hal.IRQ) {
	d.clearPending.Set(uint32(irq), hal.ClearBit)
}

// IsPending reports whether a peripheral interrupt is pending.
func (d *Device) IsPending(irq hal.IRQ) bool {
	return d.pending.Get(uint32(irq)) == hal.IsActive
}

// IsActive reports whether a peripheral interrupt's handler is running
// or stacked.
func (d *Device) IsActive(irq hal.IRQ) bool {
	return d.active.Get(uint32(irq)) == hal.IsActive
}

// Priority returns an interrupt's priority byte. Core exceptions read
// from the SCB system-handler priority bank, peripheral interrupts from
// the NVIC priority array; the two share a priority concept but not
// storage.
func (d *Device) Priority(irq hal.IRQ) uint32 {
	if irq.IsCoreException() {
		return d.sys.Priority(scb.HandlerFor(irq))
	}
	return uint32(d.priorities.Get(uint32(irq)))
}

// SetPriority sets an interrupt's priority byte, routed the same way
// Priority reads it.
func (d *Device) SetPriority(irq hal.IRQ, priority uint32) {
	if irq.IsCoreException() {
		d.sys.SetPriority(scb.HandlerFor(irq), priority)
		return
	}
	d.priorities.Set(uint32(irq), hal.Raw(priority))
}

// PriorityGrouping reads the pre-emption/subpriority split; the split is
// kept in the SCB for the whole interrupt system.
func (d *Device) PriorityGrouping() hal.PriorityGrouping {
	return d.sys.PriorityGrouping()
}

// SetPriorityGrouping programs the pre-emption/subpriority split.
func (d *Device) SetPriorityGrouping(g hal.PriorityGrouping) {
	d.sys.SetPriorityGrouping(g)
}

// TriggerInterrupt pends a peripheral interrupt from software through
// the STIR.
func (d *Device) TriggerInterrupt(irq hal.IRQ) {
	d.regs.STIR.Store(hal.Raw(irq) & 0x1FF)
}
