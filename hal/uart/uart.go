// Package uart drives the APB serial ports and their interrupt driven
// callback dispatch.
package uart

import (
	"errors"
	"unsafe"

	"github.com/zmij/armpp/hal"
	"github.com/zmij/armpp/system"
)

var (
	// ErrNoClock is returned by Configure when no system clock was
	// supplied to derive the baud divisor from.
	ErrNoClock = errors.New("uart: no system clock")
	// ErrZeroBaudRate is returned by Configure for a zero baud rate.
	ErrZeroBaudRate = errors.New("uart: zero baud rate")
)

// Registers is a UART instance's register map.
type Registers struct {
	Data    hal.Reg // +0x00 tx/rx data, low 8 bits
	State   hal.Reg // +0x04 buffer state, overrun bits write 1 to clear
	Ctrl    hal.Reg // +0x08 enables and test mode
	Intr    hal.Reg // +0x0C interrupt status, write 1 to clear
	BaudDiv hal.Reg // +0x10 baud divisor, low 20 bits, minimum useful value 16
}

func init() {
	var r Registers
	hal.MustRegisterLayout(hal.Layout{
		Peripheral: "UART",
		Base:       hal.UART0Address,
		Size:       unsafe.Sizeof(r),
		WantSize:   0x14,
		Entries: []hal.LayoutEntry{
			{Name: "DATA", Offset: unsafe.Offsetof(r.Data), Documented: hal.UART0Address + 0x00},
			{Name: "STATE", Offset: unsafe.Offsetof(r.State), Documented: hal.UART0Address + 0x04},
			{Name: "CTRL", Offset: unsafe.Offsetof(r.Ctrl), Documented: hal.UART0Address + 0x08},
			{Name: "INTSTATUS", Offset: unsafe.Offsetof(r.Intr), Documented: hal.UART0Address + 0x0C},
			{Name: "BAUDDIV", Offset: unsafe.Offsetof(r.BaudDiv), Documented: hal.UART0Address + 0x10},
		},
	})
}

// TxRx pairs a setting for the transmit and receive directions.
type TxRx struct {
	Tx bool
	Rx bool
}

// Config gathers the initial UART programming.
type Config struct {
	Enable                 TxRx
	EnableInterrupt        TxRx
	EnableOverrunInterrupt TxRx
	BaudRate               uint32
	HSTestMode             bool
	Clock                  *system.Clock
}

// control is the set of control word fields. The same declaration
// serves the live register and an off-line staging word.
type control struct {
	txEnable       hal.Field[hal.Enabled]
	rxEnable       hal.Field[hal.Enabled]
	txIntEnable    hal.Field[hal.Enabled]
	rxIntEnable    hal.Field[hal.Enabled]
	txOvrIntEnable hal.Field[hal.Enabled]
	rxOvrIntEnable hal.Field[hal.Enabled]
	hsTestMode     hal.Field[hal.Enabled]
}

func newControl(reg *hal.Reg, mode hal.Mode) control {
	return control{
		txEnable:       hal.Bit[hal.Enabled](reg, 0, hal.Packed, mode),
		rxEnable:       hal.Bit[hal.Enabled](reg, 1, hal.Packed, mode),
		txIntEnable:    hal.Bit[hal.Enabled](reg, 2, hal.Packed, mode),
		rxIntEnable:    hal.Bit[hal.Enabled](reg, 3, hal.Packed, mode),
		txOvrIntEnable: hal.Bit[hal.Enabled](reg, 4, hal.Packed, mode),
		rxOvrIntEnable: hal.Bit[hal.Enabled](reg, 5, hal.Packed, mode),
		hsTestMode:     hal.Bit[hal.Enabled](reg, 6, hal.Packed, mode),
	}
}

func (c *control) apply(cfg Config) {
	c.txEnable.SetBit(cfg.Enable.Tx)
	c.rxEnable.SetBit(cfg.Enable.Rx)
	c.txIntEnable.SetBit(cfg.EnableInterrupt.Tx)
	c.rxIntEnable.SetBit(cfg.EnableInterrupt.Rx)
	c.txOvrIntEnable.SetBit(cfg.EnableOverrunInterrupt.Tx)
	c.rxOvrIntEnable.SetBit(cfg.EnableOverrunInterrupt.Rx)
	c.hsTestMode.SetBit(cfg.HSTestMode)
}

// Device is a UART instance's behavioral API over its register map.
type Device struct {
	regs *Registers

	data hal.Field[hal.Raw]

	txFull     hal.ROField[hal.Active]
	rxFull     hal.ROField[hal.Active]
	txOvr      hal.ROField[hal.Active]
	rxOvr      hal.ROField[hal.Active]
	txOvrReset hal.WOField[hal.Clear]
	rxOvrReset hal.WOField[hal.Clear]

	ctrl control

	txInt         hal.ROField[hal.Active]
	rxInt         hal.ROField[hal.Active]
	txOvrInt      hal.ROField[hal.Active]
	rxOvrInt      hal.ROField[hal.Active]
	txIntClear    hal.WOField[hal.Clear]
	rxIntClear    hal.WOField[hal.Clear]
	txOvrIntClear hal.WOField[hal.Clear]
	rxOvrIntClear hal.WOField[hal.Clear]

	baudDiv hal.Field[hal.Raw]
}

// New binds the driver to a UART instance at addr. The caller guarantees
// addr denotes a live UART.
func New(addr hal.Address) *Device {
	return Bind(hal.MapAt[Registers](addr))
}

// UART0 binds the driver to the first vendor UART.
func UART0() *Device { return New(hal.UART0Address) }

// UART1 binds the driver to the second vendor UART.
func UART1() *Device { return New(hal.UART1Address) }

// Bind binds the driver to an explicit register map, which may be
// simulated memory.
func Bind(regs *Registers) *Device {
	d := &Device{regs: regs}
	d.data = hal.NewField[hal.Raw](&regs.Data, 0, 8, hal.Packed, hal.Volatile)

	d.txFull = hal.Bit[hal.Active](&regs.State, 0, hal.MaskShift, hal.Volatile).RO()
	d.rxFull = hal.Bit[hal.Active](&regs.State, 1, hal.MaskShift, hal.Volatile).RO()
	d.txOvr = hal.Bit[hal.Active](&regs.State, 2, hal.MaskShift, hal.Volatile).RO()
	d.rxOvr = hal.Bit[hal.Active](&regs.State, 3, hal.MaskShift, hal.Volatile).RO()
	d.txOvrReset = hal.Bit[hal.Clear](&regs.State, 2, hal.StoreMask, hal.Volatile).WO()
	d.rxOvrReset = hal.Bit[hal.Clear](&regs.State, 3, hal.StoreMask, hal.Volatile).WO()

	d.ctrl = newControl(&regs.Ctrl, hal.Volatile)

	d.txInt = hal.Bit[hal.Active](&regs.Intr, 0, hal.MaskShift, hal.Volatile).RO()
	d.rxInt = hal.Bit[hal.Active](&regs.Intr, 1, hal.MaskShift, hal.Volatile).RO()
	d.txOvrInt = hal.Bit[hal.Active](&regs.Intr, 2, hal.MaskShift, hal.Volatile).RO()
	d.rxOvrInt = hal.Bit[hal.Active](&regs.Intr, 3, hal.MaskShift, hal.Volatile).RO()
	d.txIntClear = hal.Bit[hal.Clear](&regs.Intr, 0, hal.StoreMask, hal.Volatile).WO()
	d.rxIntClear = hal.Bit[hal.Clear](&regs.Intr, 1, hal.StoreMask, hal.Volatile).WO()
	d.txOvrIntClear = hal.Bit[hal.Clear](&regs.Intr, 2, hal.StoreMask, hal.Volatile).WO()
	d.rxOvrIntClear = hal.Bit[hal.Clear](&regs.Intr, 3, hal.StoreMask, hal.Volatile).WO()

	d.baudDiv = hal.NewField[hal.Raw](&regs.BaudDiv, 0, 20, hal.MaskShift, hal.Volatile)
	return d
}

// Configure fully resets the port and programs it from cfg. The new
// control word is composed off-line then committed with a single store,
// so the hardware never observes a half-programmed enable set. The baud
// divisor is the system clock frequency divided by the requested rate,
// truncating.
func (d *Device) Configure(cfg Config) error {
	if cfg.Clock == nil {
		return ErrNoClock
	}
	if cfg.BaudRate == 0 {
		return ErrZeroBaudRate
	}

	var staged hal.Reg
	c := newControl(&staged, hal.Staged)
	c.apply(cfg)

	d.regs.Data.Store(0)
	d.regs.State.Store(0)
	d.regs.Ctrl.Store(0)
	d.regs.Intr.Store(0)
	d.regs.BaudDiv.Store(0)

	d.regs.Ctrl.Store(hal.Raw(staged))
	d.baudDiv.Set(cfg.Clock.Frequency().Count() / cfg.BaudRate)
	return nil
}

func (d *Device) TxBufferFull() bool { return d.txFull.IsSet() }
func (d *Device) RxBufferFull() bool { return d.rxFull.IsSet() }

func (d *Device) TxBufferOverrun() bool { return d.txOvr.IsSet() }
func (d *Device) RxBufferOverrun() bool { return d.rxOvr.IsSet() }

// ResetTxBufferOverrun lowers the tx overrun flag; the bit is write 1
// to clear.
func (d *Device) ResetTxBufferOverrun() { d.txOvrReset.Set(hal.ClearBit) }

// ResetRxBufferOverrun lowers the rx overrun flag; the bit is write 1
// to clear.
func (d *Device) ResetRxBufferOverrun() { d.rxOvrReset.Set(hal.ClearBit) }

func (d *Device) TxInterruptEnabled() bool { return d.ctrl.txIntEnable.IsSet() }
func (d *Device) RxInterruptEnabled() bool { return d.ctrl.rxIntEnable.IsSet() }

func (d *Device) TxInterrupt() bool { return d.txInt.IsSet() }
func (d *Device) RxInterrupt() bool { return d.rxInt.IsSet() }

func (d *Device) TxOverrunInterrupt() bool { return d.txOvrInt.IsSet() }
func (d *Device) RxOverrunInterrupt() bool { return d.rxOvrInt.IsSet() }

func (d *Device) ClearTxInterrupt() { d.txIntClear.Set(hal.ClearBit) }
func (d *Device) ClearRxInterrupt() { d.rxIntClear.Set(hal.ClearBit) }

func (d *Device) ClearTxOverrunInterrupt() { d.txOvrIntClear.Set(hal.ClearBit) }
func (d *Device) ClearRxOverrunInterrupt() { d.rxOvrIntClear.Set(hal.ClearBit) }

// BaudDivisor returns the programmed divisor.
func (d *Device) BaudDivisor() hal.Raw { return d.baudDiv.Get() }

// Put writes one byte, spinning while the tx buffer is full. There is
// no timeout; if the port never drains, Put spins forever.
func (d *Device) Put(c byte) {
	for d.txFull.IsSet() {
	}
	d.data.Set(hal.Raw(c))
}

// Get reads one byte, spinning until the rx buffer holds data. There is
// no timeout.
func (d *Device) Get() byte {
	for !d.rxFull.IsSet() {
	}
	return byte(d.data.Get())
}

// WriteString writes s byte by byte.
func (d *Device) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		d.Put(s[i])
	}
}

// Write implements io.Writer. It never fails; the error is always nil.
func (d *Device) Write(p []byte) (int, error) {
	for _, c := range p {
		d.Put(c)
	}
	return len(p), nil
}

// Handle couples a device with the output formatting settings used by
// WriteNumber. The zero-ish defaults match power-on diagnostics output:
// binary, no minimum width, space fill.
type Handle struct {
	*Device

	base  NumberBase
	width uint8
	fill  byte
}

// NewHandle wraps dev with default formatting settings.
func NewHandle(dev *Device) *Handle {
	return &Handle{Device: dev, base: Bin, fill: ' '}
}

// WriteNumber writes v formatted with the handle's base, width and fill.
func (h *Handle) WriteNumber(v int64) {
	h.WriteString(formatInt(v, h.base, int(h.width), h.fill))
}

// SetOutputBase sets the number base and returns the previous one.
func (h *Handle) SetOutputBase(v NumberBase) NumberBase {
	old := h.base
	h.base = v
	return old
}

// OutputBase returns the current number base.
func (h *Handle) OutputBase() NumberBase { return h.base }

// SetOutputWidth sets the minimum output width and returns the previous
// one.
func (h *Handle) SetOutputWidth(v uint8) uint8 {
	old := h.width
	h.width = v
	return old
}

// OutputWidth returns the current minimum output width.
func (h *Handle) OutputWidth() uint8 { return h.width }

// SetOutputFill sets the fill character and returns the previous one.
func (h *Handle) SetOutputFill(v byte) byte {
	old := h.fill
	h.fill = v
	return old
}

// OutputFill returns the current fill character.
func (h *Handle) OutputFill() byte { return h.fill }
