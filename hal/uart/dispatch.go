package uart

import "errors"

// DeviceCount is the number of UART instances the vendor wires up, and
// therefore the dispatch table capacity.
const DeviceCount = 2

// ErrRegistryFull is returned by the handler setters when the dispatch
// table already serves DeviceCount other devices.
var ErrRegistryFull = errors.New("uart: dispatch registry full")

type TxCallback func(*Handle)
type RxCallback func(*Handle, byte)
type OverrunCallback func(*Handle)

type callbacks struct {
	regs  *Registers
	tx    TxCallback
	rx    RxCallback
	txOvr OverrunCallback
	rxOvr OverrunCallback
}

// Dispatcher routes UART interrupts to registered callbacks. Slots are
// claimed by the first registration or dispatch for a device and are
// never released. Construct one per system and pass it to the interrupt
// entry points.
type Dispatcher struct {
	entries [DeviceCount]callbacks
}

func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// claim finds the slot already serving dev's register block, or takes
// the first free one. Identity is the peripheral, not the binding: two
// Devices over the same Registers share a slot.
func (p *Dispatcher) claim(dev *Device) (*callbacks, error) {
	for i := range p.entries {
		e := &p.entries[i]
		if e.regs == dev.regs {
			return e, nil
		}
		if e.regs == nil {
			e.regs = dev.regs
			return e, nil
		}
	}
	return nil, ErrRegistryFull
}

// SetTxHandler registers cb for dev's ready-to-transmit interrupt.
func (p *Dispatcher) SetTxHandler(dev *Device, cb TxCallback) error {
	e, err := p.claim(dev)
	if err != nil {
		return err
	}
	e.tx = cb
	return nil
}

// SetRxHandler registers cb for dev's data-received interrupt.
func (p *Dispatcher) SetRxHandler(dev *Device, cb RxCallback) error {
	e, err := p.claim(dev)
	if err != nil {
		return err
	}
	e.rx = cb
	return nil
}

// SetTxOverrunHandler registers cb for dev's transmit overrun.
func (p *Dispatcher) SetTxOverrunHandler(dev *Device, cb OverrunCallback) error {
	e, err := p.claim(dev)
	if err != nil {
		return err
	}
	e.txOvr = cb
	return nil
}

// SetRxOverrunHandler registers cb for dev's receive overrun.
func (p *Dispatcher) SetRxOverrunHandler(dev *Device, cb OverrunCallback) error {
	e, err := p.claim(dev)
	if err != nil {
		return err
	}
	e.rxOvr = cb
	return nil
}

// ProcessInterrupt serves one pending tx/rx interrupt for dev. Receive
// wins when both are pending: the rx flag is cleared and the rx
// callback gets the data byte, the tx side stays untouched. At most one
// callback runs per call. Runs in interrupt context.
func (p *Dispatcher) ProcessInterrupt(dev *Device) {
	e, err := p.claim(dev)
	if err != nil {
		// A device that never fit in the table cannot have callbacks.
		return
	}
	h := NewHandle(dev)
	switch {
	case dev.RxInterrupt() && e.rx != nil:
		dev.ClearRxInterrupt()
		e.rx(h, byte(dev.data.Get()))
	case dev.TxInterrupt() && e.tx != nil:
		dev.ClearTxInterrupt()
		e.tx(h)
	}
}

// ProcessOverrunInterrupt serves one pending overrun for dev, transmit
// side first. Clearing the overrun flag is left to the callback. Runs
// in interrupt context.
func (p *Dispatcher) ProcessOverrunInterrupt(dev *Device) {
	e, err := p.claim(dev)
	if err != nil {
		return
	}
	h := NewHandle(dev)
	switch {
	case dev.TxBufferOverrun() && e.txOvr != nil:
		e.txOvr(h)
	case dev.RxBufferOverrun() && e.rxOvr != nil:
		e.rxOvr(h)
	}
}

// InterruptHandler returns the interrupt entry point for dev's tx/rx
// line, suitable for installing in the vector table.
func (p *Dispatcher) InterruptHandler(dev *Device) func() {
	return func() { p.ProcessInterrupt(dev) }
}

// OverrunHandler returns the entry point for the overrun line shared by
// devs, polling each in turn.
func (p *Dispatcher) OverrunHandler(devs ...*Device) func() {
	return func() {
		for _, d := range devs {
			p.ProcessOverrunInterrupt(d)
		}
	}
}
