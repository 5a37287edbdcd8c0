package hal

// IRQ numbers an interrupt the Cortex-M way: peripheral interrupts are
// zero-based, core exceptions are negative.
type IRQ int32

// Core exception numbers.
const (
	NonMaskableInt   IRQ = -14
	HardFault        IRQ = -13
	MemoryManagement IRQ = -12
	BusFault         IRQ = -11
	UsageFault       IRQ = -10
	SVCall           IRQ = -5
	DebugMonitor     IRQ = -4
	PendSV           IRQ = -2
	SysTick          IRQ = -1
)

// IsCoreException reports whether the number denotes a core exception
// rather than a peripheral interrupt. Core exceptions keep their priority
// in the SCB, peripheral interrupts in the NVIC.
func (i IRQ) IsCoreException() bool { return i < 0 }

// PriorityGrouping selects the split of a priority byte into pre-emption
// and subpriority bits, written to the SCB AIRCR PRIGROUP field.
type PriorityGrouping Raw

const (
	Split7x1 PriorityGrouping = iota // 7 pre-emption bits, 1 subpriority bit
	Split6x2
	Split5x3
	Split4x4
	Split3x5
	Split2x6
	Split1x7
	Split0x8 // no pre-emption bits, 8 subpriority bits
)
