package hal

// Platform peripheral addresses. The core peripherals (NVIC, SCB,
// SysTick) have fixed, core-defined addresses declared in their driver
// packages; the APB peripherals below are board specific.
const (
	APB1PeriphBase Address = 0x40000000
	APB2PeriphBase Address = APB1PeriphBase + 0x02000

	Timer0Address Address = APB1PeriphBase + 0x0000
	Timer1Address Address = APB1PeriphBase + 0x1000
	UART0Address  Address = APB1PeriphBase + 0x4000
	UART1Address  Address = APB1PeriphBase + 0x5000
	RTCAddress    Address = APB1PeriphBase + 0x6000
)
