package uart

import (
	"errors"
	"testing"

	"github.com/zmij/armpp/freq"
	"github.com/zmij/armpp/system"
)

func testClock(t *testing.T, f freq.Hertz) *system.Clock {
	t.Helper()
	clk, err := system.NewClock(f)
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	return clk
}

func TestConfigure(t *testing.T) {
	var regs Registers
	regs.Ctrl.Store(0xFFFF_FFFF) // stale programming to wipe
	regs.BaudDiv.Store(0xFFFF_FFFF)
	d := Bind(&regs)

	err := d.Configure(Config{
		Enable:                 TxRx{Tx: true, Rx: true},
		EnableInterrupt:        TxRx{Rx: true},
		EnableOverrunInterrupt: TxRx{Tx: true, Rx: true},
		BaudRate:               9600,
		Clock:                  testClock(t, freq.MHz(54)),
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	want := uint32(1<<0 | 1<<1 | 1<<3 | 1<<4 | 1<<5)
	if got := regs.Ctrl.Load(); got != want {
		t.Errorf("CTRL = %#x, want %#x", got, want)
	}
	if got := d.BaudDivisor(); got != 5625 {
		t.Errorf("BaudDivisor() = %d, want 54000000/9600 = 5625", got)
	}
	if got := regs.State.Load(); got != 0 {
		t.Errorf("STATE = %#x, want 0", got)
	}
	if got := regs.Intr.Load(); got != 0 {
		t.Errorf("INTSTATUS = %#x, want 0", got)
	}
}

func TestConfigureTruncatesDivisor(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	err := d.Configure(Config{
		Enable:   TxRx{Tx: true},
		BaudRate: 115200,
		Clock:    testClock(t, freq.MHz(54)),
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	// 54000000/115200 = 468.75, truncated.
	if got := d.BaudDivisor(); got != 468 {
		t.Errorf("BaudDivisor() = %d, want 468", got)
	}
}

func TestConfigureErrors(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	if err := d.Configure(Config{BaudRate: 9600}); !errors.Is(err, ErrNoClock) {
		t.Errorf("Configure without clock: %v, want ErrNoClock", err)
	}
	err := d.Configure(Config{Clock: testClock(t, freq.MHz(54))})
	if !errors.Is(err, ErrZeroBaudRate) {
		t.Errorf("Configure with zero baud: %v, want ErrZeroBaudRate", err)
	}
}

func TestPut(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	d.Put('A')
	if got := regs.Data.Load(); got != 'A' {
		t.Errorf("DATA = %#x, want 'A'", got)
	}
}

func TestPutWaitsForTxBuffer(t *testing.T) {
	var regs Registers
	regs.State.Store(1 << 0) // tx buffer full
	d := Bind(&regs)

	// Stand in for the draining hardware.
	go regs.State.Store(0)

	d.Put('B')
	if got := regs.Data.Load(); got != 'B' {
		t.Errorf("DATA = %#x, want 'B'", got)
	}
}

func TestGet(t *testing.T) {
	var regs Registers
	regs.State.Store(1 << 1) // rx buffer full
	regs.Data.Store('Z')
	d := Bind(&regs)

	if got := d.Get(); got != 'Z' {
		t.Errorf("Get() = %#x, want 'Z'", got)
	}
}

func TestWriteString(t *testing.T) {
	var regs Registers
	d := Bind(&regs)

	d.WriteString("ok")
	// One-deep hardware buffer: the last byte written remains visible.
	if got := regs.Data.Load(); got != 'k' {
		t.Errorf("DATA = %#x, want 'k'", got)
	}

	n, err := d.Write([]byte("!"))
	if n != 1 || err != nil {
		t.Errorf("Write = (%d, %v), want (1, nil)", n, err)
	}
	if got := regs.Data.Load(); got != '!' {
		t.Errorf("DATA = %#x, want '!'", got)
	}
}

func TestOverrunFlags(t *testing.T) {
	var regs Registers
	regs.State.Store(1<<2 | 1<<3)
	d := Bind(&regs)

	if !d.TxBufferOverrun() || !d.RxBufferOverrun() {
		t.Fatal("overrun flags not visible")
	}
	d.ResetTxBufferOverrun()
	// Write 1 to clear: the store carries exactly the tx overrun bit.
	if got := regs.State.Load(); got != 1<<2 {
		t.Errorf("STATE = %#x, want %#x", got, 1<<2)
	}
}

func TestHandleOutputSettings(t *testing.T) {
	h := NewHandle(Bind(new(Registers)))

	if got := h.SetOutputBase(Hex); got != Bin {
		t.Errorf("previous base = %d, want Bin", got)
	}
	if got := h.OutputBase(); got != Hex {
		t.Errorf("OutputBase() = %d, want Hex", got)
	}
	if got := h.SetOutputWidth(8); got != 0 {
		t.Errorf("previous width = %d, want 0", got)
	}
	if got := h.SetOutputFill('0'); got != ' ' {
		t.Errorf("previous fill = %q, want space", got)
	}
}

func TestWriteNumber(t *testing.T) {
	var regs Registers
	h := NewHandle(Bind(&regs))

	h.SetOutputBase(Hex)
	h.SetOutputWidth(4)
	h.SetOutputFill('0')
	h.WriteNumber(0x2A)
	// The port sees "002a" byte by byte; the last byte remains.
	if got := regs.Data.Load(); got != 'a' {
		t.Errorf("DATA = %#x, want 'a'", got)
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		name  string
		v     int64
		base  NumberBase
		width int
		fill  byte
		want  string
	}{
		{"dec", 1234, Dec, 0, ' ', "1234"},
		{"decNegative", -42, Dec, 0, ' ', "-42"},
		{"decPadded", 7, Dec, 3, ' ', "  7"},
		{"hex", 0x2A, Hex, 0, ' ', "2a"},
		{"hexZeroFilled", 0x2A, Hex, 4, '0', "002a"},
		{"oct", 8, Oct, 0, ' ', "10"},
		{"bin", 5, Bin, 0, ' ', "101"},
		{"binPadded", 5, Bin, 8, '0', "00000101"},
		{"widthBelowValue", 1234, Dec, 2, ' ', "1234"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatInt(tc.v, tc.base, tc.width, tc.fill); got != tc.want {
				t.Errorf("formatInt(%d, %d, %d, %q) = %q, want %q",
					tc.v, tc.base, tc.width, tc.fill, got, tc.want)
			}
		})
	}
}
