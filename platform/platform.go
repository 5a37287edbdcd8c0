// Package platform carries the vendor documented address map, embedded
// at build time, for tooling that cross checks the compiled register
// maps against it.
package platform

import (
	_ "embed"
	"errors"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed peripherals.yaml
var rawPeripherals []byte
var peripherals Peripherals

var (
	ErrUnknownPeripheral = errors.New("platform: unknown peripheral")
	ErrUnknownRegister   = errors.New("platform: unknown register")
)

// Register is one documented register or register bank.
type Register struct {
	Name    string `yaml:"name"`
	Address uint32 `yaml:"address"`
	Bits    uint   `yaml:"bits,omitempty"` // 0 means one 32-bit word
}

// Peripheral is one documented peripheral address map.
type Peripheral struct {
	Name      string     `yaml:"name"`
	Base      uint32     `yaml:"base"`
	Size      uint32     `yaml:"size"`
	Registers []Register `yaml:"registers"`
}

type Peripherals []Peripheral

// All returns every documented peripheral.
func All() Peripherals { return peripherals }

// FindByName looks a peripheral up by its documented name, case
// insensitive.
func (p Peripherals) FindByName(name string) (Peripheral, error) {
	i := slices.IndexFunc(p, func(e Peripheral) bool {
		return strings.EqualFold(e.Name, name)
	})
	if i < 0 {
		return Peripheral{}, ErrUnknownPeripheral
	}
	return p[i], nil
}

// FindRegister looks a register up by its documented name, case
// insensitive.
func (p Peripheral) FindRegister(name string) (Register, error) {
	i := slices.IndexFunc(p.Registers, func(e Register) bool {
		return strings.EqualFold(e.Name, name)
	})
	if i < 0 {
		return Register{}, ErrUnknownRegister
	}
	return p.Registers[i], nil
}

func init() {
	var doc struct {
		Elements []Peripheral `yaml:"peripherals"`
	}
	if err := yaml.Unmarshal(rawPeripherals, &doc); err != nil {
		panic(err)
	}
	peripherals = doc.Elements
}
