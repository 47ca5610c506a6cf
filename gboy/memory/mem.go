package memory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-gboy/gboy/addr"
	"github.com/valerio/go-gboy/gboy/bit"
)

// Size is the size of the flat backing array. Address 0xFFFF is not part of it,
// it is backed by the interrupt enable cell instead.
const Size = 0xFFFF

// ErrBootROMTooLarge is returned when a boot image does not fit in memory.
var ErrBootROMTooLarge = errors.New("boot rom does not fit in memory")

// MMU allows access to the whole address space and owns the cartridge.
type MMU struct {
	cart   *Cartridge
	memory [Size]byte

	// interrupt enable register, aliased at 0xFFFF
	ie byte
}

// New creates a memory unit wrapping the given cartridge.
// Nothing is copied to memory until LoadHeader or LoadROM are called.
func New(cart *Cartridge) *MMU {
	return &MMU{
		cart: cart,
	}
}

// Cartridge returns the cartridge owned by this memory unit.
func (m *MMU) Cartridge() *Cartridge {
	return m.cart
}

func (m *MMU) Read(address uint16) byte {
	switch address {
	case addr.IE:
		return m.ie
	default:
		return m.memory[address]
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch address {
	case addr.IE:
		m.ie = value
	default:
		m.memory[address] = value
	}
}

func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, m.Read(address))
}

// LoadHeader copies the cartridge header window (0x0000-0x014E) to the same addresses in memory.
func (m *MMU) LoadHeader() {
	copy(m.memory[:addr.HeaderEnd], m.cart.data[:addr.HeaderEnd])
}

// LoadROM copies the whole cartridge to memory, starting at 0x0000.
// This overlays whatever the boot rom left behind. Images larger than the address
// space are truncated, bank switching is not supported.
func (m *MMU) LoadROM() {
	n := copy(m.memory[:], m.cart.data)
	if n < m.cart.Len() {
		slog.Warn("Cartridge larger than address space, truncated", "size", m.cart.Len(), "loaded", n)
	}
}

// LoadBootROM copies a boot rom image to memory, starting at 0x0000.
func (m *MMU) LoadBootROM(image []byte) error {
	if len(image) > Size {
		return fmt.Errorf("%w: %d bytes", ErrBootROMTooLarge, len(image))
	}

	copy(m.memory[:], image)
	return nil
}
