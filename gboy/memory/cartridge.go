package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/valerio/go-gboy/gboy/addr"
)

// ErrCartridgeTooShort is returned when the image does not even contain a full header.
var ErrCartridgeTooShort = errors.New("cartridge image shorter than its header")

// Cartridge holds an immutable ROM image and exposes its header fields.
type Cartridge struct {
	data        []byte
	fingerprint uint64
}

// NewCartridge initializes a new Cartridge from a slice of bytes.
// The data is copied, later changes to the slice do not affect the cartridge.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < int(addr.HeaderEnd) {
		return nil, fmt.Errorf("%w: %d bytes", ErrCartridgeTooShort, len(data))
	}

	cart := &Cartridge{
		data: make([]byte, len(data)),
	}
	copy(cart.data, data)
	cart.fingerprint = xxhash.Sum64(cart.data)

	return cart, nil
}

// Len returns the size of the ROM image in bytes.
func (c *Cartridge) Len() int {
	return len(c.data)
}

// Read reads a byte at the specified address. Does not check bounds, so the caller must make sure the
// address is valid for the cartridge.
func (c *Cartridge) Read(address uint16) uint8 {
	return c.data[address]
}

// Fingerprint is a 64 bit xxhash of the whole image, handy to tell dumps apart.
func (c *Cartridge) Fingerprint() uint64 {
	return c.fingerprint
}

// Title returns the game title, trailing padding removed.
func (c *Cartridge) Title() string {
	title := c.data[addr.TitleStart : addr.TitleEnd+1]
	return strings.TrimRight(string(title), "\x00 ")
}

// DestinationCode returns where the cartridge was meant to be sold.
func (c *Cartridge) DestinationCode() Destination {
	return Destination(c.data[addr.DestinationCode])
}

// LicenseeCode returns the (old) licensee code of the publisher.
func (c *Cartridge) LicenseeCode() Licensee {
	code := Licensee(c.data[addr.OldLicenseeCode])
	if _, ok := licenseeNames[code]; !ok {
		slog.Debug("Licensee code not defined", "code", fmt.Sprintf("0x%02X", uint8(code)))
	}
	return code
}

// Type returns the cartridge type, i.e. which memory bank controller it carries.
func (c *Cartridge) Type() Type {
	cartType := Type(c.data[addr.CartridgeType])
	if _, ok := typeNames[cartType]; !ok {
		slog.Debug("Cartridge type not defined", "type", fmt.Sprintf("0x%02X", uint8(cartType)))
	}
	return cartType
}

// HeaderChecksum is the checksum declared by the cartridge itself.
func (c *Cartridge) HeaderChecksum() uint8 {
	return c.data[addr.HeaderChecksum]
}

// CalculateHeaderChecksum recomputes the header checksum the same way the boot rom does:
// x = x - byte - 1 for every byte in 0x0134-0x014C, wrapping at 8 bits.
func (c *Cartridge) CalculateHeaderChecksum() uint8 {
	var x uint8
	for i := addr.TitleStart; i <= addr.VersionNumber; i++ {
		x = x - c.data[i] - 1
	}
	return x
}
