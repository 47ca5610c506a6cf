package addr

// cartridge header
const (
	// EntryPoint is where execution continues once the boot rom is done.
	EntryPoint uint16 = 0x0100
	// HeaderEnd bounds (exclusive) the header window copied during boot.
	HeaderEnd uint16 = 0x014F
	// TitleStart is the first byte of the game title.
	TitleStart uint16 = 0x0134
	// TitleEnd is the last byte of the game title.
	TitleEnd uint16 = 0x013D
	// CartridgeType identifies the memory bank controller, if any.
	CartridgeType uint16 = 0x0147
	// DestinationCode tells whether the cartridge was sold in Japan.
	DestinationCode uint16 = 0x014A
	// OldLicenseeCode identifies the publisher on older cartridges.
	OldLicenseeCode uint16 = 0x014B
	// VersionNumber is the last byte covered by the header checksum.
	VersionNumber uint16 = 0x014C
	// HeaderChecksum holds the checksum computed over 0x0134-0x014C.
	HeaderChecksum uint16 = 0x014D
)

// boot rom trap addresses. The DMG boot rom locks up at these addresses
// when the logo or the header checksum do not match.
const (
	LogoMismatchTrap     uint16 = 0x00E9
	ChecksumMismatchTrap uint16 = 0x00FA
)

// GameHaltTrap stops the game loop once reached.
// It is a placeholder until the rest of the hardware is emulated.
const GameHaltTrap uint16 = 0x0237

// gpu registers
const (
	// LCD Control register.
	LCDC uint16 = 0xFF40
	// LCDC Status register.
	STAT uint16 = 0xFF41
	// Scroll Y (SCY) register.
	SCY uint16 = 0xFF42
	// Scroll X (SCX) register.
	SCX uint16 = 0xFF43
	// LCDC Y-Coordinate (readonly) register.
	LY uint16 = 0xFF44
	// LY Compare register.
	LYC uint16 = 0xFF45
	// Window Y Position register.
	WY uint16 = 0xFF4A
	// Window X Position register.
	WX uint16 = 0xFF4B
)

// interrupts
const (
	// IF is the address for the Interrupt Flags register.
	IF uint16 = 0xFF0F
	// IE is the address for the Interrupt Enable register.
	IE uint16 = 0xFFFF
)

// IO is the base of the 0xFF00 page used by LDH and LD (C) instructions.
const IO uint16 = 0xFF00

// BootDisable unmaps the boot rom when written with a non zero value.
const BootDisable uint16 = 0xFF50

// InitialSP is the stack pointer left behind by the boot rom.
const InitialSP uint16 = 0xFFFE

// timers
const (
	// DIV is the divider register. Incremented 16384 times/s.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter register.
	TIMA uint16 = 0xFF05
	// TMA is the timer modulo register.
	TMA uint16 = 0xFF06
	// TAC is the timer control register.
	TAC uint16 = 0xFF07
)
