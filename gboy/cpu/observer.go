package cpu

// Observer receives the progress of the emulation, e.g. to render a debugger.
// Events are plain values, an observer never sees the live CPU state.
type Observer interface {
	// Initialize is called once, after the cartridge title has been sent.
	Initialize()
	// Tick is called at the start of every loop iteration.
	Tick()
	// Quit is called once the game loop is over.
	Quit()
	Message(e Event)
}

// Event is one of CartridgeTitle, RegisterSnapshot, DisplaySnapshot or InstructionDecoded.
type Event interface {
	event()
}

// CartridgeTitle carries the title read from the cartridge header.
type CartridgeTitle struct {
	Title string
}

// RegisterSnapshot is a copy of the register file.
type RegisterSnapshot struct {
	A, B, C, D, E, G, H, L uint8

	F  Flags
	PC uint16
	SP uint16
}

// DisplaySnapshot is a copy of the memory mapped display registers.
type DisplaySnapshot struct {
	STAT, SCY, SCX, WY, WX, LY, LYC uint8
}

// InstructionDecoded is sent right before an instruction is executed.
type InstructionDecoded struct {
	Address     uint16
	Instruction Instruction
}

func (CartridgeTitle) event()     {}
func (RegisterSnapshot) event()   {}
func (DisplaySnapshot) event()    {}
func (InstructionDecoded) event() {}

// NopObserver ignores everything, it is used when running headless.
type NopObserver struct{}

func (NopObserver) Initialize()   {}
func (NopObserver) Tick()         {}
func (NopObserver) Quit()         {}
func (NopObserver) Message(Event) {}
