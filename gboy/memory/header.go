package memory

// Destination is the destination code stored at 0x014A.
type Destination uint8

const (
	DestinationJapanese    Destination = 0x00
	DestinationNonJapanese Destination = 0x01
)

func (d Destination) String() string {
	switch d {
	case DestinationJapanese:
		return "Japanese"
	case DestinationNonJapanese:
		return "Non-Japanese"
	default:
		return "Not defined"
	}
}

// Licensee is the old licensee code stored at 0x014B.
type Licensee uint8

const (
	LicenseeNone        Licensee = 0x00
	LicenseeNintendoRD1 Licensee = 0x01
)

var licenseeNames = map[Licensee]string{
	LicenseeNone:        "None",
	LicenseeNintendoRD1: "Nintendo R&D1",
}

func (l Licensee) String() string {
	if name, ok := licenseeNames[l]; ok {
		return name
	}
	return "Not defined"
}

// Type is the cartridge type stored at 0x0147.
// Only ROM only cartridges are supported, everything else is reported as not defined.
type Type uint8

const (
	TypeROMOnly Type = 0x00
)

var typeNames = map[Type]string{
	TypeROMOnly: "Rom Only",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Not defined"
}
