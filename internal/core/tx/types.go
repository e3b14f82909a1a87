package tx

// Type identifies an operation type.
type Type uint16

const (
	// TypePrepare registers a token descriptor without minting.
	TypePrepare Type = 1

	// TypeTransfer moves a token between identities, minting it on the
	// way through if this is its first transfer.
	TypeTransfer Type = 2

	// TypeRoyaltySet records a token's royalty term.
	TypeRoyaltySet Type = 3

	// TypeBasePathSet updates the base descriptor path (admin only).
	TypeBasePathSet Type = 4
)

var typeNames = map[Type]string{
	TypePrepare:     "Prepare",
	TypeTransfer:    "Transfer",
	TypeRoyaltySet:  "RoyaltySet",
	TypeBasePathSet: "BasePathSet",
}

var namesToType = map[string]Type{}

func init() {
	for t, name := range typeNames {
		namesToType[name] = t
	}
}

// String returns the operation type name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TypeFromName resolves an operation type from its name.
func TypeFromName(name string) (Type, bool) {
	t, ok := namesToType[name]
	return t, ok
}
