// Package events defines the ledger's notifications: one per observable
// state change, published only after the owning operation has committed.
package events

// Event is a notification of a committed state change.
type Event interface {
	// Stream names the notification stream this event belongs to.
	Stream() string

	// TokenID returns the token this event concerns, or 0 for events
	// that are not token-scoped.
	TokenID() uint64
}

// Stream names.
const (
	StreamPrepared    = "prepared"
	StreamMinted      = "minted"
	StreamRoyaltySet  = "royalty_set"
	StreamBasePathSet = "base_path_set"
)

// Prepared is emitted when a token descriptor is registered.
type Prepared struct {
	Type       string `json:"type"`
	ID         uint64 `json:"token_id"`
	Creator    string `json:"creator"`
	Descriptor string `json:"descriptor"`
}

// NewPrepared creates a Prepared notification.
func NewPrepared(id uint64, creator, descriptor string) *Prepared {
	return &Prepared{
		Type:       StreamPrepared,
		ID:         id,
		Creator:    creator,
		Descriptor: descriptor,
	}
}

func (e *Prepared) Stream() string  { return StreamPrepared }
func (e *Prepared) TokenID() uint64 { return e.ID }

// Minted is emitted exactly once per token, on its first transfer.
type Minted struct {
	Type  string `json:"type"`
	ID    uint64 `json:"token_id"`
	Owner string `json:"owner"`
}

// NewMinted creates a Minted notification.
func NewMinted(id uint64, owner string) *Minted {
	return &Minted{Type: StreamMinted, ID: id, Owner: owner}
}

func (e *Minted) Stream() string  { return StreamMinted }
func (e *Minted) TokenID() uint64 { return e.ID }

// RoyaltySet is emitted when a creator records a royalty term.
type RoyaltySet struct {
	Type      string `json:"type"`
	ID        uint64 `json:"token_id"`
	Recipient string `json:"recipient"`
	Bps       uint16 `json:"bps"`
}

// NewRoyaltySet creates a RoyaltySet notification.
func NewRoyaltySet(id uint64, recipient string, bps uint16) *RoyaltySet {
	return &RoyaltySet{Type: StreamRoyaltySet, ID: id, Recipient: recipient, Bps: bps}
}

func (e *RoyaltySet) Stream() string  { return StreamRoyaltySet }
func (e *RoyaltySet) TokenID() uint64 { return e.ID }

// BasePathSet is emitted when the admin updates descriptor resolution.
type BasePathSet struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// NewBasePathSet creates a BasePathSet notification.
func NewBasePathSet(path string) *BasePathSet {
	return &BasePathSet{Type: StreamBasePathSet, Path: path}
}

func (e *BasePathSet) Stream() string  { return StreamBasePathSet }
func (e *BasePathSet) TokenID() uint64 { return 0 }
