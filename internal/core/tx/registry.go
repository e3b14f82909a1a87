package tx

import (
	"encoding/json"
	"errors"
)

// ErrUnknownOperationType is returned when an operation type is unknown.
var ErrUnknownOperationType = errors.New("unknown operation type")

// factories maps operation types to constructors. Populated by the
// operation packages' init functions via Register.
var factories = map[Type]func() Operation{}

// Register installs a constructor for an operation type. Called from the
// init function of the package defining the operation.
func Register(t Type, factory func() Operation) {
	factories[t] = factory
}

// NewFromType creates a new empty operation of the given type.
func NewFromType(t Type) (Operation, error) {
	factory, ok := factories[t]
	if !ok {
		return nil, ErrUnknownOperationType
	}
	return factory(), nil
}

// FromJSON creates an Operation from a JSON object. The OperationType
// field selects the concrete type.
func FromJSON(data []byte) (Operation, error) {
	var raw struct {
		OperationType string `json:"OperationType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	opType, ok := TypeFromName(raw.OperationType)
	if !ok {
		return nil, ErrUnknownOperationType
	}

	op, err := NewFromType(opType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, op); err != nil {
		return nil, err
	}

	return op, nil
}
