// Package borsh serializes instruction data payloads in the Borsh binary
// format used by on-chain programs. It wraps github.com/near/borsh-go so
// callers stay on this module's error conventions and do not import the
// codec directly.
package borsh

import (
	"fmt"

	nearborsh "github.com/near/borsh-go"
)

// Marshal encodes v in Borsh format. Structs encode field by field in
// declaration order; integers are little-endian; slices and strings carry
// a u32 length prefix.
func Marshal(v interface{}) ([]byte, error) {
	data, err := nearborsh.Serialize(v)
	if err != nil {
		return nil, fmt.Errorf("borsh: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes Borsh-encoded data into the value pointed to by v.
func Unmarshal(data []byte, v interface{}) error {
	if err := nearborsh.Deserialize(v, data); err != nil {
		return fmt.Errorf("borsh: unmarshal into %T: %w", v, err)
	}
	return nil
}

// MustMarshal encodes v or panics. It is intended for instruction payloads
// built from static program layouts, where an encoding failure is a bug.
func MustMarshal(v interface{}) []byte {
	data, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
