package typeddata

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	bytes32Type, _ = abi.NewType("bytes32", "", nil)
	int256Type, _  = abi.NewType("int256", "", nil)
	uint256Type, _ = abi.NewType("uint256", "", nil)
	addressType, _ = abi.NewType("address", "", nil)
	boolType, _    = abi.NewType("bool", "", nil)
)

// TypeString builds the canonical type signature: the target's own encoding
// first, then every transitive dependency sorted lexicographically by name.
// The sort order feeds the type hash and must not change.
func TypeString(target string, types Types) (string, error) {
	deps := dependencies(target, types)
	if len(deps) == 0 {
		return "", &MissingTypeDefinitionError{Type: stripType(target)}
	}
	sort.Strings(deps[1:])

	b := new(bytes.Buffer)
	for _, dep := range deps {
		fields := types[dep]
		if len(fields) == 0 {
			return "", &MissingTypeDefinitionError{Type: dep}
		}
		b.WriteString(dep)
		b.WriteString("(")
		for i, f := range fields {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(f.Type)
			b.WriteString(" ")
			b.WriteString(f.Name)
		}
		b.WriteString(")")
	}
	return b.String(), nil
}

// TypeHash is the keccak256 of the canonical type signature.
func TypeHash(target string, types Types) (common.Hash, error) {
	s, err := TypeString(target, types)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash([]byte(s)), nil
}

// HashStruct encodes one record against the target type's field list and
// returns its 32-byte struct hash: keccak256 over the ABI packing of the type
// hash word followed by one word per field, in declared field order.
func HashStruct(target string, data Record, types Types) (common.Hash, error) {
	typeh, err := TypeHash(target, types)
	if err != nil {
		return common.Hash{}, err
	}

	args := abi.Arguments{{Type: bytes32Type}}
	vals := []interface{}{typeh}
	for _, f := range types[target] {
		typ, val, err := encodeField(f.Name, f.Type, data[f.Name], types)
		if err != nil {
			return common.Hash{}, err
		}
		args = append(args, abi.Argument{Name: f.Name, Type: typ})
		vals = append(vals, val)
	}

	packed, err := args.Pack(vals...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack %s: %w", target, err)
	}
	return crypto.Keccak256Hash(packed), nil
}

// encodeField reduces one field value to the (abi type, value) pair fed to
// the packer. Nested structs, strings, bytes and arrays all reduce to a
// single bytes32 word; plain scalars pass through to the matching ABI type.
func encodeField(name, typ string, value interface{}, types Types) (abi.Type, interface{}, error) {
	if _, composite := types[typ]; composite {
		// An unset nested record hashes to the zero word rather than
		// failing, mirroring absent-optional-struct semantics.
		if value == nil {
			return bytes32Type, common.Hash{}, nil
		}
		rec, err := toRecord(value)
		if err != nil {
			return abi.Type{}, nil, fmt.Errorf("field %s: %w", name, err)
		}
		h, err := HashStruct(typ, rec, types)
		if err != nil {
			return abi.Type{}, nil, err
		}
		return bytes32Type, h, nil
	}

	if value == nil {
		return abi.Type{}, nil, &MissingFieldValueError{Field: name, Type: typ}
	}

	switch {
	case typ == "bytes":
		raw, err := toBytes(value)
		if err != nil {
			return abi.Type{}, nil, fmt.Errorf("field %s: %w", name, err)
		}
		return bytes32Type, crypto.Keccak256Hash(raw), nil

	case typ == "string":
		str, ok := value.(string)
		if !ok {
			return abi.Type{}, nil, fmt.Errorf("field %s: expected string, got %T", name, value)
		}
		return bytes32Type, crypto.Keccak256Hash([]byte(str)), nil

	case strings.HasSuffix(typ, "]"):
		return encodeArray(name, typ, value, types)
	}

	return encodeScalar(name, typ, value)
}

// encodeArray hashes an array-typed field down to one word: every element is
// encoded individually, the element words are ABI-packed in order, and the
// packing is keccak-hashed. Element order therefore changes the result.
func encodeArray(name, typ string, value interface{}, types Types) (abi.Type, interface{}, error) {
	elemType := typ[:strings.Index(typ, "[")]
	elems, ok := value.([]interface{})
	if !ok {
		return abi.Type{}, nil, fmt.Errorf("field %s: expected array for type %s, got %T", name, typ, value)
	}

	args := abi.Arguments{}
	vals := []interface{}{}
	for _, elem := range elems {
		et, ev, err := encodeField(name, elemType, elem, types)
		if err != nil {
			return abi.Type{}, nil, err
		}
		args = append(args, abi.Argument{Type: et})
		vals = append(vals, ev)
	}

	packed, err := args.Pack(vals...)
	if err != nil {
		return abi.Type{}, nil, fmt.Errorf("failed to pack array field %s: %w", name, err)
	}
	return bytes32Type, crypto.Keccak256Hash(packed), nil
}

func encodeScalar(name, typ string, value interface{}) (abi.Type, interface{}, error) {
	abiType, err := abi.NewType(typ, "", nil)
	if err != nil {
		return abi.Type{}, nil, fmt.Errorf("field %s has unsupported type %s: %w", name, typ, err)
	}

	switch abiType.T {
	case abi.IntTy, abi.UintTy:
		n, err := toBigInt(value)
		if err != nil {
			return abi.Type{}, nil, fmt.Errorf("field %s: %w", name, err)
		}
		// Every integer width packs through the 256-bit path: the
		// 32-byte big-endian word is identical for in-range values.
		if abiType.T == abi.UintTy {
			return uint256Type, n, nil
		}
		return int256Type, n, nil

	case abi.AddressTy:
		switch v := value.(type) {
		case string:
			return addressType, common.HexToAddress(v), nil
		case common.Address:
			return addressType, v, nil
		default:
			return abi.Type{}, nil, fmt.Errorf("field %s: expected address, got %T", name, value)
		}

	case abi.BoolTy:
		b, ok := value.(bool)
		if !ok {
			return abi.Type{}, nil, fmt.Errorf("field %s: expected bool, got %T", name, value)
		}
		return boolType, b, nil

	case abi.FixedBytesTy:
		word, err := toFixedBytes(value, abiType.Size)
		if err != nil {
			return abi.Type{}, nil, fmt.Errorf("field %s: %w", name, err)
		}
		return bytes32Type, word, nil
	}

	return abi.Type{}, nil, fmt.Errorf("field %s has unsupported type %s", name, typ)
}

func toRecord(value interface{}) (Record, error) {
	switch v := value.(type) {
	case Record:
		return v, nil
	case map[string]interface{}:
		return Record(v), nil
	default:
		return nil, fmt.Errorf("expected nested record, got %T", value)
	}
}

// toBigInt accepts the integer shapes that survive JSON decoding plus native
// Go integers. Numeric strings are converted, decimal or 0x-prefixed hex.
func toBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case big.Int:
		return &v, nil
	case float64:
		return big.NewInt(int64(v)), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		n := new(big.Int)
		var ok bool
		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			_, ok = n.SetString(v[2:], 16)
		} else {
			_, ok = n.SetString(v, 10)
		}
		if !ok {
			return nil, fmt.Errorf("invalid integer value: %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
}

func toBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return hex.DecodeString(strings.TrimPrefix(v, "0x"))
	default:
		return nil, fmt.Errorf("expected bytes, got %T", value)
	}
}

// toFixedBytes coerces a bytesN value into a right-padded 32-byte word,
// truncated to the advertised width.
func toFixedBytes(value interface{}, size int) ([32]byte, error) {
	var word [32]byte
	raw, err := toBytes(value)
	if err != nil {
		return word, err
	}
	if len(raw) > size {
		raw = raw[:size]
	}
	copy(word[:], raw)
	return word, nil
}
