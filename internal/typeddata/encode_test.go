package typeddata

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func personMailTypes() Types {
	return Types{
		"Person": {{Name: "name", Type: "string"}, {Name: "wallet", Type: "address"}},
		"Mail":   {{Name: "from", Type: "Person"}, {Name: "to", Type: "Person"}},
	}
}

func TestTypeString(t *testing.T) {
	types := personMailTypes()
	rst, err := TypeString("Person", types)
	require.NoError(t, err)
	require.Equal(t, "Person(string name,address wallet)", rst)
	rst, err = TypeString("Mail", types)
	require.NoError(t, err)
	require.Equal(t, "Mail(Person from,Person to)Person(string name,address wallet)", rst)
}

func TestTypeStringLexicographicOrder(t *testing.T) {
	// Bat is discovered before Ant, but the canonical string must sort
	// dependencies by name after the primary type.
	types := Types{
		"Zoo": {{Name: "b", Type: "Bat"}, {Name: "a", Type: "Ant"}},
		"Bat": {{Name: "wings", Type: "bool"}},
		"Ant": {{Name: "legs", Type: "uint256"}},
	}
	rst, err := TypeString("Zoo", types)
	require.NoError(t, err)
	require.Equal(t, "Zoo(Bat b,Ant a)Ant(uint256 legs)Bat(bool wings)", rst)
}

func TestDependenciesFirstDiscoveryOrder(t *testing.T) {
	types := mailboxTypes()
	require.Equal(t, []string{"Mailbox", "Message"}, dependencies("Mailbox", types))
	// Array and other suffixes on the starting type resolve to the bare name.
	require.Equal(t, []string{"Mailbox", "Message"}, dependencies("Mailbox[]", types))
	require.Equal(t, []string{"Message"}, dependencies("Message[3]", types))
	// Undefined names are scalar leaves, not errors.
	require.Empty(t, dependencies("uint256", types))
}

func TestDependenciesCyclicGraph(t *testing.T) {
	types := Types{
		"A": {{Name: "b", Type: "B"}},
		"B": {{Name: "a", Type: "A"}},
	}
	require.Equal(t, []string{"A", "B"}, dependencies("A", types))
}

func TestTypeStringMissingDefinition(t *testing.T) {
	types := Types{
		"Order": {{Name: "item", Type: "Item"}},
		"Item":  {},
	}

	_, err := TypeString("Unknown", types)
	var missing *MissingTypeDefinitionError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "Unknown", missing.Type)

	_, err = TypeString("Order", types)
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "Item", missing.Type)
}

func TestHashStructPerson(t *testing.T) {
	types := personMailTypes()
	person := Record{
		"name":   "Cow",
		"wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826",
	}
	rst, err := HashStruct("Person", person, types)
	require.NoError(t, err)

	bytes32, _ := abi.NewType("bytes32", "", nil)
	addr, _ := abi.NewType("address", "", nil)
	args := abi.Arguments{{Type: bytes32}, {Type: bytes32}, {Type: addr}}
	typehash, err := TypeHash("Person", types)
	require.NoError(t, err)
	expected, err := args.Pack(typehash,
		crypto.Keccak256Hash([]byte("Cow")),
		common.HexToAddress("0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"))
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash(expected), rst)
}

func TestHashStructMissingFieldValue(t *testing.T) {
	types := personMailTypes()
	_, err := HashStruct("Person", Record{"name": "Cow"}, types)
	var missing *MissingFieldValueError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "wallet", missing.Field)
	require.Equal(t, "address", missing.Type)
}

func TestHashStructNilNestedRecord(t *testing.T) {
	types := personMailTypes()
	from := Record{
		"name":   "Cow",
		"wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826",
	}
	rst, err := HashStruct("Mail", Record{"from": from, "to": nil}, types)
	require.NoError(t, err)

	// An absent nested record is substituted with the zero word.
	fromHash, err := HashStruct("Person", from, types)
	require.NoError(t, err)
	typehash, err := TypeHash("Mail", types)
	require.NoError(t, err)
	bytes32, _ := abi.NewType("bytes32", "", nil)
	args := abi.Arguments{{Type: bytes32}, {Type: bytes32}, {Type: bytes32}}
	expected, err := args.Pack(typehash, fromHash, common.Hash{})
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash(expected), rst)
}

func TestHashStructIntegerStringCoercion(t *testing.T) {
	types := Types{"Txn": {{Name: "amount", Type: "uint256"}}}
	asString, err := HashStruct("Txn", Record{"amount": "1000000"}, types)
	require.NoError(t, err)
	asInt, err := HashStruct("Txn", Record{"amount": big.NewInt(1000000)}, types)
	require.NoError(t, err)
	require.Equal(t, asInt, asString)
}

func TestHashStructFieldValueChangesDigest(t *testing.T) {
	types := mailboxTypes()
	mailbox := mailboxRecord()
	original, err := HashStruct("Mailbox", mailbox, types)
	require.NoError(t, err)

	changed := mailboxRecord()
	changed["messages"].([]interface{})[0].(map[string]interface{})["subject"] = "Hello Mars"
	rst, err := HashStruct("Mailbox", changed, types)
	require.NoError(t, err)
	require.NotEqual(t, original, rst)
}

func TestArrayOrderSensitivity(t *testing.T) {
	types := mailboxTypes()
	mailbox := mailboxRecord()
	original, err := HashStruct("Mailbox", mailbox, types)
	require.NoError(t, err)

	swapped := mailboxRecord()
	msgs := swapped["messages"].([]interface{})
	msgs[0], msgs[1] = msgs[1], msgs[0]
	rst, err := HashStruct("Mailbox", swapped, types)
	require.NoError(t, err)
	require.NotEqual(t, original, rst)
}

func TestScalarArrayHashing(t *testing.T) {
	types := Types{"Batch": {{Name: "ids", Type: "uint256[]"}}}
	first, err := HashStruct("Batch", Record{"ids": []interface{}{float64(1), float64(2)}}, types)
	require.NoError(t, err)
	reversed, err := HashStruct("Batch", Record{"ids": []interface{}{float64(2), float64(1)}}, types)
	require.NoError(t, err)
	require.NotEqual(t, first, reversed)

	empty, err := HashStruct("Batch", Record{"ids": []interface{}{}}, types)
	require.NoError(t, err)
	require.NotEqual(t, first, empty)
}

func TestHashStructFixedBytes(t *testing.T) {
	types := Types{"Blob": {{Name: "id", Type: "bytes8"}, {Name: "payload", Type: "bytes"}}}
	rst, err := HashStruct("Blob", Record{
		"id":      "0x0102030405060708",
		"payload": "0xdeadbeef",
	}, types)
	require.NoError(t, err)
	require.NotEqual(t, common.Hash{}, rst)
}
