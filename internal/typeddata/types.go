package typeddata

// DomainType is the reserved composite type carrying the domain separator.
// It is always hashed first and is the only struct present when a payload
// commits to the domain alone.
const DomainType = "EIP712Domain"

// Field is a single member of a composite type declaration. Type holds the
// literal declared type string, array brackets included.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Types maps a composite type name to its ordered field list. Field order is
// significant: struct hashes are computed over fields in declared order, not
// in the order a message happens to carry them.
type Types map[string][]Field

// Record is one instance of a composite type: field name to value. Values are
// scalars, nested Records (plain maps after JSON decoding), or slices of
// either for array-typed fields.
type Record map[string]interface{}

// TypedData is the full signable structure: type declarations, the primary
// type name, the domain record and the message record.
type TypedData struct {
	Types       Types  `json:"types"`
	PrimaryType string `json:"primaryType"`
	Domain      Record `json:"domain"`
	Message     Record `json:"message"`
}

// DomainFields is the standard EIP712Domain declaration used by the service
// endpoints. Callers embedding the library supply their own via Types.
var DomainFields = []Field{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}
