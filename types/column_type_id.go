package types

// TypeID names the scalar kind a Value or Column holds.
type TypeID int

const (
	Invalid TypeID = iota
	Boolean
	Tinyint
	Smallint
	Integer
	BigInt
	Decimal
	Float
	Varchar
	Timestamp
)

// Size returns the fixed-width storage size of t, excluding the leading
// NULL-flag byte that Value.Serialize always prepends. Varchar has no
// fixed size; callers needing an on-tuple size must use Value.Size.
func (t TypeID) Size() uint32 {
	switch t {
	case Boolean, Tinyint:
		return 1
	case Smallint:
		return 2
	case Integer, Float:
		return 4
	case BigInt, Decimal, Timestamp:
		return 8
	}
	return 0
}
