// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Value is a typed, possibly-NULL scalar read from or written to a tuple.
type Value struct {
	valueType TypeID
	isNull    bool
	integer   *int32
	boolean   *bool
	varchar   *string
	float     *float32
}

func NewInteger(value int32) Value {
	return Value{Integer, false, &value, nil, nil, nil}
}

func NewFloat(value float32) Value {
	return Value{Float, false, nil, nil, nil, &value}
}

func NewBoolean(value bool) Value {
	return Value{Boolean, false, nil, &value, nil, nil}
}

func NewVarchar(value string) Value {
	return Value{Varchar, false, nil, nil, &value, nil}
}

// NewValueFromBytes deserializes a Value previously produced by Serialize.
func NewValueFromBytes(data []byte, valueType TypeID) (ret *Value) {
	buf := bytes.NewBuffer(data)
	isNull := new(bool)
	binary.Read(buf, binary.LittleEndian, isNull)

	switch valueType {
	case Integer:
		v := new(int32)
		binary.Read(buf, binary.LittleEndian, v)
		vInteger := NewInteger(*v)
		if *isNull {
			vInteger = vInteger.SetNull()
		}
		ret = &vInteger
	case Float:
		v := new(float32)
		binary.Read(buf, binary.LittleEndian, v)
		vFloat := NewFloat(*v)
		if *isNull {
			vFloat = vFloat.SetNull()
		}
		ret = &vFloat
	case Varchar:
		length := new(uint16)
		binary.Read(buf, binary.LittleEndian, length)
		str := make([]byte, *length)
		buf.Read(str)
		varchar := NewVarchar(string(str))
		if *isNull {
			varchar = varchar.SetNull()
		}
		ret = &varchar
	case Boolean:
		v := new(bool)
		binary.Read(buf, binary.LittleEndian, v)
		vBoolean := NewBoolean(*v)
		if *isNull {
			vBoolean = vBoolean.SetNull()
		}
		ret = &vBoolean
	default:
		panic(fmt.Sprintf("%v is not a serializable value type", valueType))
	}
	return ret
}

func (v Value) CompareEquals(right Value) bool {
	if v.IsNull() && right.IsNull() {
		return true
	} else if v.IsNull() || right.IsNull() {
		return false
	}

	switch v.valueType {
	case Integer:
		return *v.integer == *right.integer
	case Float:
		return *v.float == *right.float
	case Varchar:
		return *v.varchar == *right.varchar
	case Boolean:
		return *v.boolean == *right.boolean
	}
	return false
}

func (v Value) CompareNotEquals(right Value) bool {
	if v.IsNull() && right.IsNull() {
		return false
	} else if v.IsNull() || right.IsNull() {
		return true
	}

	switch v.valueType {
	case Integer:
		return *v.integer != *right.integer
	case Float:
		return *v.float != *right.float
	case Varchar:
		return *v.varchar != *right.varchar
	case Boolean:
		return *v.boolean != *right.boolean
	}
	return false
}

func (v Value) CompareGreaterThan(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}

	switch v.valueType {
	case Integer:
		return *v.integer > *right.integer
	case Float:
		return *v.float > *right.float
	case Varchar:
		return *v.varchar > *right.varchar
	case Boolean:
		return false
	}
	return false
}

func (v Value) CompareGreaterThanOrEqual(right Value) bool {
	if v.IsNull() && right.IsNull() {
		return true
	} else if v.IsNull() || right.IsNull() {
		return false
	}

	switch v.valueType {
	case Integer:
		return *v.integer >= *right.integer
	case Float:
		return *v.float >= *right.float
	case Varchar:
		return *v.varchar >= *right.varchar
	case Boolean:
		return *v.boolean == *right.boolean
	}
	return false
}

func (v Value) CompareLessThan(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}

	switch v.valueType {
	case Integer:
		return *v.integer < *right.integer
	case Float:
		return *v.float < *right.float
	case Varchar:
		return *v.varchar < *right.varchar
	case Boolean:
		return false
	}
	return false
}

func (v Value) CompareLessThanOrEqual(right Value) bool {
	if v.IsNull() && right.IsNull() {
		return true
	} else if v.IsNull() || right.IsNull() {
		return false
	}

	switch v.valueType {
	case Integer:
		return *v.integer <= *right.integer
	case Float:
		return *v.float <= *right.float
	case Varchar:
		return *v.varchar <= *right.varchar
	case Boolean:
		return *v.boolean == *right.boolean
	default:
		panic("illegal valueType is passed!")
	}
}

func (v Value) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, v.isNull)
	switch v.valueType {
	case Integer:
		binary.Write(buf, binary.LittleEndian, v.ToInteger())
	case Float:
		binary.Write(buf, binary.LittleEndian, v.ToFloat())
	case Varchar:
		binary.Write(buf, binary.LittleEndian, uint16(len(v.ToVarchar())))
		buf.WriteString(v.ToVarchar())
	case Boolean:
		binary.Write(buf, binary.LittleEndian, v.ToBoolean())
	}
	return buf.Bytes()
}

// Size returns the number of bytes Serialize will produce for v.
func (v Value) Size() uint32 {
	switch v.valueType {
	case Integer, Float, Boolean:
		return v.valueType.Size() + 1
	case Varchar:
		return uint32(len(*v.varchar)) + 1 + 2
	}
	panic("not implemented")
}

// ToBoolean returns the underlying value; callers must check IsNull first.
func (v Value) ToBoolean() bool {
	return *v.boolean
}

// ToInteger returns the underlying value; callers must check IsNull first.
func (v Value) ToInteger() int32 {
	return *v.integer
}

// ToFloat returns the underlying value; callers must check IsNull first.
func (v Value) ToFloat() float32 {
	return *v.float
}

// ToVarchar returns the underlying value; callers must check IsNull first.
func (v Value) ToVarchar() string {
	return *v.varchar
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

// ToIFValue extracts the underlying scalar as an interface{}, comparable
// with == and usable as a map key.
func (v Value) ToIFValue() interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.valueType {
	case Integer:
		return *v.integer
	case Float:
		return *v.float
	case Boolean:
		return *v.boolean
	case Varchar:
		return *v.varchar
	}
	return nil
}

// SetNull returns a NULL value of v's type. Value is immutable by
// convention, so the result must be assigned back by the caller.
func (v Value) SetNull() Value {
	v.isNull = true
	switch v.valueType {
	case Integer:
		v.integer = new(int32)
	case Float:
		v.float = new(float32)
	case Varchar:
		v.varchar = new(string)
	case Boolean:
		v.boolean = new(bool)
	default:
		panic("not implemented")
	}
	return v
}

func (v Value) IsNull() bool {
	return v.isNull
}

func (v Value) Add(other *Value) *Value {
	if other.IsNull() {
		return &v
	}

	switch v.valueType {
	case Integer:
		ret := NewInteger(*v.integer + *other.integer)
		return &ret
	case Float:
		ret := NewFloat(*v.float + *other.float)
		return &ret
	default:
		panic("Add is implemented to Integer and Float only.")
	}
}

func (v Value) Max(other *Value) *Value {
	if other.IsNull() {
		return &v
	}

	switch v.valueType {
	case Integer:
		if *v.integer >= *other.integer {
			ret := NewInteger(*v.integer)
			return &ret
		}
		ret := NewInteger(other.ToInteger())
		return &ret
	case Float:
		if *v.float >= *other.float {
			ret := NewFloat(*v.float)
			return &ret
		}
		ret := NewFloat(other.ToFloat())
		return &ret
	default:
		panic("Max is implemented to Integer and Float only.")
	}
}

func (v Value) Min(other *Value) *Value {
	if other.IsNull() {
		return &v
	}

	switch v.valueType {
	case Integer:
		if *v.integer <= *other.integer {
			ret := NewInteger(*v.integer)
			return &ret
		}
		ret := NewInteger(other.ToInteger())
		return &ret
	case Float:
		if *v.float <= *other.float {
			ret := NewFloat(*v.float)
			return &ret
		}
		ret := NewFloat(other.ToFloat())
		return &ret
	default:
		panic("Min is implemented to Integer and Float only.")
	}
}
