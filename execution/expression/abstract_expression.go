package expression

import "github.com/opendb/relstore/types"

// AbstractExpression holds the fields shared by every expression node: its
// children (every operator here is unary or binary, so two slots suffice)
// and the type its Evaluate result carries.
type AbstractExpression struct {
	children [2]Expression
	ret_type types.TypeID
}

/** @return the child_idx'th child of this expression */
func (e *AbstractExpression) GetChildAt(child_idx uint32) Expression { return e.children[child_idx] }

/** @return the children of this expression, ordering may matter */
func (e *AbstractExpression) GetChildren() []Expression { return e.children[:] }

/** @return the type of this expression if it were to be evaluated */
func (e *AbstractExpression) GetReturnType() types.TypeID { return e.ret_type }
