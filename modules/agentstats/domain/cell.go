package domain

import "github.com/shopspring/decimal"

// CellState distinguishes a reported value from a cell the source left
// blank and from a cell whose raw text could not be coerced. Blank is
// never collapsed to zero.
type CellState int

const (
	CellNull CellState = iota
	CellValue
	CellRejected
)

type Cell struct {
	state CellState
	value decimal.Decimal
	raw   string
}

func NullCell() Cell {
	return Cell{state: CellNull}
}

func ValueCell(v decimal.Decimal) Cell {
	return Cell{state: CellValue, value: v}
}

func RejectedCell(raw string) Cell {
	return Cell{state: CellRejected, raw: raw}
}

func (c Cell) State() CellState { return c.state }
func (c Cell) IsNull() bool     { return c.state == CellNull }
func (c Cell) IsValue() bool    { return c.state == CellValue }
func (c Cell) IsRejected() bool { return c.state == CellRejected }

// Raw returns the original source text of a rejected cell.
func (c Cell) Raw() string { return c.raw }

func (c Cell) Decimal() (decimal.Decimal, bool) {
	if c.state != CellValue {
		return decimal.Decimal{}, false
	}
	return c.value, true
}

// NullDecimal converts the cell for persistence: a null cell stays NULL.
func (c Cell) NullDecimal() decimal.NullDecimal {
	if c.state != CellValue {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: c.value, Valid: true}
}

// Int64Ptr converts an integral cell for persistence. The validator
// guarantees count cells are integral before mapping.
func (c Cell) Int64Ptr() *int64 {
	if c.state != CellValue {
		return nil
	}
	n := c.value.IntPart()
	return &n
}
