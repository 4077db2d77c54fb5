package vals

import (
	"testing"

	"src.esval.dev/pkg/tt"
)

func TestCompareStrings(t *testing.T) {
	tt.Test(t, tt.Fn("CompareStrings", CompareStrings), tt.Table{
		Args("a", "b").Rets(-1),
		Args("b", "a").Rets(1),
		Args("a", "a").Rets(0),
		Args("a", "ab").Rets(-1),
		Args("", "").Rets(0),
		Args("Z", "a").Rets(-1),
		// U+FF61 is a single code unit greater than the lead surrogate of
		// U+1F600, although its code point is smaller.
		Args("\uff61", "\U0001F600").Rets(1),
	})
}

func TestArrayIndex(t *testing.T) {
	tt.Test(t, tt.Fn("ArrayIndex", ArrayIndex), tt.Table{
		Args(String("0")).Rets(uint32(0), true),
		Args(String("42")).Rets(uint32(42), true),
		Args(String("4294967294")).Rets(uint32(4294967294), true),
		Args(String("4294967295")).Rets(uint32(0), false),
		Args(String("01")).Rets(uint32(0), false),
		Args(String("-1")).Rets(uint32(0), false),
		Args(String("+1")).Rets(uint32(0), false),
		Args(String("")).Rets(uint32(0), false),
		Args(String("length")).Rets(uint32(0), false),
		Args(SymbolIterator).Rets(uint32(0), false),
	})
}

func TestKeyString(t *testing.T) {
	tt.Test(t, tt.Fn("KeyString", KeyString), tt.Table{
		Args(String("foo")).Rets("foo"),
		Args(NewSymbol("desc")).Rets("[desc]"),
		Args(&Symbol{}).Rets(""),
	})
}
