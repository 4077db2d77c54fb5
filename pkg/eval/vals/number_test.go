package vals

import (
	"math"
	"testing"

	"src.esval.dev/pkg/tt"
)

var (
	Args = tt.Args
	inf  = math.Inf(1)
	nan  = math.NaN()
)

func TestNumberToString(t *testing.T) {
	// Variables keep the sum from being computed exactly at compile time.
	tenth, fifth := 0.1, 0.2
	tt.Test(t, tt.Fn("NumberToString", NumberToString), tt.Table{
		Args(0.0).Rets("0"),
		Args(math.Copysign(0, -1)).Rets("0"),
		Args(nan).Rets("NaN"),
		Args(inf).Rets("Infinity"),
		Args(-inf).Rets("-Infinity"),
		Args(1.0).Rets("1"),
		Args(-1.5).Rets("-1.5"),
		Args(0.1).Rets("0.1"),
		Args(tenth+fifth).Rets("0.30000000000000004"),
		Args(123456789.0).Rets("123456789"),
		Args(1e21).Rets("1e+21"),
		Args(1e20).Rets("100000000000000000000"),
		Args(1.5e21).Rets("1.5e+21"),
		Args(1e-6).Rets("0.000001"),
		Args(1e-7).Rets("1e-7"),
		Args(1.25e-7).Rets("1.25e-7"),
		Args(123.456).Rets("123.456"),
		Args(math.MaxFloat64).Rets("1.7976931348623157e+308"),
		Args(5e-324).Rets("5e-324"),
	})
}

func TestStringToNumber(t *testing.T) {
	tt.Test(t, tt.Fn("StringToNumber", StringToNumber), tt.Table{
		Args("").Rets(0.0),
		Args("  \t\n ").Rets(0.0),
		Args("42").Rets(42.0),
		Args("  42  ").Rets(42.0),
		Args("\u00a042\ufeff").Rets(42.0),
		Args("-0").Rets(math.Copysign(0, -1)),
		Args("+1.5").Rets(1.5),
		Args("1.").Rets(1.0),
		Args(".5").Rets(0.5),
		Args("1e3").Rets(1000.0),
		Args("1E-3").Rets(0.001),
		Args("Infinity").Rets(inf),
		Args("-Infinity").Rets(-inf),
		Args("1e1000").Rets(inf),
		Args("0x1F").Rets(31.0),
		Args("0o17").Rets(15.0),
		Args("0b101").Rets(5.0),
		Args("0xFFFFFFFFFFFFFFFFF").Rets(295147905179352825856.0),

		Args("-0x1").Rets(nan),
		Args("0x").Rets(nan),
		Args("1_000").Rets(nan),
		Args("inf").Rets(nan),
		Args("infinity").Rets(nan),
		Args("NaN").Rets(nan),
		Args("1e").Rets(nan),
		Args(".").Rets(nan),
		Args("12px").Rets(nan),
		Args("0x1p3").Rets(nan),
	})
}

func TestToInt32(t *testing.T) {
	tt.Test(t, tt.Fn("ToInt32", ToInt32), tt.Table{
		Args(0.0).Rets(int32(0)),
		Args(-1.5).Rets(int32(-1)),
		Args(2147483648.0).Rets(int32(-2147483648)),
		Args(4294967296.0).Rets(int32(0)),
		Args(4294967297.0).Rets(int32(1)),
		Args(-4294967297.0).Rets(int32(-1)),
		Args(nan).Rets(int32(0)),
		Args(inf).Rets(int32(0)),
		Args(1e21).Rets(int32(-559939584)),
	})
}

func TestToUint32(t *testing.T) {
	tt.Test(t, tt.Fn("ToUint32", ToUint32), tt.Table{
		Args(-1.0).Rets(uint32(4294967295)),
		Args(4294967296.5).Rets(uint32(0)),
		Args(-inf).Rets(uint32(0)),
	})
}

func TestExponentiate(t *testing.T) {
	tt.Test(t, tt.Fn("Exponentiate", Exponentiate), tt.Table{
		Args(2.0, 10.0).Rets(1024.0),
		Args(1.0, nan).Rets(nan),
		Args(1.0, inf).Rets(nan),
		Args(-1.0, -inf).Rets(nan),
		Args(nan, 0.0).Rets(1.0),
	})
}

func TestRemainder(t *testing.T) {
	tt.Test(t, tt.Fn("Remainder", Remainder), tt.Table{
		Args(5.5, 2.0).Rets(1.5),
		Args(-5.0, 3.0).Rets(-2.0),
		Args(-4.0, 2.0).Rets(math.Copysign(0, -1)),
		Args(1.0, 0.0).Rets(nan),
		Args(1.0, inf).Rets(1.0),
	})
}
