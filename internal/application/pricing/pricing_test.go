package pricing

import (
	"testing"

	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newEngine() *Engine {
	return NewEngine(dec("0.05"))
}

func fixedService(officeFee, govFee string, vat bool) entity.Service {
	return entity.Service{
		Code:          "MOL_RES_RENEW",
		BaseOfficeFee: dec(officeFee),
		GovFeeType:    enum.GovFeeTypeFixed,
		GovFeeValue:   dec(govFee),
		VATApplicable: vat,
	}
}

func TestComputeLineItemReferenceExample(t *testing.T) {
	// office 3.000, gov 10.000, VAT 5% on office fee only
	svc := fixedService("3.0", "10.0", true)

	got := newEngine().ComputeLineItem(svc, 1, nil)

	assert.True(t, got.OfficeFee.Equal(dec("3")), "office fee %s", got.OfficeFee)
	assert.True(t, got.VATAmount.Equal(dec("0.15")), "vat %s", got.VATAmount)
	assert.True(t, got.GovFee.Equal(dec("10")), "gov fee %s", got.GovFee)
	assert.True(t, got.LineTotal.Equal(dec("13.15")), "line total %s", got.LineTotal)
}

func TestComputeLineItemTotalIdentity(t *testing.T) {
	svc := fixedService("7.333", "2.5", true)
	e := newEngine()

	for _, qty := range []int{1, 2, 3, 7, 50} {
		got := e.ComputeLineItem(svc, qty, nil)
		sum := got.OfficeFee.Add(got.VATAmount).Add(got.GovFee).Round(Scale)
		assert.True(t, got.LineTotal.Equal(sum),
			"qty %d: line total %s != %s", qty, got.LineTotal, sum)
	}
}

func TestComputeLineItemVATNotApplicable(t *testing.T) {
	svc := fixedService("3.0", "10.0", false)
	e := newEngine()

	for _, qty := range []int{1, 4, 9} {
		got := e.ComputeLineItem(svc, qty, nil)
		assert.True(t, got.VATAmount.IsZero(), "qty %d: vat %s", qty, got.VATAmount)
	}
}

func TestComputeLineItemVATExcludesGovFee(t *testing.T) {
	// gov fee dwarfs office fee; VAT must stay a function of the office fee
	svc := fixedService("1.0", "1000.0", true)

	got := newEngine().ComputeLineItem(svc, 1, nil)

	assert.True(t, got.VATAmount.Equal(dec("0.05")), "vat %s", got.VATAmount)
}

func TestComputeLineItemRounding(t *testing.T) {
	// 1.111 * 0.05 = 0.05555 -> 0.056 at 3 decimals
	svc := fixedService("1.111", "0", true)

	got := newEngine().ComputeLineItem(svc, 1, nil)

	assert.True(t, got.VATAmount.Equal(dec("0.056")), "vat %s", got.VATAmount)
	assert.True(t, got.LineTotal.Equal(dec("1.167")), "line total %s", got.LineTotal)
}

func TestComputeLineItemVariableDefaultsToFixed(t *testing.T) {
	svc := fixedService("3.0", "10.0", true)
	svc.GovFeeType = enum.GovFeeTypeVariable

	got := newEngine().ComputeLineItem(svc, 2, nil)

	assert.True(t, got.GovFee.Equal(dec("20")), "gov fee %s", got.GovFee)
}

func TestComputeLineItemVariableOverride(t *testing.T) {
	svc := fixedService("3.0", "10.0", true)
	svc.GovFeeType = enum.GovFeeTypeVariable

	e := newEngine()
	e.RegisterGovFeeFunc(svc.Code, func(s entity.Service, qty int, params CalcParams) decimal.Decimal {
		area, ok := params["area_sqm"]
		require.True(t, ok)
		return area.Mul(dec("0.25"))
	})

	got := e.ComputeLineItem(svc, 1, CalcParams{"area_sqm": dec("100")})

	assert.True(t, got.GovFee.Equal(dec("25")), "gov fee %s", got.GovFee)
	assert.True(t, got.LineTotal.Equal(dec("28.15")), "line total %s", got.LineTotal)
}

func TestComputeInvoiceTotalsEmpty(t *testing.T) {
	got := newEngine().ComputeInvoiceTotals(nil)

	assert.True(t, got.SubtotalOfficeFees.IsZero())
	assert.True(t, got.TotalGovFees.IsZero())
	assert.True(t, got.VATAmount.IsZero())
	assert.True(t, got.GrandTotal.IsZero())
}

func TestComputeInvoiceTotals(t *testing.T) {
	e := newEngine()
	items := []LineAmounts{
		e.ComputeLineItem(fixedService("3.0", "10.0", true), 1, nil),
		e.ComputeLineItem(fixedService("5.5", "2.0", false), 2, nil),
	}

	got := e.ComputeInvoiceTotals(items)

	assert.True(t, got.SubtotalOfficeFees.Equal(dec("14")), "subtotal %s", got.SubtotalOfficeFees)
	assert.True(t, got.TotalGovFees.Equal(dec("14")), "gov fees %s", got.TotalGovFees)
	assert.True(t, got.VATAmount.Equal(dec("0.15")), "vat %s", got.VATAmount)
	assert.True(t, got.GrandTotal.Equal(dec("28.15")), "grand total %s", got.GrandTotal)

	sum := got.SubtotalOfficeFees.Add(got.VATAmount).Add(got.TotalGovFees)
	assert.True(t, got.GrandTotal.Equal(sum.Round(Scale)))
}
