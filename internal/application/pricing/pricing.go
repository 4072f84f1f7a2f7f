package pricing

import (
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Scale is the monetary precision in decimal places. The reference currency
// uses 3-decimal subunits; every stored amount is rounded to this scale so
// line and invoice sums always reconcile.
const Scale = 3

// CalcParams carries optional per-service inputs for variable government
// fee calculations
type CalcParams map[string]decimal.Decimal

// LineAmounts is the fee breakdown for one priced service line
type LineAmounts struct {
	OfficeFee decimal.Decimal `json:"office_fee"`
	GovFee    decimal.Decimal `json:"gov_fee"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceTotals is the component breakdown for an invoice
type InvoiceTotals struct {
	SubtotalOfficeFees decimal.Decimal `json:"subtotal_office_fees"`
	TotalGovFees       decimal.Decimal `json:"total_gov_fees"`
	VATAmount          decimal.Decimal `json:"vat_amount"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
}

// GovFeeFunc computes a service-specific government fee for services whose
// fee type is variable. Registered per service code; services without an
// override price the same as fixed.
type GovFeeFunc func(svc entity.Service, quantity int, params CalcParams) decimal.Decimal

// Engine computes currency-precise fees for service lines and invoices.
// VAT applies to the office fee only; government fees are a pass-through
// remitted to the government entity and are never taxed.
type Engine struct {
	vatRate   decimal.Decimal
	overrides map[string]GovFeeFunc
}

// NewEngine creates a pricing engine with the configured VAT rate
// (e.g. 0.05 for 5%)
func NewEngine(vatRate decimal.Decimal) *Engine {
	return &Engine{
		vatRate:   vatRate,
		overrides: make(map[string]GovFeeFunc),
	}
}

// RegisterGovFeeFunc installs a variable-fee calculation for one service code
func (e *Engine) RegisterGovFeeFunc(serviceCode string, fn GovFeeFunc) {
	e.overrides[serviceCode] = fn
}

// VATRate returns the configured VAT rate
func (e *Engine) VATRate() decimal.Decimal {
	return e.vatRate
}

// ComputeLineItem prices one (service, quantity) pair. Quantity validation
// is the caller's responsibility; the computation itself is total for any
// input.
func (e *Engine) ComputeLineItem(svc entity.Service, quantity int, params CalcParams) LineAmounts {
	qty := decimal.NewFromInt(int64(quantity))

	officeFee := svc.BaseOfficeFee.Mul(qty).Round(Scale)

	var govFee decimal.Decimal
	if svc.GovFeeType == enum.GovFeeTypeVariable {
		if fn, ok := e.overrides[svc.Code]; ok {
			govFee = fn(svc, quantity, params).Round(Scale)
		} else {
			govFee = svc.GovFeeValue.Mul(qty).Round(Scale)
		}
	} else {
		govFee = svc.GovFeeValue.Mul(qty).Round(Scale)
	}

	vatAmount := decimal.Zero
	if svc.VATApplicable {
		vatAmount = officeFee.Mul(e.vatRate).Round(Scale)
	}

	return LineAmounts{
		OfficeFee: officeFee,
		GovFee:    govFee,
		VATAmount: vatAmount,
		LineTotal: officeFee.Add(vatAmount).Add(govFee).Round(Scale),
	}
}

// ComputeInvoiceTotals sums each fee component across line items. An empty
// item list yields all-zero totals.
func (e *Engine) ComputeInvoiceTotals(items []LineAmounts) InvoiceTotals {
	subtotal := decimal.Zero
	govFees := decimal.Zero
	vat := decimal.Zero

	for _, it := range items {
		subtotal = subtotal.Add(it.OfficeFee)
		govFees = govFees.Add(it.GovFee)
		vat = vat.Add(it.VATAmount)
	}

	subtotal = subtotal.Round(Scale)
	govFees = govFees.Round(Scale)
	vat = vat.Round(Scale)

	return InvoiceTotals{
		SubtotalOfficeFees: subtotal,
		TotalGovFees:       govFees,
		VATAmount:          vat,
		GrandTotal:         subtotal.Add(vat).Add(govFees).Round(Scale),
	}
}
