package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// ChargeCurrency is the currency every settlement is charged in.
const ChargeCurrency = CurrencyCLP

// minorUnitScale mirrors the gateway's cents-based amount contract. CLP has no
// minor unit but the gateway call has always been made with amount*100.
var minorUnitScale = decimal.NewFromInt(100)

// maxMinorUnits is the largest charge the gateway's int64 amount can carry.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// OrderRequest is a single-product purchase. Amount is stated in CLP.
type OrderRequest struct {
	ProductID       int
	Quantity        int
	BuyerName       string
	ShippingAddress string
	BuyerEmail      string
	Amount          decimal.Decimal
}

// Validate returns a human-readable reason when the order cannot be settled.
func (o OrderRequest) Validate() (string, bool) {
	if o.Quantity <= 0 {
		return "quantity must be greater than zero", false
	}
	if !o.Amount.IsPositive() {
		return "amount must be greater than zero", false
	}
	minor := o.Amount.Mul(minorUnitScale).Truncate(0)
	if minor.LessThan(decimal.NewFromInt(1)) {
		return "amount is below the smallest chargeable unit", false
	}
	if minor.GreaterThan(maxMinorUnits) {
		return "amount exceeds the largest chargeable value", false
	}
	return "", true
}

// AmountInMinorUnits converts Amount to the gateway's integer unit, truncating
// any fraction below the minor unit. Only meaningful for a valid order.
func (o OrderRequest) AmountInMinorUnits() int64 {
	return o.Amount.Mul(minorUnitScale).IntPart()
}

// SettlementResult confirms a settled order. PaymentReference is set only
// when the gateway created the charge.
type SettlementResult struct {
	Message          string  `json:"message"`
	ProductID        int     `json:"product_id"`
	Quantity         int     `json:"quantity"`
	BuyerName        string  `json:"buyer_name"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}
