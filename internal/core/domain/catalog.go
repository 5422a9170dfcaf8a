package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are emitted as JSON numbers, matching the upstream schema.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is owned by the external inventory service. JSON keys follow the
// upstream schema so payloads pass through unchanged.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"nombre"`
	UnitPrice     decimal.Decimal `json:"precio"`
	StockQuantity int             `json:"stock"`
}

// Branch is a physical store location.
type Branch struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}

// Seller belongs to a branch; referential integrity is enforced upstream.
type Seller struct {
	ID       int    `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	BranchID int    `json:"sucursal_id"`
}

// UpstreamOrderConfirmation is the inventory service's reply to a new-order
// request, forwarded verbatim.
type UpstreamOrderConfirmation json.RawMessage

// MarshalJSON emits the raw upstream payload.
func (c UpstreamOrderConfirmation) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

// UnmarshalJSON keeps a copy of the raw payload.
func (c *UpstreamOrderConfirmation) UnmarshalJSON(data []byte) error {
	*c = append((*c)[0:0], data...)
	return nil
}
