package domain

import (
	"context"
	"encoding/json"
)

// RawCharge is one charge record as the upstream statement API returns it.
// Field types are deliberately loose: the provider emits numbers, numeric
// strings, or omits fields entirely, and normalization decides the defaults.
type RawCharge struct {
	ChargeID              any `json:"idCargo"`
	Concept               any `json:"concepto"`
	Amount                any `json:"monto"`
	Principal             any `json:"capital"`
	Interest              any `json:"interes"`
	PropertyInsurance     any `json:"seguroBienes"`
	LifeInsurance         any `json:"seguroVida"`
	UnemploymentInsurance any `json:"seguroDesempleo"`
	DueDate               any `json:"fechaVencimiento"`
}

// RawPayment is one payment record as the upstream statement API returns it.
type RawPayment struct {
	PaymentID         any `json:"idPago"`
	Amount            any `json:"montoPago"`
	LateFees          any `json:"extemporaneos"`
	WeeklyInstallment any `json:"numeroCuotaSemanal"`
	ValueDate         any `json:"fechaValor"`
	RegisteredDate    any `json:"fechaRegistro"`
}

// RawChargeList tolerates the upstream sending null or a non-list value where
// a charge array is expected; anything that is not a list decodes as empty.
type RawChargeList []RawCharge

func (l *RawChargeList) UnmarshalJSON(b []byte) error {
	var items []RawCharge
	if err := json.Unmarshal(b, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// RawPaymentList tolerates the upstream sending null or a non-list value
// where a payment array is expected.
type RawPaymentList []RawPayment

func (l *RawPaymentList) UnmarshalJSON(b []byte) error {
	var items []RawPayment
	if err := json.Unmarshal(b, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// RawClient carries the client block of the upstream statement. Only the
// client ID participates in any logic (document lookups); the rest is
// passed through for display.
type RawClient struct {
	ClientID any            `json:"idCliente"`
	Fields   map[string]any `json:"-"`
}

func (c *RawClient) UnmarshalJSON(b []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil
	}
	c.Fields = fields
	c.ClientID = fields["idCliente"]
	return nil
}

func (c RawClient) MarshalJSON() ([]byte, error) {
	if c.Fields == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Fields)
}

// RawStatement is the upstream account statement for one credit as of a
// cutoff date.
type RawStatement struct {
	CreditID any            `json:"idCredito"`
	Client   RawClient      `json:"datosCliente"`
	Charges  RawChargeList  `json:"datosCargos"`
	Payments RawPaymentList `json:"datosPagos"`
}

// Empty reports whether the upstream returned a statement with no identity
// and no data, which the API does for unknown credits instead of an error.
func (s *RawStatement) Empty() bool {
	return s.CreditID == nil && s.Client.Fields == nil && len(s.Charges) == 0 && len(s.Payments) == 0
}

// StatementProvider fetches the raw account statement for a credit as of a
// cutoff date (YYYY-MM-DD).
type StatementProvider interface {
	Fetch(ctx context.Context, creditID int, cutoffDate string) (*RawStatement, error)
}
