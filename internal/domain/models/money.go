package models

import (
	"strings"

	"busreservation/internal/utils"
)

// Money is an amount in cents. It renders and encodes with two fractional digits.
type Money int64

func (m Money) String() string { return utils.FormatMoney(int64(m)) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*m = 0
		return nil
	}
	cents, err := utils.ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = Money(cents)
	return nil
}
