package handlers

import (
	"busreservation/internal/services"
)

// Handlers carries the ledger and services the routes call into.
type Handlers struct {
	Ledger  *services.Ledger
	Reports services.ReportsService
	Auth    AuthConfig
}

// New wires report services over ledger.
func New(ledger *services.Ledger, auth AuthConfig) *Handlers {
	return &Handlers{
		Ledger:  ledger,
		Reports: services.ReportsService{Ledger: ledger},
		Auth:    auth,
	}
}
