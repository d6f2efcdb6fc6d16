package controllers

import (
	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/notifications"
	"github.com/bikinisbytelly/bikinis-api/payments"
	"github.com/bikinisbytelly/bikinis-api/receipts"
)

// Wired from main at startup; tests substitute doubles.
var (
	Ledger   *ledger.Ledger
	Payments payments.Gateway
	Receipts receipts.Generator
	Mailer   notifications.Dispatcher
)
