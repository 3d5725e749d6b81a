package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("100.50")

	credit := Transaction{Type: TransactionTypeCredit, Amount: amount}
	if !credit.SignedAmount().Equal(amount) {
		t.Fatalf("expected credit delta %s, got %s", amount, credit.SignedAmount())
	}

	for _, typ := range []TransactionType{TransactionTypeDebit, TransactionTypeTransfer} {
		entry := Transaction{Type: typ, Amount: amount}
		if !entry.SignedAmount().Equal(amount.Neg()) {
			t.Fatalf("expected %s delta %s, got %s", typ, amount.Neg(), entry.SignedAmount())
		}
	}
}
