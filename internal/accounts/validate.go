package accounts

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tellerworks/teller/internal/model"
)

// ValidationError describes a single ledger invariant violation.
type ValidationError struct {
	Invariant     int
	Account       int
	TransactionID string
	Description   string
}

func (e ValidationError) Error() string {
	if e.TransactionID == "" {
		return fmt.Sprintf("invariant %d [account %d]: %s", e.Invariant, e.Account, e.Description)
	}
	return fmt.Sprintf("invariant %d [account %d, tx %s]: %s", e.Invariant, e.Account, e.TransactionID, e.Description)
}

// Validate re-derives an account from its log and checks 5 invariants.
func Validate(a *Account) []ValidationError {
	return ValidateLog(a.Number(), a.Balance(), a.Statement())
}

// ValidateLog checks a transaction log against a claimed balance.
func ValidateLog(number int, balance decimal.Decimal, txns []model.Transaction) []ValidationError {
	var errs []ValidationError

	// Invariant 1: The log opens with exactly one initial deposit.
	for i, tx := range txns {
		isInitial := tx.Kind == model.KindInitialDeposit
		if (i == 0) != isInitial {
			errs = append(errs, ValidationError{
				Invariant:     1,
				Account:       number,
				TransactionID: tx.ID,
				Description:   fmt.Sprintf("entry %d has kind %s", i, tx.Kind),
			})
		}
	}
	if len(txns) == 0 {
		errs = append(errs, ValidationError{
			Invariant:   1,
			Account:     number,
			Description: "log is empty",
		})
	}

	seen := make(map[string]bool, len(txns))
	running := decimal.Zero
	for i, tx := range txns {
		// Invariant 2: Timestamps never decrease.
		if i > 0 && tx.Timestamp.Before(txns[i-1].Timestamp) {
			errs = append(errs, ValidationError{
				Invariant:     2,
				Account:       number,
				TransactionID: tx.ID,
				Description:   fmt.Sprintf("timestamp %s before previous %s", tx.Timestamp.Format("2006-01-02T15:04:05.000"), txns[i-1].Timestamp.Format("2006-01-02T15:04:05.000")),
			})
		}

		// Invariant 3: Transaction IDs are unique.
		if tx.ID == "" || seen[tx.ID] {
			errs = append(errs, ValidationError{
				Invariant:     3,
				Account:       number,
				TransactionID: tx.ID,
				Description:   "missing or duplicate transaction ID",
			})
		}
		seen[tx.ID] = true

		// Invariant 4: A withdrawal never exceeds the balance before it.
		if tx.Kind == model.KindWithdrawal && tx.Amount.GreaterThan(running) {
			errs = append(errs, ValidationError{
				Invariant:     4,
				Account:       number,
				TransactionID: tx.ID,
				Description:   fmt.Sprintf("withdrawal %s exceeds balance %s", tx.Amount.StringFixed(2), running.StringFixed(2)),
			})
		}
		running = running.Add(tx.SignedAmount())
	}

	// Invariant 5: Balance equals the signed sum of the log.
	if !running.Equal(balance) {
		errs = append(errs, ValidationError{
			Invariant:   5,
			Account:     number,
			Description: fmt.Sprintf("balance %s != log total %s", balance, running),
		})
	}

	return errs
}
