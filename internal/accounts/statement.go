package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerworks/teller/internal/id"
	"github.com/tellerworks/teller/internal/model"
)

// Statement formats.
const (
	StatementTable = "table"
	StatementCSV   = "csv"
)

// StatementHeader is the CSV header for exported statements.
const StatementHeader = "transaction_id,timestamp,kind,amount,balance"

const (
	numFields    = 5
	tableDate    = "2006-01-02 15:04:05"
	colID        = 0
	colTimestamp = 1
	colKind      = 2
	colAmount    = 3
	colBalance   = 4
)

// MarshalTransaction converts a transaction and the balance after it to a
// CSV row. Amounts keep full precision.
func MarshalTransaction(tx model.Transaction, balanceAfter decimal.Decimal) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colTimestamp] = tx.Timestamp.Format(time.RFC3339Nano)
	row[colKind] = string(tx.Kind)
	row[colAmount] = tx.Amount.String()
	row[colBalance] = balanceAfter.String()
	return row
}

// WriteStatementCSV writes the log as CSV with a running balance column.
func WriteStatementCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(StatementHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	running := decimal.Zero
	for i, tx := range txns {
		running = running.Add(tx.SignedAmount())
		if err := cw.Write(MarshalTransaction(tx, running)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatementTable prints the log as an aligned Date/Type/Amount table
// headed by the account number. Ref is the short form of the transaction ID.
func WriteStatementTable(w io.Writer, number int, txns []model.Transaction, currency string) error {
	if _, err := fmt.Fprintf(w, "Statement for Account: %d\n", number); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tType\tAmount\tRef")
	for _, tx := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s\n",
			tx.Timestamp.Format(tableDate),
			tx.Kind.Label(),
			currency, tx.SignedAmount().StringFixed(2),
			id.ShortTransactionID(tx.ID))
	}
	return tw.Flush()
}
