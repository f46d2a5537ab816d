package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/juristack/lawoffice-backend/internal/domain/client"
	"github.com/juristack/lawoffice-backend/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

// Clients writes the client roster as CSV. Identifier fields use their
// canonical punctuated forms so the file matches what the office prints on
// paperwork.
func Clients(w io.Writer, clients []*client.Client) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "kind", "tax_id", "email", "phone", "city", "state", "postal_code", "active"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write clients header: %w", err)
	}

	for _, c := range clients {
		row := []string{
			c.Name,
			c.Kind.String(),
			c.TaxID.String(),
			c.Email.String(),
			c.Phone.String(),
			c.Address.City,
			c.Address.State.String(),
			c.Address.PostalCode.String(),
			fmt.Sprintf("%t", c.Active),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write client row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Ledger writes financial entries as CSV, closing with a balance row that
// sums the listed entries with expenses negated and canceled entries
// skipped.
func Ledger(w io.Writer, entries []*ledger.Entry) error {
	cw := csv.NewWriter(w)

	header := []string{"kind", "description", "amount", "due_at", "paid_at", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}

	for _, e := range entries {
		paidAt := ""
		if e.PaidAt != nil {
			paidAt = e.PaidAt.Format(dateLayout)
		}
		row := []string{
			e.Kind.String(),
			e.Description,
			e.Amount.String(),
			e.DueAt.Format(dateLayout),
			paidAt,
			string(e.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}

	balance := ledger.Balance(entries)
	if err := cw.Write([]string{"", "balance", balance.String(), "", "", ""}); err != nil {
		return fmt.Errorf("failed to write balance row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
