package billing

import (
	"fmt"
	"time"

	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// NumberPrefix selects the invoice number prefix: INV for tax invoices,
// CSH for cash memos.
func NumberPrefix(customerHasGSTIN bool) string {
	if customerHasGSTIN {
		return entity.PrefixTaxInvoice
	}
	return entity.PrefixCashMemo
}

// NumberPeriod formats the YYMM period component of an invoice number.
func NumberPeriod(issueDate time.Time) string {
	return issueDate.Format("0601")
}

// FormatNumber builds {PREFIX}-{YY}{MM}{sequence:05d}. Sequences increment
// per company+prefix+period, starting at 1; numbers sort lexically by issue
// period within a prefix.
func FormatNumber(prefix string, issueDate time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s%05d", prefix, NumberPeriod(issueDate), sequence)
}
