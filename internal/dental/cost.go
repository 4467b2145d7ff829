package dental

// DefaultTaxRate is the VAT rate applied when tax is enabled.
const DefaultTaxRate = 0.15

// CostSummary is the derived cost breakdown for a treatment plan. It is
// recomputed on every view and never persisted.
type CostSummary struct {
	Total    float64 `json:"total"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Final    float64 `json:"final"`
}

// ComputeSummary derives the cost summary from the ledger entries and the
// doctor's discount/tax inputs. The discount is clamped to the total so it
// can never push the final amount negative. Amounts stay unrounded; callers
// format with two decimals at presentation time.
func ComputeSummary(entries []ProcedureEntry, discountInput float64, taxEnabled bool, taxRate float64) (CostSummary, error) {
	if discountInput < 0 {
		return CostSummary{}, &InvalidDiscountError{Amount: discountInput}
	}

	var total float64
	for _, entry := range entries {
		total += entry.Cost
	}

	discount := discountInput
	if discount > total {
		discount = total
	}

	var tax float64
	if taxEnabled {
		tax = total * taxRate
	}

	return CostSummary{
		Total:    total,
		Discount: discount,
		Tax:      tax,
		Final:    total - discount + tax,
	}, nil
}
