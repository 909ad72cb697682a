package pdf

import "github.com/smallbiznis/fmis/internal/lineitem"

func LinesFromItems(items []lineitem.Item) []Line {
	out := make([]Line, 0, len(items))
	for _, item := range items {
		out = append(out, Line{
			Description: item.Description,
			AccountCode: item.AccountCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Amount:      item.Amounts.Subtotal,
		})
	}
	return out
}

func SummaryFromTotals(t lineitem.Totals) Summary {
	return Summary{
		Gross:    t.Gross,
		Discount: t.Discount,
		VAT:      t.VAT,
		Withheld: t.Withheld,
		EWT:      t.EWT,
		Net:      t.Net,
	}
}
