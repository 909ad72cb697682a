package main

import (
	"github.com/smallbiznis/fmis/internal/amountwords"
	"github.com/smallbiznis/fmis/internal/lineitem"
	"github.com/spf13/cobra"
)

var (
	flagPrice    string
	flagQuantity string
	flagDiscount string
	flagVatable  bool
	flagTaxRate  string
	flagEWTRate  string
	flagVATRate  string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the amounts of one line item",
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&flagPrice, "price", "0", "Unit price")
	calcCmd.Flags().StringVar(&flagQuantity, "quantity", "1", "Quantity")
	calcCmd.Flags().StringVar(&flagDiscount, "discount", "", "Discount percent")
	calcCmd.Flags().BoolVar(&flagVatable, "vatable", false, "Price already includes VAT")
	calcCmd.Flags().StringVar(&flagTaxRate, "tax-rate", "", "Withholding tax percent")
	calcCmd.Flags().StringVar(&flagEWTRate, "ewt-rate", "", "Expanded withholding tax percent")
	calcCmd.Flags().StringVar(&flagVATRate, "vat-rate", "", "VAT percent (default 12)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	amounts := lineitem.Calculate(lineitem.Params{
		Price:           flagPrice,
		Quantity:        flagQuantity,
		DiscountPercent: flagDiscount,
		Vatable:         flagVatable,
		TaxRate:         flagTaxRate,
		EWTRate:         flagEWTRate,
		VATRate:         flagVATRate,
	})
	return printJSON(cmd, struct {
		lineitem.Amounts
		AmountInWords string `json:"amount_in_words"`
	}{
		Amounts:       amounts,
		AmountInWords: amountwords.FromDecimal(amounts.Subtotal),
	})
}
