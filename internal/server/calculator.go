package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/amountwords"
	"github.com/smallbiznis/fmis/internal/lineitem"
)

const calculatorSource = "calculator"

type lineItemsResponse struct {
	Items         []lineitem.Item `json:"items"`
	Totals        lineitem.Totals `json:"totals"`
	AmountInWords string          `json:"amount_in_words"`
}

// CalculateLineItems computes a single line item, or a batch with totals
// when the body is a JSON array.
func (s *Server) CalculateLineItems(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	raw = bytes.TrimSpace(raw)
	batch := len(raw) > 0 && raw[0] == '['

	var inputs []lineitem.ItemInput
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if batch {
		err = dec.Decode(&inputs)
	} else {
		var in lineitem.ItemInput
		err = dec.Decode(&in)
		inputs = []lineitem.ItemInput{in}
	}
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items, err := s.lineItemBuilder().ComputeAll(c.Request.Context(), inputs)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	for _, item := range items {
		s.metrics.RecordLineItem(item.Vatable, calculatorSource)
	}

	if !batch {
		c.JSON(http.StatusOK, gin.H{"data": items[0]})
		return
	}

	totals := lineitem.SumItems(items)
	c.JSON(http.StatusOK, gin.H{"data": lineItemsResponse{
		Items:         items,
		Totals:        totals,
		AmountInWords: amountwords.FromDecimal(totals.Net),
	}})
}

func (s *Server) AmountInWords(c *gin.Context) {
	amount := strings.TrimSpace(c.Query("amount"))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"amount": amount,
		"words":  amountwords.Convert(amount),
	}})
}

func (s *Server) lineItemBuilder() lineitem.Builder {
	return lineitem.Builder{
		Rates: s.taxes,
		DefaultVAT: func() decimal.Decimal {
			return decimal.NewFromFloat(s.rates.Get().DefaultVATRate)
		},
	}
}
