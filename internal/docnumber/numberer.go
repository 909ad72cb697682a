package docnumber

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/fmis/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Numberer issues document numbers from the templates in the rates config.
// Bind it to the transaction that inserts the document with WithTrx so a
// failed insert gives its number back.
type Numberer interface {
	WithTrx(tx *gorm.DB) Numberer
	Next(ctx context.Context, documentType string, issuedAt time.Time, department string) (string, error)
}

type numbererParams struct {
	fx.In

	Log   *zap.Logger
	Repo  SequenceRepository
	Rates *config.RatesConfigHolder
}

type numberer struct {
	log   *zap.Logger
	repo  SequenceRepository
	rates *config.RatesConfigHolder
}

func NewNumberer(p numbererParams) Numberer {
	return &numberer{
		log:   p.Log.Named("docnumber"),
		repo:  p.Repo,
		rates: p.Rates,
	}
}

func (n *numberer) WithTrx(tx *gorm.DB) Numberer {
	return &numberer{log: n.log, repo: n.repo.WithTrx(tx), rates: n.rates}
}

func (n *numberer) Next(ctx context.Context, documentType string, issuedAt time.Time, department string) (string, error) {
	template, err := n.template(documentType)
	if err != nil {
		return "", err
	}

	seq, err := n.repo.Next(ctx, documentType, issuedAt.Year())
	if err != nil {
		return "", err
	}

	number, err := FormatWithDepartment(template, issuedAt, seq, department)
	if err != nil {
		return "", err
	}

	n.log.Debug("document number issued",
		zap.String("document_type", documentType),
		zap.Int64("sequence", seq),
		zap.String("number", number),
	)
	return number, nil
}

func (n *numberer) template(documentType string) (string, error) {
	numbering := n.rates.Get().Numbering
	switch documentType {
	case TypeObligationRequest:
		return numbering.ObligationRequest, nil
	case TypeDisbursementVoucher:
		return numbering.DisbursementVoucher, nil
	case TypeCommunityTax:
		return numbering.CommunityTax, nil
	default:
		return "", fmt.Errorf("unknown document type %q", documentType)
	}
}
