// Package pdf renders the printable khata statement handed to a customer:
// header with the customer, one row per sale payment line (undone sales
// struck out as REVERSED), and the outstanding paid total.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	"github.com/copperwirepro/ledger-api/internal/application/khata"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 140, Green: 70, Blue: 20} // copper
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ khata.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implements khata.StatementPDFGenerator with
// Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator builds the generator.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF renders the statement and returns its bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	customer *entity.KhataCustomer,
	lines []dto.StatementLineDTO,
	totalPaid string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Khata Statement", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(detailRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(totalPaid))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: title on the left, customer name and phone on the right.
func headerRow(customer *entity.KhataCustomer) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("COPPER WIRE PRO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Khata Statement", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New(nonEmpty(customer.Phone, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	return row.New(7).Add(
		col.New(2).Add(text.New("Date", header)),
		col.New(4).Add(text.New("Material", header)),
		col.New(2).Add(text.New("Qty", headerAligned(header, align.Right))),
		col.New(2).Add(text.New("Amount", headerAligned(header, align.Right))),
		col.New(2).Add(text.New("Method", headerAligned(header, align.Right))),
	)
}

func detailRow(l dto.StatementLineDTO) core.Row {
	cell := props.Text{Size: 8}
	if l.Reversed {
		cell.Color = colorGray
	}
	method := l.Method
	if l.Reference != "" {
		method += " " + l.Reference
	}
	if l.Reversed {
		method += " (REVERSED)"
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(l.Date.Format("02/01/2006"), cell)),
		col.New(4).Add(text.New(l.EntryLabel, cell)),
		col.New(2).Add(text.New(l.Quantity.String(), headerAligned(cell, align.Right))),
		col.New(2).Add(text.New(l.Amount.StringFixed(2), headerAligned(cell, align.Right))),
		col.New(2).Add(text.New(method, headerAligned(cell, align.Right))),
	)
}

func totalRow(totalPaid string) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL PAID", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(4).Add(text.New(totalPaid, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
		})),
	)
}

func headerAligned(base props.Text, a align.Type) props.Text {
	base.Align = a
	return base
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
