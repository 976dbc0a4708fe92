// seed loads a demo dataset covering the full workflow: raw copper purchase,
// kacha return, draw return, PVC purchase, production output, a direct sale
// and a khata sale with a split payment.
//
// Usage: go run ./cmd/seed
// Connects with the same configuration as the API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	appkhata "github.com/copperwirepro/ledger-api/internal/application/khata"
	appledger "github.com/copperwirepro/ledger-api/internal/application/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/infrastructure/pdf"
	"github.com/copperwirepro/ledger-api/internal/infrastructure/postgres"
	"github.com/copperwirepro/ledger-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("PostgreSQL connection: %v", err)
	}
	defer pool.Close()

	entryRepo := postgres.NewStockEntryRepository(pool)
	txnRepo := postgres.NewLedgerTransactionRepository(pool)
	customerRepo := postgres.NewKhataCustomerRepository(pool)
	paymentRepo := postgres.NewKhataPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := appledger.NewUseCase(txRunner, entryRepo, txnRepo)
	khataUC := appkhata.NewUseCase(txRunner, customerRepo, paymentRepo, txnRepo, entryRepo, pdf.NewMarotoStatementGenerator())

	// Stage 1: raw copper purchase, 100 kg of 8mm rod.
	rodPrice := decimal.RequireFromString("2600")
	raw, err := ledgerUC.CreateEntry(ctx, appledger.CreateEntryInput{
		SourceKind:    entity.SourceRawPurchase,
		Label:         "8mm copper rod",
		TotalQuantity: decimal.RequireFromString("100"),
		UnitPrice:     &rodPrice,
	})
	if err != nil {
		fail("raw purchase: %v", err)
	}
	fmt.Printf("raw purchase %s (%s kg)\n", raw.ID, raw.TotalQuantity)

	// Stage 2: the kacha maker returns 95 kg of drawn-down wire.
	kacha, err := ledgerUC.ReturnToInventory(ctx, appledger.ReturnToInventoryInput{
		SourceEntryID: raw.ID,
		NewLabel:      "1.6mm kacha wire",
		Quantity:      decimal.RequireFromString("95"),
		ProcessorName: "Kacha Workshop",
	})
	if err != nil {
		fail("kacha return: %v", err)
	}
	fmt.Printf("kacha return %s (%s kg)\n", kacha.ID, kacha.TotalQuantity)

	// Stage 3: the fine-draw unit returns 92 kg.
	draw, err := ledgerUC.ReturnToInventory(ctx, appledger.ReturnToInventoryInput{
		SourceEntryID: kacha.ID,
		NewLabel:      "0.9mm drawn wire",
		Quantity:      decimal.RequireFromString("92"),
		ProcessorName: "Draw Unit",
	})
	if err != nil {
		fail("draw return: %v", err)
	}
	fmt.Printf("draw return %s (%s kg)\n", draw.ID, draw.TotalQuantity)

	// PVC compound bought for insulation.
	pvcPrice := decimal.RequireFromString("310")
	pvc, err := ledgerUC.CreateEntry(ctx, appledger.CreateEntryInput{
		SourceKind:    entity.SourcePVCPurchase,
		Label:         "PVC compound, black",
		TotalQuantity: decimal.RequireFromString("40"),
		UnitPrice:     &pvcPrice,
	})
	if err != nil {
		fail("pvc purchase: %v", err)
	}
	fmt.Printf("pvc purchase %s (%s kg)\n", pvc.ID, pvc.TotalQuantity)

	// Stage 4: production consumes drawn wire and hands back finished wire.
	finished, err := ledgerUC.ReturnToInventory(ctx, appledger.ReturnToInventoryInput{
		SourceEntryID: draw.ID,
		NewLabel:      "7/29 insulated wire",
		Quantity:      decimal.RequireFromString("90"),
		ProcessorName: "Production Line 1",
	})
	if err != nil {
		fail("production output: %v", err)
	}
	fmt.Printf("production output %s (%s kg)\n", finished.ID, finished.TotalQuantity)

	// A direct cash sale off the finished lot.
	sale, err := ledgerUC.Sell(ctx, appledger.SellInput{
		EntryID:      finished.ID,
		Quantity:     decimal.RequireFromString("20"),
		PricePerUnit: decimal.RequireFromString("3100"),
		BuyerName:    "Walk-in Buyer",
	})
	if err != nil {
		fail("direct sale: %v", err)
	}
	fmt.Printf("direct sale %s (%s kg)\n", sale.ID, sale.QuantityDelta.Neg())

	// A khata sale with a split payment: 30 kg at 3100, 50000 cash + 43000 bank.
	customer, err := khataUC.CreateCustomer(ctx, dto.CreateKhataCustomerRequest{
		Name:  "abdul rehman",
		Phone: "+92 300 1234567",
	})
	if err != nil {
		fail("khata customer: %v", err)
	}
	khataSale, err := khataUC.RecordSale(ctx, dto.RecordKhataSaleRequest{
		CustomerID:   customer.ID,
		EntryID:      finished.ID,
		Quantity:     decimal.RequireFromString("30"),
		PricePerUnit: decimal.RequireFromString("3100"),
		Payments: []dto.PaymentLineRequest{
			{Method: entity.PaymentMethodCash, Amount: decimal.RequireFromString("50000")},
			{Method: entity.PaymentMethodBank, Amount: decimal.RequireFromString("43000"), Reference: "TRX-0042"},
		},
	}, "")
	if err != nil {
		fail("khata sale: %v", err)
	}
	fmt.Printf("khata sale %s for %s (total %s)\n", khataSale.TransactionID, customer.Name, khataSale.Total)

	available, err := ledgerUC.GetAvailableQuantity(ctx, finished.ID)
	if err != nil {
		fail("availability: %v", err)
	}
	fmt.Printf("finished lot availability: %s kg\n", available)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
