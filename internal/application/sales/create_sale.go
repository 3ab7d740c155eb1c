package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/application/ledger"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
	"github.com/tu-usuario/pos-ventas/internal/domain/snapshot"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// Intentos de insert con consecutivo derivado antes de pasar al fallback F-.
const maxNumberAttempts = 3

// CreateSaleUseCase orquesta el checkout completo: validación, prechequeo de
// stock, consecutivo de factura, persistencia de la venta, descuento de
// inventario —todo en una transacción— y, ya confirmada, la generación de
// factura como paso de mejor esfuerzo.
type CreateSaleUseCase struct {
	txRunner  SaleTxRunner
	ledger    *ledger.Ledger
	sequencer *Sequencer
	invoices  InvoiceCreator
	log       *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	ledger *ledger.Ledger,
	sequencer *Sequencer,
	invoices InvoiceCreator,
	log *logger.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		sequencer: sequencer,
		invoices:  invoices,
		log:       log,
	}
}

// Result venta confirmada y resultado del colaborador de facturación.
// Invoice es nil cuando la generación falló: la venta sigue siendo válida y el
// caller lo reporta como éxito parcial.
type Result struct {
	Sale    *entity.Sale
	Invoice *entity.Invoice
}

// CreateSale ejecuta el checkout. Las violaciones de validación retornan antes
// de abrir la transacción; cualquier error dentro de ella revierte la venta y
// todos los descuentos de stock de este request como un solo conjunto.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.NormalizedSale) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		// Prechequeo línea por línea, separado del descuento: falla antes de
		// asignar consecutivo y produce un error con producto y faltante exactos
		// en lugar de un fallo genérico a mitad de los descuentos.
		lines := make([]snapshot.Line, 0, len(in.Items))
		for _, item := range in.Items {
			product, err := productRepo.GetByID(item.ID)
			if err != nil {
				return err
			}
			if product == nil || product.State != entity.LifecycleActive {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, item.ID)
			}
			if product.Stock < item.Quantity {
				return &domain.StockShortageError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}
			lines = append(lines, snapshot.Line{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
				Subtotal:  item.Price.Mul(decimal.NewFromInt(item.Quantity)),
			})
		}

		persisted, err := uc.persistSale(saleRepo, in, lines)
		if err != nil {
			return err
		}

		// Descuento por línea. La guarda condicional del ledger es la defensa
		// autoritativa: si otra venta se adelantó desde el prechequeo, el update
		// afecta 0 filas y toda la transacción (venta incluida) se revierte.
		for _, item := range in.Items {
			if _, err := uc.ledger.RecordMovementInTx(productRepo, movRepo, ledger.MovementInput{
				ProductID: item.ID,
				Direction: entity.MovementExit,
				Quantity:  item.Quantity,
				Reason:    "venta " + persisted.InvoiceNumber,
			}); err != nil {
				return err
			}
		}
		sale = persisted
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, mejor esfuerzo: un fallo aquí deja la venta confirmada y se
	// reporta como éxito parcial, nunca como error del request.
	result := &Result{Sale: sale}
	invoice, err := uc.invoices.CreateForSale(ctx, sale)
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("sale_id", sale.ID).
			Str("invoice_number", sale.InvoiceNumber).
			Msg("venta confirmada pero la generación de factura falló")
		return result, nil
	}
	result.Invoice = invoice
	return result, nil
}

// persistSale asigna consecutivo e inserta la venta. Si el insert choca con el
// UNIQUE de invoice_number (dos cajas derivaron el mismo número), re-deriva y
// reintenta; agotados los intentos, o si la derivación misma falla, usa el
// identificador de respaldo F-<epoch-millis>.
func (uc *CreateSaleUseCase) persistSale(
	saleRepo repository.SaleRepository,
	in dto.NormalizedSale,
	lines []snapshot.Line,
) (*entity.Sale, error) {
	snap := snapshot.New(snapshot.Customer{
		Name:     in.Customer.Name,
		Document: in.Customer.Document,
		Phone:    in.Customer.Phone,
		Type:     in.Customer.Type,
	}, lines)
	encoded, err := snap.Encode()
	if err != nil {
		return nil, err
	}

	subtotal := in.Total.Sub(in.Tax)
	if in.Subtotal != nil {
		subtotal = *in.Subtotal
	}

	for attempt := 0; ; attempt++ {
		var number string
		if attempt < maxNumberAttempts {
			number, err = uc.sequencer.Next(saleRepo)
			if err != nil {
				uc.log.Warn().Err(err).Msg("derivación de consecutivo falló, usando identificador de respaldo")
				number = uc.sequencer.Fallback()
			}
		} else {
			number = uc.sequencer.Fallback()
		}

		sale := &entity.Sale{
			InvoiceNumber: number,
			CustomerName:  in.Customer.Name,
			Subtotal:      subtotal,
			Tax:           in.Tax,
			Total:         in.Total,
			PaymentMethod: in.PaymentMethod,
			Status:        entity.SaleStatusCompleted,
			Snapshot:      encoded,
		}
		err = saleRepo.Create(sale)
		if errors.Is(err, domain.ErrDuplicate) && attempt < maxNumberAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sale, nil
	}
}

// validate revisa la forma del request antes de tocar la base de datos.
// El total del cliente se re-valida contra subtotal + impuesto recalculados de
// las líneas: el frontend no es frontera de confianza para montos.
func validate(in dto.NormalizedSale) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	if in.Customer.Name == "" {
		return fmt.Errorf("%w: falta el nombre del cliente", domain.ErrInvalidInput)
	}
	if !in.Total.IsPositive() {
		return fmt.Errorf("%w: el total debe ser positivo", domain.ErrInvalidInput)
	}
	if in.Tax.IsNegative() {
		return fmt.Errorf("%w: el impuesto no puede ser negativo", domain.ErrInvalidInput)
	}

	computed := decimal.Zero
	for _, item := range in.Items {
		if item.ID <= 0 {
			return fmt.Errorf("%w: id de producto inválido", domain.ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad inválida para el producto %d", domain.ErrInvalidInput, item.ID)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: precio inválido para el producto %d", domain.ErrInvalidInput, item.ID)
		}
		computed = computed.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	subtotal := computed
	if in.Subtotal != nil {
		subtotal = *in.Subtotal
		if !subtotal.Round(2).Equal(computed.Round(2)) {
			return fmt.Errorf("%w: el subtotal no corresponde a las líneas", domain.ErrInvalidInput)
		}
	}
	if !subtotal.Add(in.Tax).Round(2).Equal(in.Total.Round(2)) {
		return fmt.Errorf("%w: el total no corresponde a subtotal + impuesto", domain.ErrInvalidInput)
	}
	return nil
}
