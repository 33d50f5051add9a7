package orderbookusecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mocks"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	"github.com/batchauction/dexclient/log"
	orderbookrepository "github.com/batchauction/dexclient/orderbook/repository"
	"github.com/batchauction/dexclient/orderbook/types"
	orderbookusecase "github.com/batchauction/dexclient/orderbook/usecase"
	"github.com/batchauction/dexclient/orderbook/usecase/orderbooktesting"
)

type OrderbookUsecaseTestSuite struct {
	orderbooktesting.OrderbookTestHelper
}

func TestOrderbookUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(OrderbookUsecaseTestSuite))
}

func (s *OrderbookUsecaseTestSuite) newUsecase(opts ...orderbookusecase.Option) *orderbookusecase.OrderbookUseCaseImpl {
	return orderbookusecase.New(
		orderbooktesting.DefaultNetworkID,
		s.Contracts,
		s.BatchUsecase,
		orderbookrepository.New(),
		&log.NoOpLogger{},
		opts...,
	)
}

// blockingGate holds every transaction until release is closed.
type blockingGate struct {
	release chan struct{}
	err     error
}

func newBlockingGate() *blockingGate {
	return &blockingGate{release: make(chan struct{})}
}

func (g *blockingGate) confirm(ctx context.Context, txHash common.Hash) (domain.Receipt, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return domain.Receipt{}, ctx.Err()
	}
	if g.err != nil {
		return domain.Receipt{TxHash: txHash}, g.err
	}
	return domain.Receipt{TxHash: txHash, BlockNumber: 1, Status: domain.ReceiptStatusSuccessful}, nil
}

// batchStartTime is the wall clock start of the batch the helper starts at.
func (s *OrderbookUsecaseTestSuite) batchStartTime() time.Time {
	return domain.BatchStart(s.CurrentBatchID(), orderbooktesting.DefaultBatchTime)
}

func (s *OrderbookUsecaseTestSuite) TestPlaceAndCancelOrder() {
	usecase := s.newUsecase()
	ctx := context.Background()

	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, s.CurrentBatchID()+10), domain.TxOptions{})
	s.Require().NoError(err)

	orderID := orderbooktesting.Wait(&s.OrderbookTestHelper, tx)
	s.Require().Equal(uint32(0), orderID)

	orders := usecase.GetOrders(orderbooktesting.DefaultOwner)
	s.Require().Len(orders, 1)

	expected := s.NewOrder().AuctionElement(orderbooktesting.DefaultOwner, 0)
	s.Require().Equal(expected, orders[0])
	s.Require().Equal(domain.BatchID(5), orders[0].ValidFrom)
	s.Require().Equal(osmomath.NewInt(50), orders[0].RemainingAmount)

	classified, err := usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, s.batchStartTime())
	s.Require().NoError(err)
	s.Require().Len(classified.Active.Orders, 1)
	s.Require().Empty(classified.Closed.Orders)

	cancelTx, err := usecase.CancelOrder(ctx, orderbooktesting.DefaultOwner, orderID, domain.TxOptions{})
	s.Require().NoError(err)
	orderbooktesting.Wait(&s.OrderbookTestHelper, cancelTx)

	orders = usecase.GetOrders(orderbooktesting.DefaultOwner)
	s.Require().Len(orders, 1)
	s.Require().Equal(domain.BatchID(4), orders[0].ValidUntil)

	classified, err = usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, s.batchStartTime())
	s.Require().NoError(err)
	s.Require().Empty(classified.Active.Orders)
	s.Require().Len(classified.Closed.Orders, 1)
	s.Require().Equal(orderbookdomain.BucketClosed, types.Classify(orders[0].Order, s.CurrentBatchID()))
}

func (s *OrderbookUsecaseTestSuite) TestPlaceOrder_IndicesNeverReused() {
	usecase := s.newUsecase()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
		s.Require().NoError(err)
		s.Require().Equal(uint32(i), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))
	}

	cancelTx, err := usecase.CancelOrders(ctx, orderbooktesting.DefaultOwner, []uint32{0, 1}, domain.TxOptions{})
	s.Require().NoError(err)
	orderbooktesting.Wait(&s.OrderbookTestHelper, cancelTx)

	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(uint32(3), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))

	orders := usecase.GetOrders(orderbooktesting.DefaultOwner)
	s.Require().Len(orders, 4)
	for i, order := range orders {
		s.Require().Equal(uint32(i), order.ID)
	}
	s.Require().Equal(domain.BatchID(4), orders[0].ValidUntil)
	s.Require().Equal(domain.BatchID(4), orders[1].ValidUntil)
	s.Require().Equal(domain.BatchID(15), orders[2].ValidUntil)

	// owners have independent index spaces
	otherTx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.OtherOwner, 1, 1, 15), domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(uint32(0), orderbooktesting.Wait(&s.OrderbookTestHelper, otherTx))
}

func (s *OrderbookUsecaseTestSuite) TestCancelOrder_UnknownOrder() {
	usecase := s.newUsecase()

	tx, err := usecase.CancelOrder(context.Background(), orderbooktesting.DefaultOwner, 7, domain.TxOptions{})
	s.Require().NoError(err)
	orderbooktesting.Wait(&s.OrderbookTestHelper, tx)

	s.Require().Empty(usecase.GetOrders(orderbooktesting.DefaultOwner))
}

func (s *OrderbookUsecaseTestSuite) TestCancelOrder_AtFirstBatch() {
	s.SetCurrentBatchID(0)
	usecase := s.newUsecase()
	ctx := context.Background()

	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 10), domain.TxOptions{})
	s.Require().NoError(err)
	orderID := orderbooktesting.Wait(&s.OrderbookTestHelper, tx)

	cancelTx, err := usecase.CancelOrder(ctx, orderbooktesting.DefaultOwner, orderID, domain.TxOptions{})
	s.Require().NoError(err)
	orderbooktesting.Wait(&s.OrderbookTestHelper, cancelTx)

	orders := usecase.GetOrders(orderbooktesting.DefaultOwner)
	s.Require().Equal(domain.BatchID(0), orders[0].ValidUntil)
	s.Require().True(orders[0].RemainingAmount.IsZero())

	// no earlier batch to close at, the order is closed right away
	classified, err := usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, domain.BatchStart(0, orderbooktesting.DefaultBatchTime))
	s.Require().NoError(err)
	s.Require().Empty(classified.Active.Orders)
	s.Require().Len(classified.Closed.Orders, 1)
}

func (s *OrderbookUsecaseTestSuite) TestPlaceOrder_ValidityElapsed() {
	usecase := s.newUsecase()

	sent := false
	_, err := usecase.PlaceOrder(context.Background(), s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, s.CurrentBatchID()-1), domain.TxOptions{
		OnSentTransaction: func(common.Hash) { sent = true },
	})
	s.Require().ErrorAs(err, &types.InvalidOrderError{})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
	s.Require().False(sent)
	s.Require().Empty(usecase.GetPendingOrders(orderbooktesting.DefaultOwner))

	// an order valid in the running batch only is accepted
	tx, err := usecase.PlaceOrder(context.Background(), s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, s.CurrentBatchID()), domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(uint32(0), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))
}

func (s *OrderbookUsecaseTestSuite) TestPlaceOrder_ValidityElapsedAtConfirmation() {
	gate := newBlockingGate()
	usecase := s.newUsecase(orderbookusecase.WithConfirmationGate(gate.confirm))

	tx, err := usecase.PlaceOrder(context.Background(), s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, s.CurrentBatchID()), domain.TxOptions{})
	s.Require().NoError(err)

	// mined after the last valid batch
	s.SetCurrentBatchID(6)
	close(gate.release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _, err = tx.Wait(ctx)
	s.Require().ErrorAs(err, &types.InvalidOrderError{})
	s.Require().Empty(usecase.GetOrders(orderbooktesting.DefaultOwner))
	s.Require().Empty(usecase.GetPendingOrders(orderbooktesting.DefaultOwner))
}

func (s *OrderbookUsecaseTestSuite) TestPlaceOrder_Validation() {
	tests := []struct {
		name        string
		params      orderbookdomain.PlaceOrderParams
		strict      bool
		expectedErr any
	}{
		{
			name:        "zero owner",
			params:      s.PlaceOrderParams(common.Address{}, 100, 50, 15),
			expectedErr: &domain.InvalidAddressError{},
		},
		{
			name:        "negative buy amount",
			params:      s.PlaceOrderParams(orderbooktesting.DefaultOwner, -1, 50, 15),
			expectedErr: &domain.InvalidAmountError{},
		},
		{
			name: "missing sell amount",
			params: orderbookdomain.PlaceOrderParams{
				Owner:     orderbooktesting.DefaultOwner,
				BuyAmount: osmomath.NewInt(1),
			},
			expectedErr: &domain.InvalidAmountError{},
		},
		{
			name:        "unregistered token in strict mode",
			params:      s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15),
			strict:      true,
			expectedErr: &domain.UnknownTokenError{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var opts []orderbookusecase.Option
			if tt.strict {
				opts = append(opts, orderbookusecase.WithStrictTokenValidation(), orderbookusecase.WithRegisteredTokens([]common.Address{orderbooktesting.OWL}))
			}
			usecase := s.newUsecase(opts...)

			sent := false
			_, err := usecase.PlaceOrder(context.Background(), tt.params, domain.TxOptions{
				OnSentTransaction: func(common.Hash) { sent = true },
			})
			s.Require().ErrorAs(err, tt.expectedErr)
			s.Require().False(sent)
			s.Require().Empty(usecase.GetPendingOrders(tt.params.Owner))
		})
	}
}

func (s *OrderbookUsecaseTestSuite) TestPlaceOrder_StrictTokenValidationRegistered() {
	usecase := s.newUsecase(
		orderbookusecase.WithStrictTokenValidation(),
		orderbookusecase.WithRegisteredTokens([]common.Address{orderbooktesting.OWL, orderbooktesting.WETH}),
	)

	tx, err := usecase.PlaceOrder(context.Background(), s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(uint32(0), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))
}

func (s *OrderbookUsecaseTestSuite) TestUnsupportedNetwork() {
	usecase := orderbookusecase.New(orderbooktesting.UnsupportedNetworkID, s.Contracts, s.BatchUsecase, orderbookrepository.New(), &log.NoOpLogger{})
	ctx := context.Background()

	_, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.UnsupportedNetworkError{})

	_, err = usecase.CancelOrder(ctx, orderbooktesting.DefaultOwner, 0, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.UnsupportedNetworkError{})

	_, err = usecase.AddToken(ctx, orderbooktesting.OWL, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.UnsupportedNetworkError{})
}

func (s *OrderbookUsecaseTestSuite) TestTwoPhases() {
	gate := newBlockingGate()
	usecase := s.newUsecase(orderbookusecase.WithConfirmationGate(gate.confirm))
	ctx := context.Background()

	var sentHash common.Hash
	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{
		OnSentTransaction: func(txHash common.Hash) { sentHash = txHash },
	})
	s.Require().NoError(err)

	// phase one: sent but not final
	s.Require().Equal(tx.TxHash, sentHash)
	s.Require().NotEqual(common.Hash{}, sentHash)

	select {
	case <-tx.Done():
		s.FailNow("transaction resolved before confirmation")
	default:
	}

	s.Require().Empty(usecase.GetOrders(orderbooktesting.DefaultOwner))

	pendings := usecase.GetPendingOrders(orderbooktesting.DefaultOwner)
	s.Require().Len(pendings, 1)
	s.Require().Equal(tx.TxHash, pendings[0].TxHash)
	s.Require().Equal(domain.BatchEnd(15, orderbooktesting.DefaultBatchTime), pendings[0].ExpiresAt)

	classified, err := usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, s.batchStartTime())
	s.Require().NoError(err)
	s.Require().Empty(classified.Active.Orders)
	s.Require().Len(classified.Active.PendingOrders, 1)

	// phase two
	close(gate.release)
	s.Require().Equal(uint32(0), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))

	s.Require().Len(usecase.GetOrders(orderbooktesting.DefaultOwner), 1)
	s.Require().Empty(usecase.GetPendingOrders(orderbooktesting.DefaultOwner))

	classified, err = usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, s.batchStartTime())
	s.Require().NoError(err)
	s.Require().Len(classified.Active.Orders, 1)
	s.Require().Empty(classified.Active.PendingOrders)
}

func (s *OrderbookUsecaseTestSuite) TestPlaceOrder_BatchReadAtConfirmation() {
	gate := newBlockingGate()
	usecase := s.newUsecase(orderbookusecase.WithConfirmationGate(gate.confirm))

	tx, err := usecase.PlaceOrder(context.Background(), s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(domain.BatchID(5), usecase.GetPendingOrders(orderbooktesting.DefaultOwner)[0].ValidFrom)

	// mined in a later batch
	s.SetCurrentBatchID(6)
	close(gate.release)
	orderbooktesting.Wait(&s.OrderbookTestHelper, tx)

	s.Require().Equal(domain.BatchID(6), usecase.GetOrders(orderbooktesting.DefaultOwner)[0].ValidFrom)
}

func (s *OrderbookUsecaseTestSuite) TestConfirmationFailure() {
	gate := newBlockingGate()
	gate.err = errors.New("transaction reverted")
	usecase := s.newUsecase(orderbookusecase.WithConfirmationGate(gate.confirm))
	ctx := context.Background()

	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().NoError(err)

	tokenTx, err := usecase.AddToken(ctx, orderbooktesting.OWL, domain.TxOptions{})
	s.Require().NoError(err)

	close(gate.release)

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, _, err = tx.Wait(waitCtx)
	s.Require().ErrorIs(err, gate.err)
	_, _, err = tokenTx.Wait(waitCtx)
	s.Require().ErrorIs(err, gate.err)

	s.Require().Empty(usecase.GetOrders(orderbooktesting.DefaultOwner))
	s.Require().Empty(usecase.GetPendingOrders(orderbooktesting.DefaultOwner))
	s.Require().Equal(uint16(0), usecase.GetNumTokens())

	// a failed registration releases the address
	gate.err = nil
	tokenTx, err = usecase.AddToken(ctx, orderbooktesting.OWL, domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(uint16(0), orderbooktesting.Wait(&s.OrderbookTestHelper, tokenTx))
}

func (s *OrderbookUsecaseTestSuite) TestSubmissionOrderPerOwner() {
	gate := newBlockingGate()
	usecase := s.newUsecase(orderbookusecase.WithConfirmationGate(gate.confirm))
	ctx := context.Background()

	const numOrders = 10

	txs := make([]*domain.PendingTx[uint32], 0, numOrders)
	for i := 1; i <= numOrders; i++ {
		tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, int64(i), 15), domain.TxOptions{})
		s.Require().NoError(err)
		txs = append(txs, tx)
	}

	s.Require().Len(usecase.GetPendingOrders(orderbooktesting.DefaultOwner), numOrders)

	close(gate.release)

	for i, tx := range txs {
		s.Require().Equal(uint32(i), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))
	}

	orders := usecase.GetOrders(orderbooktesting.DefaultOwner)
	s.Require().Len(orders, numOrders)
	for i, order := range orders {
		s.Require().Equal(osmomath.NewInt(int64(i+1)), order.RemainingAmount)
	}
}

func (s *OrderbookUsecaseTestSuite) TestAddToken() {
	usecase := s.newUsecase()
	ctx := context.Background()

	for i, address := range []common.Address{orderbooktesting.OWL, orderbooktesting.WETH} {
		tx, err := usecase.AddToken(ctx, address, domain.TxOptions{})
		s.Require().NoError(err)
		s.Require().Equal(uint16(i), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))
	}

	s.Require().Equal(uint16(2), usecase.GetNumTokens())

	address, err := usecase.GetTokenAddressByID(1)
	s.Require().NoError(err)
	s.Require().Equal(orderbooktesting.WETH, address)

	id, err := usecase.GetTokenIDByAddress(orderbooktesting.OWL)
	s.Require().NoError(err)
	s.Require().Equal(uint16(0), id)

	_, err = usecase.GetTokenAddressByID(2)
	s.Require().ErrorAs(err, &domain.UnknownTokenError{})

	_, err = usecase.GetTokenIDByAddress(orderbooktesting.USDC)
	s.Require().ErrorAs(err, &domain.UnknownTokenError{})

	_, err = usecase.AddToken(ctx, orderbooktesting.OWL, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.AlreadyRegisteredError{})

	_, err = usecase.AddToken(ctx, common.Address{}, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.InvalidAddressError{})

	s.Require().Equal(uint64(1000), usecase.GetFeeDenominator())
}

func (s *OrderbookUsecaseTestSuite) TestAddToken_PendingRegistration() {
	gate := newBlockingGate()
	usecase := s.newUsecase(
		orderbookusecase.WithConfirmationGate(gate.confirm),
		orderbookusecase.WithMaxTokens(2),
	)
	ctx := context.Background()

	owlTx, err := usecase.AddToken(ctx, orderbooktesting.OWL, domain.TxOptions{})
	s.Require().NoError(err)

	// the address is reserved as soon as the registration is sent
	_, err = usecase.AddToken(ctx, orderbooktesting.OWL, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.AlreadyRegisteredError{})

	wethTx, err := usecase.AddToken(ctx, orderbooktesting.WETH, domain.TxOptions{})
	s.Require().NoError(err)

	_, err = usecase.AddToken(ctx, orderbooktesting.USDC, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.CapacityExceededError{})

	s.Require().Equal(uint16(0), usecase.GetNumTokens())

	close(gate.release)
	s.Require().Equal(uint16(0), orderbooktesting.Wait(&s.OrderbookTestHelper, owlTx))
	s.Require().Equal(uint16(1), orderbooktesting.Wait(&s.OrderbookTestHelper, wethTx))

	_, err = usecase.AddToken(ctx, orderbooktesting.USDC, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.CapacityExceededError{})
}

func (s *OrderbookUsecaseTestSuite) TestWithRegisteredTokens() {
	usecase := s.newUsecase(orderbookusecase.WithRegisteredTokens([]common.Address{
		orderbooktesting.OWL,
		orderbooktesting.WETH,
		orderbooktesting.OWL,
	}))

	s.Require().Equal(uint16(2), usecase.GetNumTokens())

	tx, err := usecase.AddToken(context.Background(), orderbooktesting.USDC, domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Equal(uint16(2), orderbooktesting.Wait(&s.OrderbookTestHelper, tx))
}

func (s *OrderbookUsecaseTestSuite) TestApplyFill() {
	now := time.Unix(1_700_000_000, 0)
	usecase := s.newUsecase(orderbookusecase.WithTimeSource(func() time.Time { return now }))
	ctx := context.Background()

	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().NoError(err)
	orderID := orderbooktesting.Wait(&s.OrderbookTestHelper, tx)

	s.SetCurrentBatchID(6)

	trade, err := usecase.ApplyFill(ctx, orderbooktesting.DefaultOwner, orderID, osmomath.NewInt(20), osmomath.NewInt(40))
	s.Require().NoError(err)
	s.Require().Equal(orderbookdomain.Trade{
		Owner:       orderbooktesting.DefaultOwner,
		OrderID:     orderID,
		BatchID:     5,
		BuyTokenID:  0,
		SellTokenID: 1,
		SellAmount:  osmomath.NewInt(20),
		BuyAmount:   osmomath.NewInt(40),
		Timestamp:   now,
	}, trade)

	s.Require().Equal(osmomath.NewInt(30), usecase.GetOrders(orderbooktesting.DefaultOwner)[0].RemainingAmount)

	_, err = usecase.ApplyFill(ctx, orderbooktesting.DefaultOwner, orderID, osmomath.NewInt(31), osmomath.NewInt(1))
	s.Require().ErrorAs(err, &types.InvalidFillError{})

	_, err = usecase.ApplyFill(ctx, orderbooktesting.DefaultOwner, 9, osmomath.NewInt(1), osmomath.NewInt(1))
	s.Require().ErrorAs(err, &types.OrderNotFoundError{})

	_, err = usecase.ApplyFill(ctx, orderbooktesting.DefaultOwner, orderID, osmomath.NewInt(-1), osmomath.NewInt(1))
	s.Require().ErrorAs(err, &domain.InvalidAmountError{})

	_, err = usecase.ApplyFill(ctx, orderbooktesting.DefaultOwner, orderID, osmomath.NewInt(30), osmomath.NewInt(60))
	s.Require().NoError(err)

	classified, err := usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, now)
	s.Require().NoError(err)
	s.Require().Len(classified.Closed.Orders, 1)
	s.Require().Len(classified.Fills, 2)
	s.Require().Equal(usecase.GetTrades(orderbooktesting.DefaultOwner), classified.Fills)

	// a filled order takes no more fills
	_, err = usecase.ApplyFill(ctx, orderbooktesting.DefaultOwner, orderID, osmomath.ZeroInt(), osmomath.ZeroInt())
	s.Require().ErrorAs(err, &types.InvalidFillError{})
}

func (s *OrderbookUsecaseTestSuite) TestClassifiedOrders_Liquidity() {
	usecase := s.newUsecase()

	usecase.RefreshOrders(orderbooktesting.DefaultOwner, []orderbookdomain.Order{
		s.NewOrder().WithValidUntil(domain.MaxBatchID).Unlimited().Order,
		s.NewOrder().WithValidUntil(20).Order,
		s.NewOrder().WithValidUntil(6).Order,
		s.NewOrder().WithRemainingAmount(0).Order,
	})

	classified, err := usecase.GetClassifiedOrders(context.Background(), orderbooktesting.DefaultOwner, s.batchStartTime())
	s.Require().NoError(err)

	s.Require().Equal(domain.BatchID(5), classified.CurrentBatchID)

	s.Require().Len(classified.Liquidity.Orders, 1)
	s.Require().Equal(uint32(0), classified.Liquidity.Orders[0].ID)

	s.Require().Len(classified.Active.Orders, 2)
	s.Require().Equal(uint32(2), classified.Active.Orders[0].ID)
	s.Require().Equal(uint32(1), classified.Active.Orders[1].ID)

	s.Require().Len(classified.Closed.Orders, 1)
	s.Require().Equal(uint32(3), classified.Closed.Orders[0].ID)
}

func (s *OrderbookUsecaseTestSuite) TestConcurrentOwners() {
	usecase := s.newUsecase()
	ctx := context.Background()

	const numOrders = 20

	var wg sync.WaitGroup
	for _, owner := range []common.Address{orderbooktesting.DefaultOwner, orderbooktesting.OtherOwner} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < numOrders; i++ {
				_, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(owner, 100, 50, 15), domain.TxOptions{})
				s.NoError(err)
			}
		}()
	}
	wg.Wait()

	usecase.Wait()

	s.Require().Len(usecase.GetOrders(orderbooktesting.DefaultOwner), numOrders)
	s.Require().Len(usecase.GetOrders(orderbooktesting.OtherOwner), numOrders)
}

func (s *OrderbookUsecaseTestSuite) TestRefreshOrders() {
	var (
		storedOwner  common.Address
		storedOrders []orderbookdomain.Order
	)

	repository := &mocks.OrdersRepositoryMock{
		StoreOrdersFunc: func(owner common.Address, orders []orderbookdomain.Order) {
			storedOwner = owner
			storedOrders = orders
		},
	}
	repository.WithGetOrdersFunc([]orderbookdomain.Order{
		s.NewOrder().Order,
		s.NewOrder().WithValidUntil(3).Order,
	})

	usecase := orderbookusecase.New(orderbooktesting.DefaultNetworkID, s.Contracts, s.BatchUsecase, repository, &log.NoOpLogger{})

	refreshed := []orderbookdomain.Order{s.NewOrder().Order}
	usecase.RefreshOrders(orderbooktesting.OtherOwner, refreshed)
	s.Require().Equal(orderbooktesting.OtherOwner, storedOwner)
	s.Require().Equal(refreshed, storedOrders)

	orders := usecase.GetOrders(orderbooktesting.DefaultOwner)
	s.Require().Equal([]orderbookdomain.AuctionElement{
		s.NewOrder().AuctionElement(orderbooktesting.DefaultOwner, 0),
		s.NewOrder().WithValidUntil(3).AuctionElement(orderbooktesting.DefaultOwner, 1),
	}, orders)
}

// chainOrders is an order reader serving fixed orders per owner.
type chainOrders struct {
	mu     sync.Mutex
	orders map[common.Address][]orderbookdomain.Order
	err    error
}

func (r *chainOrders) GetOrders(ctx context.Context, networkID uint64, owner common.Address) ([]orderbookdomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	return r.orders[owner], nil
}

func (r *chainOrders) set(owner common.Address, orders ...orderbookdomain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[owner] = orders
}

func (s *OrderbookUsecaseTestSuite) TestInvalidateOrders() {
	now := time.Unix(1_700_000_000, 0)
	reader := &chainOrders{orders: map[common.Address][]orderbookdomain.Order{}}
	usecase := s.newUsecase(
		orderbookusecase.WithOrderReader(reader),
		orderbookusecase.WithTimeSource(func() time.Time { return now }),
	)
	ctx := context.Background()

	reader.set(orderbooktesting.DefaultOwner,
		s.NewOrder().Order,
		s.NewOrder().WithValidUntil(20).Order,
	)
	s.Require().NoError(usecase.InvalidateOrders(ctx, orderbooktesting.DefaultOwner))

	s.Require().Equal([]orderbookdomain.AuctionElement{
		s.NewOrder().AuctionElement(orderbooktesting.DefaultOwner, 0),
		s.NewOrder().WithValidUntil(20).AuctionElement(orderbooktesting.DefaultOwner, 1),
	}, usecase.GetOrders(orderbooktesting.DefaultOwner))
	s.Require().Empty(usecase.GetTrades(orderbooktesting.DefaultOwner))

	// order 0 sold 20 of its 50 in batch 5 and a new order was placed
	s.SetCurrentBatchID(6)
	reader.set(orderbooktesting.DefaultOwner,
		s.NewOrder().WithRemainingAmount(30).Order,
		s.NewOrder().WithValidUntil(20).Order,
		s.NewOrder().WithValidUntil(30).Order,
	)
	s.Require().NoError(usecase.InvalidateOrders(ctx, orderbooktesting.DefaultOwner))

	s.Require().Len(usecase.GetOrders(orderbooktesting.DefaultOwner), 3)
	s.Require().Equal([]orderbookdomain.Trade{{
		Owner:       orderbooktesting.DefaultOwner,
		OrderID:     0,
		BatchID:     5,
		BuyTokenID:  0,
		SellTokenID: 1,
		SellAmount:  osmomath.NewInt(20),
		BuyAmount:   osmomath.NewInt(40),
		Timestamp:   now,
	}}, usecase.GetTrades(orderbooktesting.DefaultOwner))

	classified, err := usecase.GetClassifiedOrders(ctx, orderbooktesting.DefaultOwner, now)
	s.Require().NoError(err)
	s.Require().Len(classified.Fills, 1)

	// a failed read keeps the cached orders
	reader.err = errors.New("node unreachable")
	s.Require().ErrorIs(usecase.InvalidateOrders(ctx, orderbooktesting.DefaultOwner), reader.err)
	s.Require().Len(usecase.GetOrders(orderbooktesting.DefaultOwner), 3)
}

func (s *OrderbookUsecaseTestSuite) TestInvalidateOrders_WithoutReader() {
	usecase := s.newUsecase()
	ctx := context.Background()

	tx, err := usecase.PlaceOrder(ctx, s.PlaceOrderParams(orderbooktesting.DefaultOwner, 100, 50, 15), domain.TxOptions{})
	s.Require().NoError(err)
	orderbooktesting.Wait(&s.OrderbookTestHelper, tx)

	s.Require().NoError(usecase.InvalidateOrders(ctx, orderbooktesting.DefaultOwner))
	s.Require().Len(usecase.GetOrders(orderbooktesting.DefaultOwner), 1)
}
