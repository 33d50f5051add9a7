package orderbookusecase

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	"github.com/batchauction/dexclient/domain/workerpool"
	"github.com/batchauction/dexclient/log"
	"github.com/batchauction/dexclient/orderbook/telemetry"
	"github.com/batchauction/dexclient/orderbook/types"
)

// DefaultMaxTokens is the token capacity used when none is configured.
const DefaultMaxTokens uint16 = 10000

const (
	operationPlaceOrder   = "placeOrder"
	operationCancelOrders = "cancelOrders"
	operationAddToken     = "addToken"
)

// ConfirmationGate blocks until the transaction txHash is final and returns its receipt.
// Mutations are applied only once the gate returns without error.
type ConfirmationGate func(ctx context.Context, txHash common.Hash) (domain.Receipt, error)

// tokenRegistrationKey is the queue key serializing token registrations.
// No owner can hold the zero address.
var tokenRegistrationKey = common.Address{}

type OrderbookUseCaseImpl struct {
	networkID    uint64
	contracts    *registry.ContractRegistry
	batchUsecase mvc.BatchUsecase
	repository   orderbookdomain.OrdersRepository
	// orderReader is nil when orders only live in the local store.
	orderReader orderbookdomain.OrderReader

	maxTokens             uint16
	strictTokenValidation bool

	tokensMu         sync.RWMutex
	tokenAddresses   []common.Address
	tokenIDByAddress map[common.Address]uint16
	// reservedTokens are submitted registrations not applied yet.
	reservedTokens map[common.Address]struct{}

	pendingMu     sync.RWMutex
	pendingOrders map[common.Address][]orderbookdomain.PendingOrder

	// mutations of the same owner are applied in submission order
	ownerQueue *workerpool.SerialQueue[common.Address]
	confirm    ConfirmationGate

	nonceMu     sync.Mutex
	nonce       uint64
	blockNumber uint64

	now    domain.TimeSource
	logger log.Logger
}

var _ mvc.OrderBookUsecase = &OrderbookUseCaseImpl{}

// Option configures the order store.
type Option func(*OrderbookUseCaseImpl)

// WithMaxTokens sets the maximum number of registered tokens.
func WithMaxTokens(maxTokens uint16) Option {
	return func(o *OrderbookUseCaseImpl) {
		if maxTokens > 0 {
			o.maxTokens = maxTokens
		}
	}
}

// WithStrictTokenValidation rejects placements referencing unregistered token ids.
func WithStrictTokenValidation() Option {
	return func(o *OrderbookUseCaseImpl) {
		o.strictTokenValidation = true
	}
}

// WithRegisteredTokens registers addresses, in id order, at construction.
func WithRegisteredTokens(addresses []common.Address) Option {
	return func(o *OrderbookUseCaseImpl) {
		for _, address := range addresses {
			if _, ok := o.tokenIDByAddress[address]; ok {
				continue
			}
			o.tokenIDByAddress[address] = uint16(len(o.tokenAddresses))
			o.tokenAddresses = append(o.tokenAddresses, address)
		}
	}
}

// WithConfirmationGate sets the gate awaited before applying every mutation.
func WithConfirmationGate(confirm ConfirmationGate) Option {
	return func(o *OrderbookUseCaseImpl) {
		o.confirm = confirm
	}
}

// WithOrderReader sets the reader the orders of an owner are reloaded from on invalidation.
func WithOrderReader(reader orderbookdomain.OrderReader) Option {
	return func(o *OrderbookUseCaseImpl) {
		o.orderReader = reader
	}
}

// WithTimeSource overrides the wall clock.
func WithTimeSource(now domain.TimeSource) Option {
	return func(o *OrderbookUseCaseImpl) {
		o.now = now
	}
}

// New creates the order store of the exchange deployed on networkID.
func New(
	networkID uint64,
	contracts *registry.ContractRegistry,
	batchUsecase mvc.BatchUsecase,
	repository orderbookdomain.OrdersRepository,
	logger log.Logger,
	opts ...Option,
) *OrderbookUseCaseImpl {
	o := &OrderbookUseCaseImpl{
		networkID:    networkID,
		contracts:    contracts,
		batchUsecase: batchUsecase,
		repository:   repository,

		maxTokens: DefaultMaxTokens,

		tokenAddresses:   []common.Address{},
		tokenIDByAddress: map[common.Address]uint16{},
		reservedTokens:   map[common.Address]struct{}{},

		pendingOrders: map[common.Address][]orderbookdomain.PendingOrder{},

		ownerQueue: workerpool.NewSerialQueue[common.Address](),

		now:    time.Now,
		logger: logger,
	}
	o.confirm = o.confirmImmediately

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// NetworkID implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) NetworkID() uint64 {
	return o.networkID
}

// PlaceOrder implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) PlaceOrder(ctx context.Context, params orderbookdomain.PlaceOrderParams, opts domain.TxOptions) (*domain.PendingTx[uint32], error) {
	contractAddress, err := o.contracts.GetContractAddress(o.networkID)
	if err != nil {
		return nil, err
	}

	if err := o.validatePlaceOrder(params); err != nil {
		return nil, err
	}

	currentBatchID, err := o.batchUsecase.GetCurrentBatchID(ctx, o.networkID)
	if err != nil {
		return nil, err
	}
	if err := validateValidity(currentBatchID, params.ValidUntil); err != nil {
		return nil, err
	}

	batchTime, err := o.batchUsecase.GetBatchTime(ctx, o.networkID)
	if err != nil {
		return nil, err
	}

	txHash := o.nextTxHash(contractAddress, operationPlaceOrder, params.Owner)

	pending := orderbookdomain.PendingOrder{
		Owner:     params.Owner,
		TxHash:    txHash,
		Order:     newOrder(params, currentBatchID),
		ExpiresAt: domain.BatchEnd(params.ValidUntil, batchTime),
	}
	o.addPendingOrder(pending)

	pendingTx := domain.NewPendingTx[uint32](txHash)

	// phase one: the submission is acknowledged before the mutation is applied
	telemetry.SubmitCounter.WithLabelValues(operationPlaceOrder).Inc()
	opts.NotifySent(txHash)

	applyCtx := context.WithoutCancel(ctx)
	o.ownerQueue.Submit(params.Owner, func() {
		orderID, receipt, err := o.applyPlaceOrder(applyCtx, params, txHash)
		if err != nil {
			o.applyFailed(operationPlaceOrder, txHash, err)
		}
		pendingTx.Resolve(orderID, receipt, err)
	})

	return pendingTx, nil
}

// applyPlaceOrder appends the order once txHash is confirmed. The pending entry is
// dropped in the same step, so readers see the order either pending or confirmed.
func (o *OrderbookUseCaseImpl) applyPlaceOrder(ctx context.Context, params orderbookdomain.PlaceOrderParams, txHash common.Hash) (uint32, domain.Receipt, error) {
	receipt, err := o.confirm(ctx, txHash)
	if err != nil {
		o.removePendingOrder(params.Owner, txHash)
		return 0, receipt, err
	}

	// the batch id is read when the transaction is applied
	batchID, err := o.batchUsecase.GetCurrentBatchID(ctx, o.networkID)
	if err != nil {
		o.removePendingOrder(params.Owner, txHash)
		return 0, receipt, err
	}
	if err := validateValidity(batchID, params.ValidUntil); err != nil {
		o.removePendingOrder(params.Owner, txHash)
		return 0, receipt, err
	}

	o.pendingMu.Lock()
	orderID := o.repository.AppendOrder(params.Owner, newOrder(params, batchID))
	o.removePendingOrderLocked(params.Owner, txHash)
	o.pendingMu.Unlock()

	o.logger.Debug("placed order", zap.Stringer("owner", params.Owner), zap.Uint32("order_id", orderID), zap.Stringer("tx_hash", txHash))

	return orderID, receipt, nil
}

// CancelOrder implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) CancelOrder(ctx context.Context, owner common.Address, orderID uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	return o.CancelOrders(ctx, owner, []uint32{orderID}, opts)
}

// CancelOrders implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) CancelOrders(ctx context.Context, owner common.Address, orderIDs []uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	contractAddress, err := o.contracts.GetContractAddress(o.networkID)
	if err != nil {
		return nil, err
	}

	txHash := o.nextTxHash(contractAddress, operationCancelOrders, owner)
	pendingTx := domain.NewPendingTx[struct{}](txHash)

	ids := make([]uint32, len(orderIDs))
	copy(ids, orderIDs)

	telemetry.SubmitCounter.WithLabelValues(operationCancelOrders).Inc()
	opts.NotifySent(txHash)

	applyCtx := context.WithoutCancel(ctx)
	o.ownerQueue.Submit(owner, func() {
		receipt, err := o.confirm(applyCtx, txHash)
		if err != nil {
			o.applyFailed(operationCancelOrders, txHash, err)
			pendingTx.Resolve(struct{}{}, receipt, err)
			return
		}

		currentBatchID, err := o.batchUsecase.GetCurrentBatchID(applyCtx, o.networkID)
		if err != nil {
			o.applyFailed(operationCancelOrders, txHash, err)
			pendingTx.Resolve(struct{}{}, receipt, err)
			return
		}

		for _, id := range ids {
			order, ok := o.repository.GetOrder(owner, id)
			if !ok {
				telemetry.CancelUnknownOrderCounter.Inc()
				continue
			}

			o.repository.UpdateOrder(owner, id, cancelOrder(order, currentBatchID))
		}

		pendingTx.Resolve(struct{}{}, receipt, nil)
	})

	return pendingTx, nil
}

// AddToken implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) AddToken(ctx context.Context, address common.Address, opts domain.TxOptions) (*domain.PendingTx[uint16], error) {
	contractAddress, err := o.contracts.GetContractAddress(o.networkID)
	if err != nil {
		return nil, err
	}

	if address == (common.Address{}) {
		return nil, domain.InvalidAddressError{Address: address.Hex()}
	}

	if err := o.reserveToken(address); err != nil {
		return nil, err
	}

	txHash := o.nextTxHash(contractAddress, operationAddToken, address)
	pendingTx := domain.NewPendingTx[uint16](txHash)

	telemetry.SubmitCounter.WithLabelValues(operationAddToken).Inc()
	opts.NotifySent(txHash)

	applyCtx := context.WithoutCancel(ctx)
	o.ownerQueue.Submit(tokenRegistrationKey, func() {
		receipt, err := o.confirm(applyCtx, txHash)
		if err != nil {
			o.tokensMu.Lock()
			delete(o.reservedTokens, address)
			o.tokensMu.Unlock()

			o.applyFailed(operationAddToken, txHash, err)
			pendingTx.Resolve(0, receipt, err)
			return
		}

		o.tokensMu.Lock()
		delete(o.reservedTokens, address)
		tokenID := uint16(len(o.tokenAddresses))
		o.tokenAddresses = append(o.tokenAddresses, address)
		o.tokenIDByAddress[address] = tokenID
		o.tokensMu.Unlock()

		o.logger.Info("registered token", zap.Uint64("network_id", o.networkID), zap.Stringer("address", address), zap.Uint16("token_id", tokenID))

		pendingTx.Resolve(tokenID, receipt, nil)
	})

	return pendingTx, nil
}

// GetOrders implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetOrders(owner common.Address) []orderbookdomain.AuctionElement {
	orders := o.repository.GetOrders(owner)

	result := make([]orderbookdomain.AuctionElement, 0, len(orders))
	for i, order := range orders {
		result = append(result, orderbookdomain.AuctionElement{
			Owner: owner,
			ID:    uint32(i),
			Order: order,
		})
	}
	return result
}

// GetPendingOrders implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetPendingOrders(owner common.Address) []orderbookdomain.PendingOrder {
	o.pendingMu.RLock()
	defer o.pendingMu.RUnlock()

	return o.pendingOrdersLocked(owner)
}

func (o *OrderbookUseCaseImpl) pendingOrdersLocked(owner common.Address) []orderbookdomain.PendingOrder {
	pendings := o.pendingOrders[owner]
	result := make([]orderbookdomain.PendingOrder, len(pendings))
	copy(result, pendings)
	return result
}

// GetTrades implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetTrades(owner common.Address) []orderbookdomain.Trade {
	return o.repository.GetTrades(owner)
}

// GetClassifiedOrders implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetClassifiedOrders(ctx context.Context, owner common.Address, now time.Time) (types.ClassifiedOrders, error) {
	currentBatchID, err := o.batchUsecase.GetCurrentBatchID(ctx, o.networkID)
	if err != nil {
		return types.ClassifiedOrders{}, err
	}

	// orders and pendings are read together so a placement being applied is seen exactly once
	o.pendingMu.RLock()
	orders := o.GetOrders(owner)
	pendings := o.pendingOrdersLocked(owner)
	o.pendingMu.RUnlock()

	return types.ClassifyOrders(orders, pendings, o.GetTrades(owner), now, currentBatchID), nil
}

// InvalidateOrders implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) InvalidateOrders(ctx context.Context, owner common.Address) error {
	if o.orderReader == nil {
		return nil
	}

	if _, err := o.contracts.GetContractAddress(o.networkID); err != nil {
		return err
	}

	resultChan := workerpool.Enqueue(o.ownerQueue, owner, workerpool.Job[struct{}]{
		Task: func() (struct{}, error) {
			return struct{}{}, o.reloadOrders(ctx, owner)
		},
	})

	select {
	case result := <-resultChan:
		return result.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// reloadOrders replaces the orders of owner with the ones read from chain.
// Remaining amounts that decreased since the previous read are recorded as fills.
func (o *OrderbookUseCaseImpl) reloadOrders(ctx context.Context, owner common.Address) error {
	orders, err := o.orderReader.GetOrders(ctx, o.networkID, owner)
	if err != nil {
		telemetry.ChainReadErrorCounter.Inc()
		return err
	}

	currentBatchID, err := o.batchUsecase.GetCurrentBatchID(ctx, o.networkID)
	if err != nil {
		return err
	}

	trades := settledTrades(owner, o.repository.GetOrders(owner), orders, settledBatchID(currentBatchID), o.now())

	o.repository.StoreOrders(owner, orders)
	for _, trade := range trades {
		o.repository.AppendTrade(owner, trade)
		telemetry.FillCounter.Inc()
	}

	o.logger.Debug("reloaded orders", zap.Stringer("owner", owner), zap.Int("num_orders", len(orders)), zap.Int("num_fills", len(trades)))

	return nil
}

// RefreshOrders implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) RefreshOrders(owner common.Address, orders []orderbookdomain.Order) {
	o.repository.StoreOrders(owner, orders)
}

// ApplyFill implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) ApplyFill(ctx context.Context, owner common.Address, orderID uint32, sellAmount, buyAmount osmomath.Int) (orderbookdomain.Trade, error) {
	if sellAmount.IsNil() || sellAmount.IsNegative() {
		return orderbookdomain.Trade{}, domain.InvalidAmountError{Amount: sellAmount.String()}
	}
	if buyAmount.IsNil() || buyAmount.IsNegative() {
		return orderbookdomain.Trade{}, domain.InvalidAmountError{Amount: buyAmount.String()}
	}

	resultChan := workerpool.Enqueue(o.ownerQueue, owner, workerpool.Job[orderbookdomain.Trade]{
		Task: func() (orderbookdomain.Trade, error) {
			return o.applyFill(context.WithoutCancel(ctx), owner, orderID, sellAmount, buyAmount)
		},
	})

	select {
	case result := <-resultChan:
		return result.Result, result.Err
	case <-ctx.Done():
		return orderbookdomain.Trade{}, ctx.Err()
	}
}

func (o *OrderbookUseCaseImpl) applyFill(ctx context.Context, owner common.Address, orderID uint32, sellAmount, buyAmount osmomath.Int) (orderbookdomain.Trade, error) {
	order, ok := o.repository.GetOrder(owner, orderID)
	if !ok {
		return orderbookdomain.Trade{}, types.OrderNotFoundError{Owner: owner, OrderID: orderID}
	}

	if order.IsFilled() || sellAmount.GT(order.RemainingAmount) {
		return orderbookdomain.Trade{}, types.InvalidFillError{OrderID: orderID, SellAmount: sellAmount, RemainingAmount: order.RemainingAmount}
	}

	currentBatchID, err := o.batchUsecase.GetCurrentBatchID(ctx, o.networkID)
	if err != nil {
		return orderbookdomain.Trade{}, err
	}

	order.RemainingAmount = order.RemainingAmount.Sub(sellAmount)
	o.repository.UpdateOrder(owner, orderID, order)

	trade := orderbookdomain.Trade{
		Owner:       owner,
		OrderID:     orderID,
		BatchID:     settledBatchID(currentBatchID),
		BuyTokenID:  order.BuyTokenID,
		SellTokenID: order.SellTokenID,
		SellAmount:  sellAmount,
		BuyAmount:   buyAmount,
		Timestamp:   o.now(),
	}
	o.repository.AppendTrade(owner, trade)

	telemetry.FillCounter.Inc()

	return trade, nil
}

// GetNumTokens implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetNumTokens() uint16 {
	o.tokensMu.RLock()
	defer o.tokensMu.RUnlock()

	return uint16(len(o.tokenAddresses))
}

// GetTokenAddressByID implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetTokenAddressByID(id uint16) (common.Address, error) {
	o.tokensMu.RLock()
	defer o.tokensMu.RUnlock()

	if int(id) >= len(o.tokenAddresses) {
		return common.Address{}, domain.UnknownTokenError{TokenID: id}
	}
	return o.tokenAddresses[id], nil
}

// GetTokenIDByAddress implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetTokenIDByAddress(address common.Address) (uint16, error) {
	o.tokensMu.RLock()
	defer o.tokensMu.RUnlock()

	id, ok := o.tokenIDByAddress[address]
	if !ok {
		return 0, domain.UnknownTokenError{Address: address.Hex()}
	}
	return id, nil
}

// GetFeeDenominator implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetFeeDenominator() uint64 {
	return orderbookdomain.FeeDenominator
}

// Wait blocks until every submitted mutation has been applied.
func (o *OrderbookUseCaseImpl) Wait() {
	o.ownerQueue.Wait()
}

func (o *OrderbookUseCaseImpl) validatePlaceOrder(params orderbookdomain.PlaceOrderParams) error {
	if params.Owner == (common.Address{}) {
		return domain.InvalidAddressError{Address: params.Owner.Hex()}
	}
	if params.BuyAmount.IsNil() || params.BuyAmount.IsNegative() {
		return domain.InvalidAmountError{Amount: params.BuyAmount.String()}
	}
	if params.SellAmount.IsNil() || params.SellAmount.IsNegative() {
		return domain.InvalidAmountError{Amount: params.SellAmount.String()}
	}

	if !o.strictTokenValidation {
		return nil
	}

	numTokens := o.GetNumTokens()
	for _, tokenID := range []uint16{params.BuyTokenID, params.SellTokenID} {
		if tokenID >= numTokens {
			return domain.UnknownTokenError{TokenID: tokenID}
		}
	}
	return nil
}

func (o *OrderbookUseCaseImpl) reserveToken(address common.Address) error {
	o.tokensMu.Lock()
	defer o.tokensMu.Unlock()

	if id, ok := o.tokenIDByAddress[address]; ok {
		return domain.AlreadyRegisteredError{Address: address, TokenID: id}
	}
	if _, ok := o.reservedTokens[address]; ok {
		return domain.AlreadyRegisteredError{Address: address, TokenID: uint16(len(o.tokenAddresses))}
	}
	if len(o.tokenAddresses)+len(o.reservedTokens) >= int(o.maxTokens) {
		return domain.CapacityExceededError{MaxTokens: o.maxTokens}
	}

	o.reservedTokens[address] = struct{}{}
	return nil
}

func (o *OrderbookUseCaseImpl) addPendingOrder(pending orderbookdomain.PendingOrder) {
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()

	o.pendingOrders[pending.Owner] = append(o.pendingOrders[pending.Owner], pending)
}

func (o *OrderbookUseCaseImpl) removePendingOrder(owner common.Address, txHash common.Hash) {
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()

	o.removePendingOrderLocked(owner, txHash)
}

func (o *OrderbookUseCaseImpl) removePendingOrderLocked(owner common.Address, txHash common.Hash) {
	pendings := o.pendingOrders[owner]
	for i, pending := range pendings {
		if pending.TxHash == txHash {
			pendings = append(pendings[:i:i], pendings[i+1:]...)
			break
		}
	}

	if len(pendings) == 0 {
		delete(o.pendingOrders, owner)
		return
	}
	o.pendingOrders[owner] = pendings
}

func (o *OrderbookUseCaseImpl) applyFailed(operation string, txHash common.Hash, err error) {
	telemetry.ApplyErrorCounter.WithLabelValues(operation).Inc()
	o.logger.Error("failed to apply transaction", zap.String("operation", operation), zap.Stringer("tx_hash", txHash), zap.Error(err))
}

// nextTxHash derives a unique transaction hash for a local submission.
func (o *OrderbookUseCaseImpl) nextTxHash(contractAddress common.Address, operation string, sender common.Address) common.Hash {
	o.nonceMu.Lock()
	o.nonce++
	nonce := o.nonce
	o.nonceMu.Unlock()

	var networkID, nonceBz [8]byte
	binary.BigEndian.PutUint64(networkID[:], o.networkID)
	binary.BigEndian.PutUint64(nonceBz[:], nonce)

	return crypto.Keccak256Hash(networkID[:], contractAddress.Bytes(), []byte(operation), sender.Bytes(), nonceBz[:])
}

// confirmImmediately is the default gate: local transactions are final as soon as they are applied.
func (o *OrderbookUseCaseImpl) confirmImmediately(ctx context.Context, txHash common.Hash) (domain.Receipt, error) {
	o.nonceMu.Lock()
	o.blockNumber++
	blockNumber := o.blockNumber
	o.nonceMu.Unlock()

	return domain.Receipt{
		TxHash:      txHash,
		BlockNumber: blockNumber,
		Status:      domain.ReceiptStatusSuccessful,
	}, nil
}

// settledBatchID is the batch whose fills are settled while currentBatchID runs.
func settledBatchID(currentBatchID domain.BatchID) domain.BatchID {
	if currentBatchID == 0 {
		return 0
	}
	return currentBatchID - 1
}

// settledTrades returns a fill for every order of previous whose remaining amount decreased in current.
// Orders are matched by index and must keep their token pair and price.
func settledTrades(owner common.Address, previous, current []orderbookdomain.Order, batchID domain.BatchID, now time.Time) []orderbookdomain.Trade {
	var trades []orderbookdomain.Trade
	for i := 0; i < len(previous) && i < len(current); i++ {
		before, after := previous[i], current[i]
		if !samePlacement(before, after) || before.RemainingAmount.IsNil() || after.RemainingAmount.IsNil() {
			continue
		}
		if !after.RemainingAmount.LT(before.RemainingAmount) {
			continue
		}

		sellAmount := before.RemainingAmount.Sub(after.RemainingAmount)
		buyAmount := osmomath.ZeroInt()
		if after.PriceDenominator.IsPositive() {
			buyAmount = sellAmount.Mul(after.PriceNumerator).Quo(after.PriceDenominator)
		}

		trades = append(trades, orderbookdomain.Trade{
			Owner:       owner,
			OrderID:     uint32(i),
			BatchID:     batchID,
			BuyTokenID:  after.BuyTokenID,
			SellTokenID: after.SellTokenID,
			SellAmount:  sellAmount,
			BuyAmount:   buyAmount,
			Timestamp:   now,
		})
	}
	return trades
}

func samePlacement(a, b orderbookdomain.Order) bool {
	if a.BuyTokenID != b.BuyTokenID || a.SellTokenID != b.SellTokenID || a.ValidFrom != b.ValidFrom {
		return false
	}
	if a.PriceNumerator.IsNil() || a.PriceDenominator.IsNil() || b.PriceNumerator.IsNil() || b.PriceDenominator.IsNil() {
		return false
	}
	return a.PriceNumerator.Equal(b.PriceNumerator) && a.PriceDenominator.Equal(b.PriceDenominator)
}

// cancelOrder closes order at the end of the batch before currentBatchID.
// The first batch has no earlier batch, so the order keeps nothing to sell instead.
func cancelOrder(order orderbookdomain.Order, currentBatchID domain.BatchID) orderbookdomain.Order {
	if currentBatchID == 0 {
		order.ValidUntil = 0
		order.RemainingAmount = osmomath.ZeroInt()
		return order
	}
	order.ValidUntil = currentBatchID - 1
	return order
}

func validateValidity(currentBatchID, validUntil domain.BatchID) error {
	if validUntil < currentBatchID {
		return types.InvalidOrderError{Reason: fmt.Sprintf("valid until batch %d precedes current batch %d", validUntil, currentBatchID)}
	}
	return nil
}

func newOrder(params orderbookdomain.PlaceOrderParams, validFrom domain.BatchID) orderbookdomain.Order {
	return orderbookdomain.Order{
		BuyTokenID:       params.BuyTokenID,
		SellTokenID:      params.SellTokenID,
		ValidFrom:        validFrom,
		ValidUntil:       params.ValidUntil,
		PriceNumerator:   params.BuyAmount,
		PriceDenominator: params.SellAmount,
		RemainingAmount:  params.SellAmount,
	}
}
