package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	batchusecase "github.com/batchauction/dexclient/batch/usecase"
	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/chain/simulated"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mocks"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/flux/usecase"
	"github.com/batchauction/dexclient/log"
)

type FluxUseCaseTestSuite struct {
	suite.Suite

	now       time.Time
	contracts *registry.ContractRegistry
	chain     *simulated.Chain
	fluxUC    mvc.FluxUsecase
}

func TestFluxUseCase(t *testing.T) {
	suite.Run(t, new(FluxUseCaseTestSuite))
}

const (
	networkID          uint64 = 1
	unsupportedNetwork uint64 = 42
	batchTime          uint64 = 300
)

var (
	owner = common.HexToAddress("0x1111111111111111111111111111111111111111")
	token = common.HexToAddress("0x2222222222222222222222222222222222222222")

	// t0 is the unix epoch, batch 0 starts at t0.
	t0 = time.Unix(0, 0)
)

func (s *FluxUseCaseTestSuite) SetupTest() {
	s.now = t0
	timeSource := func() time.Time { return s.now }

	s.contracts = registry.New(map[uint64]common.Address{
		networkID: common.HexToAddress("0x6f400810b62df8e13fded51be75ff5393eaa841f"),
	})

	s.chain = simulated.New(s.contracts, batchTime, &log.NoOpLogger{}, simulated.WithTimeSource(timeSource), simulated.WithManualMining())

	batchUC, err := batchusecase.NewBatchUsecase(s.chain, s.contracts, 0, &log.NoOpLogger{}, batchusecase.WithTimeSource(timeSource))
	s.Require().NoError(err)

	s.fluxUC = usecase.NewFluxUsecase(s.chain, batchUC, s.contracts, nil, &log.NoOpLogger{})

	s.Require().NoError(s.chain.Mint(networkID, token, owner, osmomath.NewInt(10_000)))
	s.Require().NoError(s.chain.Approve(networkID, token, owner, osmomath.NewInt(10_000)))
}

func (s *FluxUseCaseTestSuite) request(amount int64) domain.FluxRequest {
	return domain.FluxRequest{NetworkID: networkID, Owner: owner, Token: token, Amount: osmomath.NewInt(amount)}
}

func (s *FluxUseCaseTestSuite) mine(tx *domain.PendingTx[struct{}]) {
	s.chain.Mine()
	_, _, err := tx.Wait(context.Background())
	s.Require().NoError(err)
}

// A deposit of 1000 submitted at t0+10 is recorded in batch 0 and settled at t0+305.
func (s *FluxUseCaseTestSuite) TestDepositSettlementScenario() {
	ctx := context.Background()

	s.now = t0.Add(10 * time.Second)

	sentCalls := 0
	var sentHash common.Hash
	tx, err := s.fluxUC.Deposit(ctx, s.request(1_000), domain.TxOptions{
		OnSentTransaction: func(txHash common.Hash) {
			sentCalls++
			sentHash = txHash
		},
	})
	s.Require().NoError(err)

	// submission is signalled before the deposit is mined
	s.Require().Equal(1, sentCalls)
	s.Require().Equal(tx.TxHash, sentHash)

	s.mine(tx)
	s.Require().Equal(1, sentCalls)

	deposit, err := s.fluxUC.GetPendingDeposit(ctx, networkID, owner, token)
	s.Require().NoError(err)
	s.Require().Equal(domain.BatchID(0), deposit.BatchID)
	s.Require().Equal(osmomath.NewInt(1_000), deposit.Amount)

	state, err := s.fluxUC.GetBalanceState(ctx, networkID, owner, token)
	s.Require().NoError(err)
	s.Require().Equal(domain.BatchID(0), state.CurrentBatchID)
	s.Require().True(deposit.IsPending(state.CurrentBatchID))
	s.Require().True(state.Balance.IsZero())
	s.Require().Equal(osmomath.NewInt(1_000), state.EffectiveBalance)

	s.now = t0.Add(305 * time.Second)

	state, err = s.fluxUC.GetBalanceState(ctx, networkID, owner, token)
	s.Require().NoError(err)
	s.Require().Equal(domain.BatchID(1), state.CurrentBatchID)
	s.Require().True(state.PendingDeposit.IsSettled(state.CurrentBatchID))
	// the settled deposit is part of the balance and not counted twice
	s.Require().Equal(osmomath.NewInt(1_000), state.Balance)
	s.Require().Equal(osmomath.NewInt(1_000), state.EffectiveBalance)
}

func (s *FluxUseCaseTestSuite) TestWithdrawLifecycle() {
	ctx := context.Background()

	tx, err := s.fluxUC.Deposit(ctx, s.request(1_000), domain.TxOptions{})
	s.Require().NoError(err)
	s.mine(tx)

	s.now = s.now.Add(time.Duration(batchTime) * time.Second)

	// more than the balance may be requested
	tx, err = s.fluxUC.RequestWithdraw(ctx, s.request(2_000), domain.TxOptions{})
	s.Require().NoError(err)
	s.mine(tx)

	state, err := s.fluxUC.GetBalanceState(ctx, networkID, owner, token)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewInt(2_000), state.PendingWithdraw.Amount)
	s.Require().True(state.ClaimableWithdraw.IsZero())

	// finalizing in the same batch is rejected by the contract
	_, err = s.fluxUC.Withdraw(ctx, domain.FluxRequest{NetworkID: networkID, Owner: owner, Token: token}, domain.TxOptions{})
	s.Require().ErrorAs(err, &domain.NotYetSettledError{})

	s.now = s.now.Add(time.Duration(batchTime) * time.Second)

	state, err = s.fluxUC.GetBalanceState(ctx, networkID, owner, token)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewInt(2_000), state.ClaimableWithdraw)

	tx, err = s.fluxUC.Withdraw(ctx, domain.FluxRequest{NetworkID: networkID, Owner: owner, Token: token}, domain.TxOptions{})
	s.Require().NoError(err)
	s.mine(tx)

	balance, err := s.fluxUC.GetBalance(ctx, networkID, owner, token)
	s.Require().NoError(err)
	s.Require().True(balance.IsZero())
}

func (s *FluxUseCaseTestSuite) TestTransferRejected() {
	_, err := s.fluxUC.Deposit(context.Background(), s.request(20_000), domain.TxOptions{
		OnSentTransaction: func(common.Hash) {
			s.Fail("rejected operations must not be signalled as sent")
		},
	})
	s.Require().ErrorAs(err, &domain.TransferRejectedError{})
}

func (s *FluxUseCaseTestSuite) TestUnsetInputsReturnDefaults() {
	ctx := context.Background()

	tests := []struct {
		name  string
		owner common.Address
		token common.Address
	}{
		{name: "unset owner", token: token},
		{name: "unset token", owner: owner},
		{name: "both unset"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			// network is not checked either since no wallet is connected yet
			balance, err := s.fluxUC.GetBalance(ctx, unsupportedNetwork, tt.owner, tt.token)
			s.Require().NoError(err)
			s.Require().True(balance.IsZero())

			deposit, err := s.fluxUC.GetPendingDeposit(ctx, unsupportedNetwork, tt.owner, tt.token)
			s.Require().NoError(err)
			s.Require().Equal(domain.ZeroFlux(), deposit)

			withdraw, err := s.fluxUC.GetPendingWithdraw(ctx, unsupportedNetwork, tt.owner, tt.token)
			s.Require().NoError(err)
			s.Require().Equal(domain.ZeroFlux(), withdraw)
		})
	}
}

func (s *FluxUseCaseTestSuite) TestValidation() {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         domain.FluxRequest
		expectedErr error
	}{
		{
			name:        "negative amount",
			req:         s.request(-1),
			expectedErr: domain.InvalidAmountError{},
		},
		{
			name:        "nil amount",
			req:         domain.FluxRequest{NetworkID: networkID, Owner: owner, Token: token},
			expectedErr: domain.InvalidAmountError{},
		},
		{
			name:        "unset owner",
			req:         domain.FluxRequest{NetworkID: networkID, Token: token, Amount: osmomath.NewInt(1)},
			expectedErr: domain.InvalidAddressError{},
		},
		{
			name:        "unsupported network",
			req:         domain.FluxRequest{NetworkID: unsupportedNetwork, Owner: owner, Token: token, Amount: osmomath.NewInt(1)},
			expectedErr: domain.UnsupportedNetworkError{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.fluxUC.Deposit(ctx, tt.req, domain.TxOptions{})
			s.Require().Error(err)
			s.Require().IsType(tt.expectedErr, err)

			_, err = s.fluxUC.RequestWithdraw(ctx, tt.req, domain.TxOptions{})
			s.Require().Error(err)
			s.Require().IsType(tt.expectedErr, err)
		})
	}

	// zero is a valid amount
	_, err := s.fluxUC.Deposit(ctx, s.request(0), domain.TxOptions{})
	s.Require().NoError(err)
}

func (s *FluxUseCaseTestSuite) TestSubmissionOrderAndGasPrice() {
	var (
		mu        sync.Mutex
		submitted []domain.Operation
	)

	chainClient := &mocks.ChainClientMock{
		SubmitFunc: func(ctx context.Context, op domain.Operation) (*domain.PendingTx[struct{}], error) {
			mu.Lock()
			defer mu.Unlock()
			submitted = append(submitted, op)
			return domain.NewPendingTx[struct{}](common.BigToHash(big.NewInt(int64(len(submitted))))), nil
		},
	}

	batchUC := &mocks.BatchUsecaseMock{}
	batchUC.WithCurrentBatchID(0)

	fetchedPrice := big.NewInt(5_000_000_000)
	fluxUC := usecase.NewFluxUsecase(chainClient, batchUC, s.contracts, func(ctx context.Context, networkID uint64) (*big.Int, error) {
		return fetchedPrice, nil
	}, &log.NoOpLogger{})

	for i := int64(1); i <= 20; i++ {
		_, err := fluxUC.Deposit(context.Background(), s.request(i), domain.TxOptions{})
		s.Require().NoError(err)
	}

	hint := big.NewInt(1)
	_, err := fluxUC.RequestWithdraw(context.Background(), s.request(1), domain.TxOptions{GasPrice: hint})
	s.Require().NoError(err)

	s.Require().Len(submitted, 21)
	for i := 0; i < 20; i++ {
		s.Require().Equal(osmomath.NewInt(int64(i+1)), submitted[i].Amount)
		s.Require().Equal(fetchedPrice, submitted[i].GasPrice)
	}
	s.Require().Equal(hint, submitted[20].GasPrice)

	// a failing gas price fetcher lets the node decide
	fluxUC = usecase.NewFluxUsecase(chainClient, batchUC, s.contracts, func(ctx context.Context, networkID uint64) (*big.Int, error) {
		return nil, errors.New("gas station unavailable")
	}, &log.NoOpLogger{})
	_, err = fluxUC.Deposit(context.Background(), s.request(1), domain.TxOptions{})
	s.Require().NoError(err)
	s.Require().Nil(submitted[21].GasPrice)
}
