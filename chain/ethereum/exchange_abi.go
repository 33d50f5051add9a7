package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BatchExchangeABI is the subset of the batch exchange contract interface used by the client.
const BatchExchangeABI = `[
	{"type":"function","name":"BATCH_TIME","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint32"}]},
	{"type":"function","name":"getCurrentBatchId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint32"}]},
	{"type":"function","name":"getSecondsRemainingInBatch","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getBalance","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"token","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getPendingDeposit","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"token","type":"address"}],"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint32"}]},
	{"type":"function","name":"getPendingWithdraw","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"token","type":"address"}],"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint32"}]},
	{"type":"function","name":"getEncodedUserOrders","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"elements","type":"bytes"}]},
	{"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"requestWithdraw","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"token","type":"address"}],"outputs":[]}
]`

const (
	methodBatchTime                  = "BATCH_TIME"
	methodGetCurrentBatchID          = "getCurrentBatchId"
	methodGetSecondsRemainingInBatch = "getSecondsRemainingInBatch"
	methodGetBalance                 = "getBalance"
	methodGetPendingDeposit          = "getPendingDeposit"
	methodGetPendingWithdraw         = "getPendingWithdraw"
	methodGetEncodedUserOrders       = "getEncodedUserOrders"
	methodDeposit                    = "deposit"
	methodRequestWithdraw            = "requestWithdraw"
	methodWithdraw                   = "withdraw"
)

var batchExchangeABI = mustParseABI(BatchExchangeABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse abi: %v", err))
	}
	return parsed
}
