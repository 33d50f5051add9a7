package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// dexclient_orderbook_usecase_submit_total
	//
	// counter that measures the number of order store operations acknowledged by the network
	//
	// Has the following labels:
	// * operation - placeOrder, cancelOrders or addToken
	SubmitMetricName = "dexclient_orderbook_usecase_submit_total"

	// dexclient_orderbook_usecase_apply_error_total
	//
	// counter that measures the number of acknowledged operations that failed to be applied
	//
	// Has the following labels:
	// * operation - placeOrder, cancelOrders or addToken
	ApplyErrorMetricName = "dexclient_orderbook_usecase_apply_error_total"

	// dexclient_orderbook_usecase_cancel_unknown_order_total
	//
	// counter that measures the number of cancellations targeting an order that does not exist
	CancelUnknownOrderMetricName = "dexclient_orderbook_usecase_cancel_unknown_order_total"

	// dexclient_orderbook_usecase_fill_total
	//
	// counter that measures the number of fills applied to orders
	FillMetricName = "dexclient_orderbook_usecase_fill_total"

	// dexclient_orderbook_usecase_chain_read_error_total
	//
	// counter that measures the number of failed reads of the orders of an owner from chain
	ChainReadErrorMetricName = "dexclient_orderbook_usecase_chain_read_error_total"

	SubmitCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SubmitMetricName,
			Help: "counter that measures the number of order store operations acknowledged by the network",
		},
		[]string{"operation"},
	)

	ApplyErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: ApplyErrorMetricName,
			Help: "counter that measures the number of acknowledged operations that failed to be applied",
		},
		[]string{"operation"},
	)

	CancelUnknownOrderCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: CancelUnknownOrderMetricName,
			Help: "counter that measures the number of cancellations targeting an order that does not exist",
		},
	)

	FillCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: FillMetricName,
			Help: "counter that measures the number of fills applied to orders",
		},
	)

	ChainReadErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: ChainReadErrorMetricName,
			Help: "counter that measures the number of failed reads of the orders of an owner from chain",
		},
	)
)

func init() {
	prometheus.MustRegister(SubmitCounter)
	prometheus.MustRegister(ApplyErrorCounter)
	prometheus.MustRegister(CancelUnknownOrderCounter)
	prometheus.MustRegister(FillCounter)
	prometheus.MustRegister(ChainReadErrorCounter)
}
