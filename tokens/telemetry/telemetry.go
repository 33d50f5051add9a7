package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// dexclient_tokens_usecase_subscriber_panic_total
	//
	// counter that measures the number of token list subscribers that panicked while being notified
	SubscriberPanicMetricName = "dexclient_tokens_usecase_subscriber_panic_total"

	// dexclient_tokens_usecase_corrupted_list_total
	//
	// counter that measures the number of persisted token lists that could not be read or decoded
	//
	// Has the following labels:
	// * network - the network id of the list
	// * list - service or user
	CorruptedListMetricName = "dexclient_tokens_usecase_corrupted_list_total"

	// dexclient_tokens_usecase_persist_error_total
	//
	// counter that measures the number of errors writing a token list to storage
	//
	// Has the following labels:
	// * network - the network id of the list
	// * list - service or user
	PersistErrorMetricName = "dexclient_tokens_usecase_persist_error_total"

	// dexclient_tokens_usecase_token_list_fetch_total
	//
	// counter that measures the number of remote token list fetches
	//
	// Has the following labels:
	// * changed - whether the list content changed since the previous fetch
	TokenListFetchMetricName = "dexclient_tokens_usecase_token_list_fetch_total"

	// dexclient_tokens_usecase_token_list_fetch_error_total
	//
	// counter that measures the number of failed remote token list fetches
	TokenListFetchErrorMetricName = "dexclient_tokens_usecase_token_list_fetch_error_total"

	SubscriberPanicCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SubscriberPanicMetricName,
			Help: "counter that measures the number of token list subscribers that panicked while being notified",
		},
	)

	CorruptedListCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: CorruptedListMetricName,
			Help: "counter that measures the number of persisted token lists that could not be read or decoded",
		},
		[]string{"network", "list"},
	)

	PersistErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: PersistErrorMetricName,
			Help: "counter that measures the number of errors writing a token list to storage",
		},
		[]string{"network", "list"},
	)

	TokenListFetchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: TokenListFetchMetricName,
			Help: "counter that measures the number of remote token list fetches",
		},
		[]string{"changed"},
	)

	TokenListFetchErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: TokenListFetchErrorMetricName,
			Help: "counter that measures the number of failed remote token list fetches",
		},
	)
)

func init() {
	prometheus.MustRegister(SubscriberPanicCounter)
	prometheus.MustRegister(CorruptedListCounter)
	prometheus.MustRegister(PersistErrorCounter)
	prometheus.MustRegister(TokenListFetchCounter)
	prometheus.MustRegister(TokenListFetchErrorCounter)
}
