package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// dexclient_batch_usecase_batch_time_fetch_total
	//
	// counter that measures the number of batch time reads issued to the chain.
	// Each network is expected to be read once per process lifetime.
	//
	// Has the following labels:
	// * network - the id of the network
	BatchTimeFetchMetricName = "dexclient_batch_usecase_batch_time_fetch_total"

	// dexclient_batch_usecase_batch_time_fetch_error_total
	//
	// counter that measures the number of failed batch time reads.
	//
	// Has the following labels:
	// * network - the id of the network
	BatchTimeFetchErrorMetricName = "dexclient_batch_usecase_batch_time_fetch_error_total"

	BatchTimeFetchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: BatchTimeFetchMetricName,
			Help: "counter that measures the number of batch time reads issued to the chain",
		},
		[]string{"network"},
	)

	BatchTimeFetchErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: BatchTimeFetchErrorMetricName,
			Help: "counter that measures the number of failed batch time reads",
		},
		[]string{"network"},
	)
)

func init() {
	prometheus.MustRegister(BatchTimeFetchCounter)
	prometheus.MustRegister(BatchTimeFetchErrorCounter)
}
