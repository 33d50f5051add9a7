package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// dexclient_flux_usecase_submit_total
	//
	// counter that measures the number of deposit and withdraw operations accepted by the network
	//
	// Has the following labels:
	// * kind - deposit, requestWithdraw or withdraw
	SubmitMetricName = "dexclient_flux_usecase_submit_total"

	// dexclient_flux_usecase_submit_error_total
	//
	// counter that measures the number of deposit and withdraw operations rejected before acceptance
	//
	// Has the following labels:
	// * kind - deposit, requestWithdraw or withdraw
	SubmitErrorMetricName = "dexclient_flux_usecase_submit_error_total"

	SubmitCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SubmitMetricName,
			Help: "counter that measures the number of deposit and withdraw operations accepted by the network",
		},
		[]string{"kind"},
	)

	SubmitErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SubmitErrorMetricName,
			Help: "counter that measures the number of deposit and withdraw operations rejected before acceptance",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(SubmitCounter)
	prometheus.MustRegister(SubmitErrorCounter)
}
