package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// tickbook_orderbook_usecase_operation_total
	//
	// counter that measures the number of committed order engine operations
	//
	// Has the following labels:
	// * operation - the engine operation, e.g. limit_order
	OperationMetricName = "tickbook_orderbook_usecase_operation_total"

	// tickbook_orderbook_usecase_operation_error_total
	//
	// counter that measures the number of order engine operations that failed and were rolled back
	//
	// Has the following labels:
	// * operation - the engine operation
	// * kind - the error kind, e.g. insufficient_liquidity
	OperationErrorMetricName = "tickbook_orderbook_usecase_operation_error_total"

	// tickbook_orderbook_usecase_epoch_started_total
	//
	// counter that measures the number of tick epochs started, i.e. ticks receiving liquidity while empty
	EpochStartedMetricName = "tickbook_orderbook_usecase_epoch_started_total"

	// tickbook_orderbook_usecase_tick_drained_total
	//
	// counter that measures the number of trades that fully drained a tick
	TickDrainedMetricName = "tickbook_orderbook_usecase_tick_drained_total"

	OperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: OperationMetricName,
			Help: "counter that measures the number of committed order engine operations",
		},
		[]string{"operation"},
	)

	OperationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: OperationErrorMetricName,
			Help: "counter that measures the number of order engine operations that failed and were rolled back",
		},
		[]string{"operation", "kind"},
	)

	EpochStartedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: EpochStartedMetricName,
			Help: "counter that measures the number of tick epochs started",
		},
	)

	TickDrainedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: TickDrainedMetricName,
			Help: "counter that measures the number of trades that fully drained a tick",
		},
	)
)

func init() {
	prometheus.MustRegister(OperationCounter)
	prometheus.MustRegister(OperationErrorCounter)
	prometheus.MustRegister(EpochStartedCounter)
	prometheus.MustRegister(TickDrainedCounter)
}
