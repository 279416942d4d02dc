package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "materiality")
				So(testutil.CollectAndCount(registry), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
			})
		})

		Convey("When empty option values are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "materiality")
				So(manager.subsystem, ShouldEqual, "chart")
				So(manager.histogramBuckets, ShouldResemble, latencyBuckets)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When a plot is recorded", func() {
			before := testutil.ToFloat64(globalManager.pointsPlotted)
			skipped := testutil.ToFloat64(globalManager.inputsSkipped)
			RecordPlot(12, 2, 3, 0.4)

			Convey("Then the pipeline counters advance", func() {
				So(testutil.ToFloat64(globalManager.pointsPlotted)-before, ShouldEqual, 12)
				So(testutil.ToFloat64(globalManager.inputsSkipped)-skipped, ShouldEqual, 2)
			})
		})

		Convey("When submissions are recorded by outcome", func() {
			accepted := globalManager.submissions.WithLabelValues("accepted")
			before := testutil.ToFloat64(accepted)
			RecordSubmission("accepted")
			RecordSubmission("duplicate")

			Convey("Then each outcome has its own series", func() {
				So(testutil.ToFloat64(accepted)-before, ShouldEqual, 1)
			})
		})

		Convey("When gauges are updated", func() {
			UpdateQueueSize(7)
			UpdateQueueCapacity(100)
			UpdateWorkerCount(4)
			UpdateTotalCharts(9)

			Convey("Then they hold the latest value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 100)
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.totalCharts), ShouldEqual, 9)
			})
		})

		Convey("When the remaining recorders are called", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordChartStored()
					RecordChartEvicted()
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordWorkerProcessingLatency(1.5)
					RecordWorkerError()
					RecordHTTPRequest("/plot", "POST", "200")
					RecordHTTPRequestDuration("/plot", "POST", "200", 3)
					RecordErrorByComponent("queue", "closed")
					RecordErrorByType("validation", "warning")
					RecordErrorByEndpoint("/plot", "POST", "bad_request")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(10)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When the registry is requested", func() {
			Convey("Then it is the custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}

func TestConcurrentRecording(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(globalManager.chartsStored)
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				RecordChartStored()
			}()
		}
		wg.Wait()

		So(testutil.ToFloat64(globalManager.chartsStored)-before, ShouldEqual, 50)
	})
}
