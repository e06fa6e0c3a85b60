package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/warchest/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording document store activity", func() {
			metrics.RecordDocumentLoad("pipeline")
			metrics.RecordDocumentSave("pipeline")
			metrics.RecordCorruptDocument("feed")
			metrics.RecordLockWait(0.002)
			metrics.RecordLockTimeout()

			Convey("Then the registry gathers without error", func() {
				families, err := metrics.Registry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)

				names := make(map[string]bool, len(families))
				for _, mf := range families {
					names[mf.GetName()] = true
				}
				So(names["warchest_state_document_loads_total"], ShouldBeTrue)
				So(names["warchest_state_document_corrupt_total"], ShouldBeTrue)
				So(names["warchest_state_lock_timeouts_total"], ShouldBeTrue)
			})
		})

		Convey("When recording pipeline and ledger activity", func() {
			metrics.RecordOpportunityAdded()
			metrics.RecordOpportunityMove("ready")
			metrics.UpdatePipelineCount("detected", 4)
			metrics.UpdatePipelineValue(1250)
			metrics.RecordFeedEntry()
			metrics.RecordFeedTrimmed(2)
			metrics.RecordIncome("trading", 50)
			metrics.UpdateBalance(550)

			Convey("Then the business metric families exist", func() {
				families, err := metrics.Registry().Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, mf := range families {
					names[mf.GetName()] = true
				}
				So(names["warchest_pipeline_opportunities_added_total"], ShouldBeTrue)
				So(names["warchest_pipeline_opportunity_moves_total"], ShouldBeTrue)
				So(names["warchest_ledger_income_total"], ShouldBeTrue)
				So(names["warchest_ledger_balance"], ShouldBeTrue)
			})
		})

		Convey("When writing the textfile export", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "warchest.prom")

			metrics.RecordOpportunityAdded()
			err := metrics.WriteTextfile(path)

			Convey("Then the file exists and holds text-format metrics", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "warchest_pipeline_opportunities_added_total")
			})
		})
	})
}

func TestManagerIsolation(t *testing.T) {
	Convey("Given a dedicated manager", t, func() {
		m := metrics.NewManager(metrics.WithNamespace("testns"))

		Convey("When writing its textfile export", func() {
			path := filepath.Join(t.TempDir(), "testns.prom")
			err := m.WriteTextfileTo(path)

			Convey("Then it succeeds independently of the global registry", func() {
				So(err, ShouldBeNil)
				_, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
			})
		})
	})
}
