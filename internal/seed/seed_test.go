package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/warchest/internal/app"
	"github.com/okian/warchest/internal/seed"
	"github.com/okian/warchest/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestRun(t *testing.T) {
	Convey("Given an empty state directory", t, func() {
		ctx := context.Background()
		dir := filepath.Join(t.TempDir(), "state")

		Convey("When seeding it", func() {
			err := seed.Run(ctx, &seed.Config{
				StateDir:      dir,
				Target:        2399,
				Opportunities: 6,
				FeedEntries:   10,
				Balance:       320,
			})

			Convey("Then the documents hold the seeded data", func() {
				So(err, ShouldBeNil)

				svc := service.New(service.WithStateDir(dir), service.WithTarget(2399))
				So(svc.Start(ctx), ShouldBeNil)
				defer svc.Stop()

				doc, loadErr := svc.Pipeline().All(ctx)
				So(loadErr, ShouldBeNil)
				total := 0
				for _, n := range doc.Counts() {
					total += n
				}
				So(total, ShouldEqual, 6)

				entries, feedErr := svc.Feed().All(ctx)
				So(feedErr, ShouldBeNil)
				So(entries, ShouldHaveLength, 10)

				sum, sumErr := svc.Ledger().Summary(ctx)
				So(sumErr, ShouldBeNil)
				So(sum.Balance, ShouldEqual, 320)

				statuses, agentErr := svc.Agents().All(ctx)
				So(agentErr, ShouldBeNil)
				So(statuses, ShouldContainKey, "job-scanner")
				So(statuses, ShouldContainKey, "trading-scout")
			})
		})
	})
}
