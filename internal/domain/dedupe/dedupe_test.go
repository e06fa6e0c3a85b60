package dedupe_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/domain/dedupe"
	"github.com/okian/warchest/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestSeenAndRecord(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		ctx := context.Background()
		reg := dedupe.New(docstore.New(t.TempDir()))

		Convey("When an id is checked for the first time", func() {
			seen, err := reg.SeenAndRecord(ctx, "job-123")

			Convey("Then it is reported new and recorded", func() {
				So(err, ShouldBeNil)
				So(seen, ShouldBeFalse)

				size, sizeErr := reg.Size(ctx)
				So(sizeErr, ShouldBeNil)
				So(size, ShouldEqual, 1)
			})

			Convey("And the same id is seen on the second check", func() {
				seen, err = reg.SeenAndRecord(ctx, "job-123")
				So(err, ShouldBeNil)
				So(seen, ShouldBeTrue)
			})
		})

		Convey("When an id is unrecorded", func() {
			_, err := reg.SeenAndRecord(ctx, "job-123")
			So(err, ShouldBeNil)
			So(reg.Unrecord(ctx, "job-123"), ShouldBeNil)

			Convey("Then it counts as new again", func() {
				seen, seenErr := reg.SeenAndRecord(ctx, "job-123")
				So(seenErr, ShouldBeNil)
				So(seen, ShouldBeFalse)
			})
		})

		Convey("When unrecording an id that was never seen", func() {
			Convey("Then it is a no-op", func() {
				So(reg.Unrecord(ctx, "ghost"), ShouldBeNil)
			})
		})
	})
}

func TestCacheTrim(t *testing.T) {
	Convey("Given a registry capped at three ids", t, func() {
		ctx := context.Background()
		reg := dedupe.New(docstore.New(t.TempDir()), dedupe.WithCacheSize(3))

		for i := 0; i < 5; i++ {
			seen, err := reg.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i))
			So(err, ShouldBeNil)
			So(seen, ShouldBeFalse)
		}

		Convey("Then only the newest three survive", func() {
			size, err := reg.Size(ctx)
			So(err, ShouldBeNil)
			So(size, ShouldEqual, 3)

			seen, err := reg.SeenAndRecord(ctx, "id-0")
			So(err, ShouldBeNil)
			So(seen, ShouldBeFalse) // trimmed away, so new again

			seen, err = reg.SeenAndRecord(ctx, "id-4")
			So(err, ShouldBeNil)
			So(seen, ShouldBeTrue)
		})
	})
}
