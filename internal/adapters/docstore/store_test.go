package docstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type testDoc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestStoreLoadSave(t *testing.T) {
	Convey("Given a store in a temp directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		store := docstore.New(dir)

		Convey("When saving and loading a document", func() {
			in := testDoc{Name: "pipeline", Items: []string{"a", "b"}}
			So(store.Save(ctx, "test", &in), ShouldBeNil)

			var out testDoc
			err := store.Load(ctx, "test", &out)

			Convey("Then the round trip preserves the content", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, in)
			})

			Convey("Then the file is indented JSON with a trailing newline", func() {
				data, readErr := os.ReadFile(filepath.Join(dir, "test.json"))
				So(readErr, ShouldBeNil)
				So(strings.HasSuffix(string(data), "\n"), ShouldBeTrue)
				So(string(data), ShouldContainSubstring, "  \"name\"")
			})
		})

		Convey("When loading a document that was never saved", func() {
			var out testDoc
			err := store.Load(ctx, "missing", &out)

			Convey("Then it reports ErrNotInitialized and leaves the value untouched", func() {
				So(errors.Is(err, docstore.ErrNotInitialized), ShouldBeTrue)
				So(out.Name, ShouldBeBlank)
			})

			Convey("And LoadOrDefault treats it as the zero document", func() {
				So(store.LoadOrDefault(ctx, "missing", &out), ShouldBeNil)
				So(out.Items, ShouldBeNil)
			})
		})

		Convey("When the backing file holds garbage", func() {
			So(os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644), ShouldBeNil)

			var out testDoc
			err := store.Load(ctx, "broken", &out)

			Convey("Then it reports ErrCorrupt, distinct from not-initialized", func() {
				So(errors.Is(err, docstore.ErrCorrupt), ShouldBeTrue)
				So(errors.Is(err, docstore.ErrNotInitialized), ShouldBeFalse)
			})

			Convey("And LoadOrDefault degrades to the zero document", func() {
				So(store.LoadOrDefault(ctx, "broken", &out), ShouldBeNil)
				So(out.Name, ShouldBeBlank)
			})
		})
	})
}

func TestStoreUpdate(t *testing.T) {
	Convey("Given a store with a saved document", t, func() {
		ctx := context.Background()
		store := docstore.New(t.TempDir())

		seed := testDoc{Name: "seed", Items: []string{"x"}}
		So(store.Save(ctx, "doc", &seed), ShouldBeNil)

		Convey("When updating it", func() {
			var doc testDoc
			err := store.Update(ctx, "doc", &doc, func() error {
				doc.Items = append(doc.Items, "y")
				return nil
			})

			Convey("Then the mutation sees the loaded state and persists", func() {
				So(err, ShouldBeNil)

				var out testDoc
				So(store.Load(ctx, "doc", &out), ShouldBeNil)
				So(out.Items, ShouldResemble, []string{"x", "y"})
			})
		})

		Convey("When the mutate callback reports no change", func() {
			before, _ := os.ReadFile(filepath.Join(store.Dir(), "doc.json"))

			var doc testDoc
			err := store.Update(ctx, "doc", &doc, func() error {
				doc.Name = "should not be written"
				return docstore.ErrNoChange
			})

			Convey("Then nothing is written", func() {
				So(err, ShouldBeNil)
				after, _ := os.ReadFile(filepath.Join(store.Dir(), "doc.json"))
				So(string(after), ShouldEqual, string(before))
			})
		})

		Convey("When the mutate callback fails", func() {
			boom := errors.New("boom")

			var doc testDoc
			err := store.Update(ctx, "doc", &doc, func() error { return boom })

			Convey("Then the error surfaces and the document is untouched", func() {
				So(errors.Is(err, boom), ShouldBeTrue)

				var out testDoc
				So(store.Load(ctx, "doc", &out), ShouldBeNil)
				So(out.Name, ShouldEqual, "seed")
			})
		})

		Convey("When updating a document that does not exist yet", func() {
			var doc testDoc
			err := store.Update(ctx, "fresh", &doc, func() error {
				doc.Name = "first"
				return nil
			})

			Convey("Then the mutation starts from the zero document", func() {
				So(err, ShouldBeNil)

				var out testDoc
				So(store.Load(ctx, "fresh", &out), ShouldBeNil)
				So(out.Name, ShouldEqual, "first")
				So(out.Items, ShouldBeNil)
			})
		})
	})
}

func TestStoreLockTimeout(t *testing.T) {
	Convey("Given a document whose lock is held by someone else", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		store := docstore.New(dir,
			docstore.WithLockTimeout(150*time.Millisecond),
			docstore.WithLockRetry(10*time.Millisecond),
		)

		So(store.Save(ctx, "busy", &testDoc{Name: "busy"}), ShouldBeNil)

		// Simulate a crashed writer: grab the sidecar lock on a separate
		// descriptor and never release it during the attempt.
		holder := flock.New(filepath.Join(dir, "busy.lock"))
		So(holder.Lock(), ShouldBeNil)
		defer func() { _ = holder.Unlock() }()

		Convey("When a save needs the exclusive lock", func() {
			err := store.Save(ctx, "busy", &testDoc{Name: "late"})

			Convey("Then it fails with ErrLockTimeout instead of hanging", func() {
				So(errors.Is(err, docstore.ErrLockTimeout), ShouldBeTrue)
			})
		})

		Convey("When a shared read needs the lock", func() {
			var out testDoc
			err := store.Load(ctx, "busy", &out)

			Convey("Then it also times out with ErrLockTimeout", func() {
				So(errors.Is(err, docstore.ErrLockTimeout), ShouldBeTrue)
			})
		})
	})
}
