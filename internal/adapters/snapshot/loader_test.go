package snapshot_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/okian/hrm/internal/adapters/repository"
	"github.com/okian/hrm/internal/adapters/snapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employees.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a bulk-load file with comments, blanks and a bad salary", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()
		path := writeFile(t, "# comment\n\nAlice,500\nBob,600,manager,Alice\nCarol,notanumber\n")

		res, err := snapshot.Load(ctx, path, dir)

		Convey("Then the valid lines are added", func() {
			So(err, ShouldBeNil)
			So(res.Added, ShouldEqual, 2)
			So(res.Skipped, ShouldEqual, 2)
			So(dir.NumberOfEmployees(ctx), ShouldEqual, 2)
			So(dir.NumberOfManagers(ctx), ShouldEqual, 1)
		})

		Convey("And the Carol line is reported", func() {
			So(res.Diagnostics, ShouldHaveLength, 1)
			So(res.Diagnostics[0].Line, ShouldEqual, 5)
			So(errors.Is(res.Diagnostics[0], snapshot.ErrInvalidSalary), ShouldBeTrue)
			So(res.Messages()[0], ShouldStartWith, "line 5: ")
		})

		Convey("And Bob manages Alice", func() {
			n, err := dir.NumberOfEmployeesManagedByManager(ctx, "Bob")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})
	})

	Convey("Given a path that does not exist", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()

		res, err := snapshot.Load(ctx, filepath.Join(t.TempDir(), "missing.txt"), dir)

		Convey("Then the load fails as unreadable and adds nothing", func() {
			So(errors.Is(err, snapshot.ErrUnreadable), ShouldBeTrue)
			So(res.Added, ShouldEqual, 0)
			So(dir.NumberOfEmployees(ctx), ShouldEqual, 0)
		})
	})
}

func TestRead_LineErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"missing name", ",100", snapshot.ErrMissingName},
		{"missing salary", "Dave", snapshot.ErrMissingSalary},
		{"empty salary", "Dave,", snapshot.ErrMissingSalary},
		{"non-numeric salary", "Dave,12k", snapshot.ErrInvalidSalary},
		{"bad marker", "Dave,100,boss,Alice", snapshot.ErrBadMarker},
		{"empty managed name", "Dave,100,manager,Alice,", snapshot.ErrEmptyManagedName},
		{"unknown managed name", "Dave,100,manager,Alice,Zed", snapshot.ErrUnknownEmployee},
		{"duplicate name", "Alice,700", repository.ErrDuplicateName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			dir := repository.NewDirectory()
			if _, err := dir.AddEmployee(ctx, "Alice", 500); err != nil {
				t.Fatalf("seed: %v", err)
			}

			res, err := snapshot.Read(ctx, strings.NewReader(tc.line+"\n"), dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Added != 0 {
				t.Errorf("expected 0 added, got %d", res.Added)
			}
			if len(res.Diagnostics) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(res.Diagnostics))
			}
			if !errors.Is(res.Diagnostics[0], tc.want) {
				t.Errorf("expected %v, got %v", tc.want, res.Diagnostics[0])
			}
			if n := dir.NumberOfEmployees(ctx); n != 1 {
				t.Errorf("expected directory unchanged, got %d records", n)
			}
		})
	}
}

func TestRead_Managers(t *testing.T) {
	Convey("Given employees followed by manager lines", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()
		input := strings.Join([]string{
			"  Alice , 500 ",
			"Bert,550\r",
			"Bob,600,manager,Alice,Bert",
			"Eve,900,manager",
			"Mallory,800,manager,Ghost",
		}, "\n")

		res, err := snapshot.Read(ctx, strings.NewReader(input), dir)

		Convey("Then fields are trimmed and managers get their employees", func() {
			So(err, ShouldBeNil)
			So(res.Added, ShouldEqual, 4)
			names, err := dir.ManagedEmployees(ctx, "Bob")
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"Alice", "Bert"})
		})

		Convey("And a manager with no employees is allowed", func() {
			n, err := dir.NumberOfEmployeesManagedByManager(ctx, "Eve")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})

		Convey("And a manager line naming an unknown employee commits nothing", func() {
			So(dir.Exists(ctx, "Mallory"), ShouldBeFalse)
			So(res.Diagnostics, ShouldHaveLength, 1)
			So(res.Diagnostics[0].Line, ShouldEqual, 5)
			So(res.Diagnostics[0].Text, ShouldEqual, "Mallory,800,manager,Ghost")
		})
	})

	Convey("Given a custom manager token", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()

		res, err := snapshot.Read(ctx, strings.NewReader("Alice,1\nBob,2,lead,Alice\n"), dir, snapshot.WithManagerToken("lead"))

		Convey("Then the token tags manager lines", func() {
			So(err, ShouldBeNil)
			So(res.Added, ShouldEqual, 2)
			So(dir.NumberOfManagers(ctx), ShouldEqual, 1)
		})
	})
}

func TestRead_LongLines(t *testing.T) {
	Convey("Given a line far longer than a scanner buffer between valid lines", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()
		input := "Alice,500\n" + strings.Repeat("x", 70000) + ",1\nBob,600\n"

		res, err := snapshot.Read(ctx, strings.NewReader(input), dir)

		Convey("Then the long line is an ordinary record and loading continues", func() {
			So(err, ShouldBeNil)
			So(res.Added, ShouldEqual, 3)
			So(res.Diagnostics, ShouldBeEmpty)
			So(dir.Exists(ctx, "Bob"), ShouldBeTrue)
			e, err := dir.Lookup(ctx, "Bob")
			So(err, ShouldBeNil)
			So(e.Number, ShouldEqual, 3)
		})
	})

	Convey("Given a long line with a bad salary", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()
		input := "Alice,500\nCarol," + strings.Repeat("9x", 40000) + "\nBob,600\n"

		res, err := snapshot.Read(ctx, strings.NewReader(input), dir)

		Convey("Then only that line is rejected", func() {
			So(err, ShouldBeNil)
			So(res.Added, ShouldEqual, 2)
			So(res.Diagnostics, ShouldHaveLength, 1)
			So(res.Diagnostics[0].Line, ShouldEqual, 2)
			So(errors.Is(res.Diagnostics[0], snapshot.ErrInvalidSalary), ShouldBeTrue)
		})
	})
}

func TestRead_Failures(t *testing.T) {
	Convey("Given a source that fails after some valid lines", t, func() {
		ctx := context.Background()
		dir := repository.NewDirectory()
		failing := io.MultiReader(strings.NewReader("Alice,500\nBob,600\n"), iotest.ErrReader(errors.New("disk gone")))

		res, err := snapshot.Read(ctx, failing, dir)

		Convey("Then the load is unreadable and nothing is committed", func() {
			So(errors.Is(err, snapshot.ErrUnreadable), ShouldBeTrue)
			So(res.Added, ShouldEqual, 0)
			So(dir.NumberOfEmployees(ctx), ShouldEqual, 0)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		dir := repository.NewDirectory()

		res, err := snapshot.Read(ctx, strings.NewReader("Alice,500\n"), dir)

		Convey("Then no line is committed", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(res.Added, ShouldEqual, 0)
			So(dir.NumberOfEmployees(ctx), ShouldEqual, 0)
		})
	})

	Convey("Given a context cancelled after the first record", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		target := &cancelAfterAdd{Directory: repository.NewDirectory(), cancel: cancel}

		res, err := snapshot.Read(ctx, strings.NewReader("Alice,500\nBob,600\nCarol,700\n"), target)

		Convey("Then the partial result is returned with the context error", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "line 2:")
			So(res.Added, ShouldEqual, 1)
			So(target.NumberOfEmployees(context.Background()), ShouldEqual, 1)
		})
	})
}

// cancelAfterAdd cancels its context once the first employee is added.
type cancelAfterAdd struct {
	*repository.Directory
	cancel context.CancelFunc
}

func (c *cancelAfterAdd) AddEmployee(ctx context.Context, name string, salary int) (int, error) {
	n, err := c.Directory.AddEmployee(ctx, name, salary)
	c.cancel()
	return n, err
}
