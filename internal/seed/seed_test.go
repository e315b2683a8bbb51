package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/hrm/pkg/logger"
)

func init() {
	_ = logger.Init(logger.WithOutput(io.Discard))
}

func TestGenerate(t *testing.T) {
	Convey("Given a seed configuration", t, func() {
		ctx := context.Background()
		cfg := &Config{Employees: 12, Managers: 3, PerManager: 5, ManagerToken: "manager"}

		Convey("When generating people", func() {
			people, err := Generate(ctx, cfg)

			Convey("Then employees come before managers", func() {
				So(err, ShouldBeNil)
				So(len(people), ShouldEqual, 15)
				for i, p := range people {
					So(p.Manager, ShouldEqual, i >= 12)
				}
			})

			Convey("And names are unique", func() {
				seen := map[string]bool{}
				for _, p := range people {
					So(seen[p.Name], ShouldBeFalse)
					seen[p.Name] = true
				}
			})

			Convey("And managers manage earlier employees round-robin", func() {
				So(people[12].Managed, ShouldResemble, []string{
					people[0].Name, people[1].Name, people[2].Name, people[3].Name, people[4].Name,
				})
				So(people[14].Managed[0], ShouldEqual, people[10].Name)
				So(people[14].Managed[2], ShouldEqual, people[0].Name)
			})

			Convey("And salaries fall in their bands", func() {
				for _, p := range people {
					if p.Manager {
						So(p.Salary, ShouldBeBetweenOrEqual, managerMin, managerMin+managerRange)
					} else {
						So(p.Salary, ShouldBeBetweenOrEqual, juniorMin, seniorMin+seniorRange)
					}
				}
			})
		})

		Convey("When the configuration is invalid", func() {
			for _, bad := range []*Config{
				{Employees: -1, ManagerToken: "manager"},
				{Employees: 2, Managers: 1, PerManager: 3, ManagerToken: "manager"},
				{Employees: 2, ManagerToken: " "},
			} {
				_, err := Generate(ctx, bad)
				So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
			}
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := Generate(cctx, cfg)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given generated people", t, func() {
		people := []Person{
			{Name: "Evert", Salary: 1000},
			{Name: "Ruud", Salary: 2000, Manager: true, Managed: []string{"Evert"}},
		}

		Convey("When writing them", func() {
			var buf bytes.Buffer
			lines, err := Write(&buf, people, "lead")

			Convey("Then a comment header precedes the records", func() {
				So(err, ShouldBeNil)
				So(lines, ShouldEqual, 4)
				out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
				So(out[0], ShouldStartWith, "# HRM seed file generated ")
				So(out[1], ShouldStartWith, "#")
				So(out[2], ShouldEqual, "Evert, 1000")
				So(out[3], ShouldEqual, "Ruud, 2000, lead, Evert")
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a verified run into a nested directory", t, func() {
		ctx := context.Background()
		out := filepath.Join(t.TempDir(), "nested", "seed.txt")
		cfg := &Config{
			Employees:    20,
			Managers:     4,
			PerManager:   6,
			ManagerToken: "boss",
			OutputFile:   out,
			Verify:       true,
		}

		stats, err := Run(ctx, cfg)

		Convey("Then the file is written and loads cleanly", func() {
			So(err, ShouldBeNil)
			So(stats.Lines, ShouldEqual, 26)
			So(stats.Employees, ShouldEqual, 20)
			So(stats.Managers, ShouldEqual, 4)
			_, statErr := os.Stat(out)
			So(statErr, ShouldBeNil)
		})
	})

	Convey("Given a file that does not match the token", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "seed.txt")
		people, err := Generate(ctx, &Config{Employees: 2, Managers: 1, PerManager: 1, ManagerToken: "manager"})
		So(err, ShouldBeNil)
		var buf bytes.Buffer
		_, err = Write(&buf, people, "manager")
		So(err, ShouldBeNil)
		So(os.WriteFile(path, buf.Bytes(), 0o600), ShouldBeNil)

		Convey("Then verifying with another token fails", func() {
			err := Verify(ctx, path, people, "lead")
			So(errors.Is(err, ErrVerify), ShouldBeTrue)
		})
	})
}

func TestImport(t *testing.T) {
	Convey("Given an HRM API stub", t, func() {
		var gotBody string
		status := http.StatusOK
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := new(bytes.Buffer)
			_, _ = buf.ReadFrom(r.Body)
			gotBody = buf.String()
			if r.Method != http.MethodPost || r.URL.Path != "/import" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"added":2,"skipped":1,"diagnostics":["line 3: bad"]}`))
		}))
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "seed.txt")
		So(os.WriteFile(path, []byte("Evert, 1000\n"), 0o600), ShouldBeNil)

		Convey("When importing the file", func() {
			res, err := Import(context.Background(), srv.URL+"/", path, 5*time.Second)

			Convey("Then the body is sent and the result decoded", func() {
				So(err, ShouldBeNil)
				So(gotBody, ShouldEqual, "Evert, 1000\n")
				So(res.Added, ShouldEqual, 2)
				So(res.Skipped, ShouldEqual, 1)
				So(res.Diagnostics, ShouldResemble, []string{"line 3: bad"})
			})
		})

		Convey("When the API rejects the request", func() {
			status = http.StatusInternalServerError
			_, err := Import(context.Background(), srv.URL, path, 5*time.Second)
			So(errors.Is(err, ErrImport), ShouldBeTrue)
		})

		Convey("When the caller's context is already cancelled", func() {
			gotBody = ""
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Import(ctx, srv.URL, path, 5*time.Second)

			Convey("Then nothing is sent and the cancellation is reported", func() {
				So(errors.Is(err, ErrImport), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(gotBody, ShouldBeEmpty)
			})
		})

		Convey("When the file is missing", func() {
			_, err := Import(context.Background(), srv.URL, filepath.Join(t.TempDir(), "nope"), time.Second)
			So(errors.Is(err, ErrImport), ShouldBeTrue)
		})
	})
}
