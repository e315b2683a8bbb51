package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleEntries() []model.Entry {
	return []model.Entry{
		{
			Number: 1, Name: "Evert", Salary: 1000, Role: "employee",
			Competences: []model.Competence{
				model.NewCompetence("Programming", 2),
				model.NewCompetence("Cooperating", 0),
			},
		},
		{Number: 2, Name: "Ruud", Salary: 900, Role: "employee"},
	}
}

const wantReport = "### HRM System Summary ###\n" +
	"Evert (1) has competences: Programming (2), Cooperating (0)\n" +
	"Ruud (2) has no competences\n"

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	if err := snapshot.RenderReport(&buf, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != wantReport {
		t.Errorf("unexpected report:\n%s", buf.String())
	}
}

func TestWriteReport(t *testing.T) {
	Convey("Given a destination file with old content", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "report.txt")
		So(os.WriteFile(path, []byte("stale content that is longer than the report itself\n\n\n\n\n\n\n\n"), 0o600), ShouldBeNil)

		Convey("When the report is written", func() {
			err := snapshot.WriteReport(ctx, path, sampleEntries())

			Convey("Then the file is fully overwritten", func() {
				So(err, ShouldBeNil)
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, wantReport)
			})
		})
	})

	Convey("Given a destination in a missing directory", t, func() {
		path := filepath.Join(t.TempDir(), "no", "such", "dir", "report.txt")

		err := snapshot.WriteReport(context.Background(), path, sampleEntries())

		Convey("Then writing fails with ErrWriteReport", func() {
			So(errors.Is(err, snapshot.ErrWriteReport), ShouldBeTrue)
		})
	})

	Convey("Given an empty directory", t, func() {
		var buf bytes.Buffer
		So(snapshot.RenderReport(&buf, nil), ShouldBeNil)

		Convey("Then only the header is written", func() {
			So(buf.String(), ShouldEqual, snapshot.ReportHeader+"\n")
		})
	})
}
