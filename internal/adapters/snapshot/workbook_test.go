package snapshot_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hrm/internal/adapters/snapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteWorkbook(t *testing.T) {
	Convey("Given entries with competences", t, func() {
		path := filepath.Join(t.TempDir(), "hrm.xlsx")
		entries := sampleEntries()
		entries[1].Role = "manager"
		entries[1].Managed = []string{"Evert"}

		err := snapshot.WriteWorkbook(context.Background(), path, entries)
		So(err, ShouldBeNil)

		f, err := excelize.OpenFile(path)
		So(err, ShouldBeNil)
		defer func() { _ = f.Close() }()

		Convey("Then the employees sheet lists every record", func() {
			rows, err := f.GetRows(snapshot.SheetEmployees)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0], ShouldResemble, []string{"Number", "Name", "Salary", "Role", "Manages"})
			So(rows[1][:4], ShouldResemble, []string{"1", "Evert", "1000", "employee"})
			So(rows[2], ShouldResemble, []string{"2", "Ruud", "900", "manager", "Evert"})
		})

		Convey("And the competences sheet has one row per competence", func() {
			rows, err := f.GetRows(snapshot.SheetCompetences)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[1], ShouldResemble, []string{"1", "Evert", "Programming", "2"})
			So(rows[2], ShouldResemble, []string{"1", "Evert", "Cooperating", "0"})
		})
	})

	Convey("Given a destination in a missing directory", t, func() {
		path := filepath.Join(t.TempDir(), "missing", "hrm.xlsx")

		err := snapshot.WriteWorkbook(context.Background(), path, sampleEntries())

		Convey("Then the export fails with ErrWriteReport", func() {
			So(errors.Is(err, snapshot.ErrWriteReport), ShouldBeTrue)
		})
	})
}
