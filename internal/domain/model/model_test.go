package model_test

import (
	"testing"

	model "github.com/okian/hrm/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestCompetence(t *testing.T) {
	convey.Convey("Given competence levels", t, func() {
		convey.Convey("When the level is within range", func() {
			convey.So(model.NewCompetence("Programming", 1).Level, convey.ShouldEqual, 1)
			convey.So(model.NewCompetence("Programming", 0).Level, convey.ShouldEqual, 0)
			convey.So(model.NewCompetence("Programming", 2).Level, convey.ShouldEqual, 2)
		})

		convey.Convey("When the level is out of range", func() {
			convey.Convey("Then it should be clamped", func() {
				convey.So(model.NewCompetence("Research", -5).Level, convey.ShouldEqual, model.LevelWeak)
				convey.So(model.NewCompetence("Research", 3).Level, convey.ShouldEqual, model.LevelStrong)
				convey.So(model.NewCompetence("Research", 1<<30).Level, convey.ShouldEqual, model.LevelStrong)
			})
		})

		convey.Convey("When rendered", func() {
			convey.So(model.NewCompetence("Cooperating", 0).String(), convey.ShouldEqual, "Cooperating (0)")
		})
	})
}

func TestClampLevel(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-1, 0}, {0, 0}, {1, 1}, {2, 2}, {7, 2},
	}
	for _, c := range cases {
		if got := model.ClampLevel(c.in); got != c.want {
			t.Errorf("ClampLevel(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEmployee(t *testing.T) {
	convey.Convey("Given a plain employee and a manager", t, func() {
		emp := model.NewEmployee("Ruud", 900)
		mgr := model.NewManager("Evert", 1000)

		convey.Convey("Then capabilities follow the role", func() {
			convey.So(emp.IsManager(), convey.ShouldBeFalse)
			convey.So(mgr.IsManager(), convey.ShouldBeTrue)
			convey.So(emp.Role.String(), convey.ShouldEqual, "employee")
			convey.So(mgr.Role.String(), convey.ShouldEqual, "manager")
		})

		convey.Convey("When a plain employee is asked to manage someone", func() {
			ok := emp.Manage(mgr)

			convey.Convey("Then nothing is recorded", func() {
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(emp.Managed, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the manager manages the employee", func() {
			convey.So(mgr.Manage(emp), convey.ShouldBeTrue)

			convey.Convey("Then the reference is shared, not copied", func() {
				convey.So(mgr.Managed[0], convey.ShouldPointTo, emp)
				convey.So(mgr.ManagedNames(), convey.ShouldResemble, []string{"Ruud"})
			})
		})

		convey.Convey("When taking a view", func() {
			emp.AddCompetence(model.NewCompetence("Programming", 2))
			view := emp.View(3)
			emp.AddCompetence(model.NewCompetence("Research", 1))

			convey.Convey("Then the view is detached from later changes", func() {
				convey.So(view.Number, convey.ShouldEqual, 3)
				convey.So(view.Role, convey.ShouldEqual, "employee")
				convey.So(view.Competences, convey.ShouldHaveLength, 1)
				convey.So(view.Managed, convey.ShouldBeNil)
			})
		})
	})
}
