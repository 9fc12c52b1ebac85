package domain_test

import (
	"context"
	"testing"

	"go.trai.ch/jig/internal/core/domain"
)

func TestTask_InputExcludesOwnOutputs(t *testing.T) {
	task := domain.NewTask("compile", nil)

	task.Output("lib/a.o")
	task.Input("src/a.c", "lib/a.o", "src/b.c", "src/a.c")

	inputs := task.Inputs()
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d: %v", len(inputs), inputs)
	}
	if inputs[0].String() != "src/a.c" || inputs[1].String() != "src/b.c" {
		t.Errorf("expected [src/a.c src/b.c] in insertion order, got %v", inputs)
	}
}

func TestTask_OutputKeepsDuplicates(t *testing.T) {
	task := domain.NewTask("bundle", nil)

	task.Output("dist/app.js")
	task.Output("dist/app.js", "dist/app.css")

	if len(task.Outputs()) != 3 {
		t.Errorf("expected 3 outputs including the duplicate, got %d", len(task.Outputs()))
	}
}

func TestTask_AddJobOrder(t *testing.T) {
	task := domain.NewTask("steps", nil)

	var order []int
	for i := 1; i <= 3; i++ {
		task.AddJob(func(context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	jobs := task.Jobs()
	if len(jobs) != 3 {
		t.Fatalf("expected 3 job entries, got %d", len(jobs))
	}
	for _, entry := range jobs {
		if entry.Run == nil || entry.Group != nil {
			t.Fatal("expected plain job entries")
		}
		_ = entry.Run(context.Background())
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected jobs to run in declaration order, got %v", order)
	}
}

func TestTask_Group(t *testing.T) {
	task := domain.NewTask("assets", nil)

	task.AddJob(func(context.Context) error { return nil })
	task.Group(func() {
		task.AddJob(func(context.Context) error { return nil })
		task.AddJob(func(context.Context) error { return nil })
	})
	task.AddJob(func(context.Context) error { return nil })

	jobs := task.Jobs()
	if len(jobs) != 3 {
		t.Fatalf("expected 3 chain entries, got %d", len(jobs))
	}
	if jobs[0].Run == nil {
		t.Error("expected entry 0 to be a plain job")
	}
	if len(jobs[1].Group) != 2 {
		t.Errorf("expected entry 1 to be a group of 2, got %v", jobs[1])
	}
	if jobs[2].Run == nil {
		t.Error("expected entry 2 to be a plain job")
	}
}

func TestTask_GroupEmpty(t *testing.T) {
	task := domain.NewTask("noop", nil)
	task.Group(func() {})

	if len(task.Jobs()) != 0 {
		t.Errorf("expected empty group to install nothing, got %d entries", len(task.Jobs()))
	}
}

func TestTask_GroupNestedFlattens(t *testing.T) {
	task := domain.NewTask("nested", nil)

	task.Group(func() {
		task.AddJob(func(context.Context) error { return nil })
		task.Group(func() {
			task.AddJob(func(context.Context) error { return nil })
		})
	})

	jobs := task.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected a single group entry, got %d", len(jobs))
	}
	if len(jobs[0].Group) != 2 {
		t.Errorf("expected nested group to flatten into 2 jobs, got %d", len(jobs[0].Group))
	}
}

func TestTask_ForceRun(t *testing.T) {
	task := domain.NewTask("deploy", nil)

	if _, forced := task.Forced(); forced {
		t.Error("expected task to not be forced initially")
	}

	task.ForceRun("config changed")
	reason, forced := task.Forced()
	if !forced || reason != "config changed" {
		t.Errorf("expected forced with reason, got %q %v", reason, forced)
	}
}

func TestTask_Settings(t *testing.T) {
	task := domain.NewTask("compile", nil)

	task.SetSetting("compiler", "gcc")
	if task.Setting("compiler") != "gcc" {
		t.Errorf("expected setting to round-trip, got %q", task.Setting("compiler"))
	}
	if task.Setting("absent") != "" {
		t.Error("expected empty string for absent setting")
	}
	if task.Settings()["compiler"] != "gcc" {
		t.Error("expected Settings map to contain the recorded value")
	}
}
