package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
)

func workfileFixture(t *testing.T, p *pipeline, assetName string) resolve.ParentNames {
	t.Helper()
	ctx := context.Background()

	if _, err := p.entities.CreateAsset(ctx, "character", assetName, ""); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	parent := resolve.ParentNames{Kind: types.ParentAsset, Name: assetName}
	if _, err := p.depts.Create(ctx, parent, "model"); err != nil {
		t.Fatalf("Create department: %v", err)
	}
	return parent
}

func TestCreateTaskMakesWorkingDirectory(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	parent := workfileFixture(t, p, "svcTaskHero")

	if _, err := p.workfiles.CreateTask(ctx, parent, "model", "maya", "blocking"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	dir, err := p.layout.TaskDir(parent, "maya", "model", "blocking")
	if err != nil {
		t.Fatalf("TaskDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("task directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}

	tasks, err := p.workfiles.ListTasks(ctx, parent, "model")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "blocking" {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestCreateFileVersionsAndNaming(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	parent := workfileFixture(t, p, "svcFileHero")

	if _, err := p.workfiles.CreateTask(ctx, parent, "model", "maya", "blocking"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	f1, err := p.workfiles.CreateFile(ctx, parent, "model", "blocking", "maya", ".ma", "wip")
	if err != nil {
		t.Fatalf("CreateFile v1: %v", err)
	}
	f2, err := p.workfiles.CreateFile(ctx, parent, "model", "blocking", "maya", ".ma", "more wip")
	if err != nil {
		t.Fatalf("CreateFile v2: %v", err)
	}
	if f1.Version != 1 || f2.Version != 2 {
		t.Fatalf("versions = %d, %d", f1.Version, f2.Version)
	}

	if got := filepath.Base(f2.FilePath); got != "svcFileHero_model_blocking_v002.ma" {
		t.Fatalf("file name = %q", got)
	}
	if _, err := os.Stat(f2.FilePath); err != nil {
		t.Fatalf("scene file missing: %v", err)
	}
	if len(f2.Snapshot) == 0 {
		t.Fatal("file row missing snapshot")
	}

	path, err := p.workfiles.FilePath(ctx, parent, "model", "blocking", 1)
	if err != nil {
		t.Fatalf("FilePath: %v", err)
	}
	if path != f1.FilePath {
		t.Fatalf("FilePath = %q, want %q", path, f1.FilePath)
	}

	if _, err := p.workfiles.FilePath(ctx, parent, "model", "blocking", 9); !errors.Is(err, pipeerr.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing version, got %v", err)
	}
}

func TestDeleteTaskRemovesDirectoryAndRow(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	parent := workfileFixture(t, p, "svcTaskDel")

	if _, err := p.workfiles.CreateTask(ctx, parent, "model", "maya", "blocking"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := p.workfiles.DeleteTask(ctx, parent, "model", "maya", "blocking"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	dir, err := p.layout.TaskDir(parent, "maya", "model", "blocking")
	if err != nil {
		t.Fatalf("TaskDir: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("task directory should be gone, stat err = %v", err)
	}

	tasks, err := p.workfiles.ListTasks(ctx, parent, "model")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks = %+v, want empty", tasks)
	}
}
