package holidays

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/projcal/internal/cli"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

func setupProject(t *testing.T) (*cli.Context, string) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "projcal.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(context.Background(), store, true)
	p, err := ctx.Service.AddProject(ctx.Ctx, "Apollo")
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	return ctx, p.ID
}

func TestRecurrentCmd(t *testing.T) {
	ctx, projectID := setupProject(t)

	cmd := &RecurrentCmd{Project: projectID, Weekdays: "sat,sun", Start: "2024-01-01", End: "2024-01-31"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("recurrent failed: %v", err)
	}

	list, err := ctx.Service.ListHolidays(ctx.Ctx, projectID, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 8 {
		t.Errorf("got %d holidays, want 8", len(list))
	}
}

func TestCreateCmdValidation(t *testing.T) {
	ctx, projectID := setupProject(t)

	tests := []struct {
		name string
		run  func() error
	}{
		{"bad weekday", func() error {
			return (&RecurrentCmd{Project: projectID, Weekdays: "funday", Start: "2024-01-01", End: "2024-01-31"}).Run(ctx)
		}},
		{"bad start", func() error { return (&RangeCmd{Project: projectID, Start: "2024-13-01", End: "2024-01-31"}).Run(ctx) }},
		{"reversed range", func() error { return (&RangeCmd{Project: projectID, Start: "2024-02-01", End: "2024-01-01"}).Run(ctx) }},
		{"bad date", func() error { return (&SpecificCmd{Project: projectID, Date: "tomorrow"}).Run(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestEditAndDeleteCmd(t *testing.T) {
	ctx, projectID := setupProject(t)
	if err := (&SpecificCmd{Project: projectID, Date: "2024-12-25", Notes: "Christmas"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	list, err := ctx.Service.ListHolidays(ctx.Ctx, projectID, false)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListHolidays = %v, %v", list, err)
	}
	id := list[0].ID

	if err := (&EditCmd{ID: id, Waivable: "true", ClearNotes: true}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	list, _ = ctx.Service.ListHolidays(ctx.Ctx, projectID, false)
	if !list[0].Waivable || list[0].Notes != "" {
		t.Errorf("edit not applied: %+v", list[0])
	}

	if err := (&DeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	list, _ = ctx.Service.ListHolidays(ctx.Ctx, projectID, true)
	if len(list) != 1 || list[0].Status != models.HolidayStatusDeleted {
		t.Errorf("expected one deleted holiday, got %+v", list)
	}

	if err := (&DeleteCmd{ID: "missing"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("deleting a missing holiday: %v, want not found", err)
	}
}

func TestEditCmdUpdate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     EditCmd
		wantErr bool
	}{
		{"nothing", EditCmd{ID: "h"}, true},
		{"bad waivable", EditCmd{ID: "h", Waivable: "maybe"}, true},
		{"notes and clear", EditCmd{ID: "h", Notes: "x", ClearNotes: true}, true},
		{"status", EditCmd{ID: "h", Status: "deleted"}, false},
		{"kind and notes", EditCmd{ID: "h", Kind: "specific", Notes: "moved"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.update()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckAndConflictsCmd(t *testing.T) {
	ctx, projectID := setupProject(t)
	if _, err := ctx.Service.AddTask(ctx.Ctx, projectID, "Deploy", "2024-01-05", "2024-01-08", models.TaskStatusOpen); err != nil {
		t.Fatal(err)
	}
	if err := (&RangeCmd{Project: projectID, Start: "2024-01-06", End: "2024-01-07"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&CheckCmd{Project: projectID, Date: "2024-01-06"}).Run(ctx); err != nil {
		t.Errorf("check failed: %v", err)
	}
	if err := (&ConflictsCmd{Project: projectID}).Run(ctx); err != nil {
		t.Errorf("conflicts failed: %v", err)
	}
	if err := (&ListCmd{Project: "missing"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("listing a missing project: %v, want not found", err)
	}
}
