package projects

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/projcal/internal/cli"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

func TestProjectCommands(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "projcal.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()
	ctx := cli.NewContext(context.Background(), store, true)

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty db failed: %v", err)
	}
	if err := (&AddCmd{Name: "Apollo"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&AddCmd{Name: "   "}).Run(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("blank name: %v, want validation error", err)
	}

	list, err := ctx.Service.ListProjects(ctx.Ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Apollo" {
		t.Errorf("projects = %+v", list)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
