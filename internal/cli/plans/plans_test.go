package plans

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/content"
	"github.com/julianstephens/quickhire/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	catalog, err := content.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded failed: %v", err)
	}
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store, catalog)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestTechListCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&TechListCmd{}).Run(ctx); err != nil {
		t.Fatalf("tech list failed: %v", err)
	}
	for _, set := range ctx.Catalog.Sets() {
		if !strings.Contains(out.String(), set.Name) {
			t.Errorf("output missing %q", set.Name)
		}
	}
	if !strings.Contains(out.String(), "(default)") {
		t.Error("output does not mark the default technology")
	}
}

func TestPlanGenerateCmd_JSONAndSave(t *testing.T) {
	ctx, out := setupTestContext(t)

	cmd := &PlanGenerateCmd{Technology: "Rust", Days: 3, Hours: 1.5, Level: "ADVANCED", Extended: true, Save: true, JSON: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var got generateOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.Plan.Technology != ctx.Catalog.Default().Name {
		t.Errorf("technology = %q, want default %q", got.Plan.Technology, ctx.Catalog.Default().Name)
	}
	if len(got.Plan.Days) != 3 || got.Plan.ExplanationLevel != "advanced" {
		t.Errorf("plan = %d days at %q, want 3 at advanced", len(got.Plan.Days), got.Plan.ExplanationLevel)
	}
	if len(got.Notices) != 1 || !strings.Contains(got.Notices[0], "Rust") {
		t.Errorf("notices = %v, want one fallback notice for Rust", got.Notices)
	}
	if got.SavedID == "" {
		t.Fatal("saved_id is empty")
	}

	saved, err := ctx.Services.Plans.Get(context.Background(), got.SavedID)
	if err != nil {
		t.Fatalf("saved plan not found: %v", err)
	}
	if len(saved.Days) != 3 {
		t.Errorf("saved plan has %d days, want 3", len(saved.Days))
	}
}

func TestPlanGenerateCmd_RejectsInvalidOptions(t *testing.T) {
	ctx, _ := setupTestContext(t)
	tests := []struct {
		name string
		cmd  PlanGenerateCmd
	}{
		{"too many days", PlanGenerateCmd{Technology: "React", Days: 11, Hours: 2, Level: "beginner"}},
		{"zero days", PlanGenerateCmd{Technology: "React", Days: 0, Hours: 2, Level: "beginner"}},
		{"negative hours", PlanGenerateCmd{Technology: "React", Days: 3, Hours: -1, Level: "beginner"}},
		{"NaN hours", PlanGenerateCmd{Technology: "React", Days: 3, Hours: math.NaN(), Level: "beginner", Save: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPlanGenerateCmd_Text(t *testing.T) {
	ctx, out := setupTestContext(t)
	cmd := &PlanGenerateCmd{Technology: "react", Days: 2, Hours: 2, Level: "beginner"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, want := range []string{"Day 1:", "Day 2:", "Concepts"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out.String(), "Saved plan") {
		t.Error("plan saved without --save")
	}
}

func TestPlanLifecycleCommands(t *testing.T) {
	ctx, out := setupTestContext(t)
	plan := ctx.Generator.Generate((&PlanGenerateCmd{Technology: "Python", Days: 2, Hours: 2, Level: "beginner"}).config())
	id, err := savePlan(ctx, plan)
	if err != nil {
		t.Fatalf("savePlan failed: %v", err)
	}
	short := cli.ShortID(id)

	if err := (&PlanDoneCmd{ID: short, Day: 1}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	if !strings.Contains(out.String(), "1/2 days") {
		t.Errorf("done output = %q", out.String())
	}

	out.Reset()
	if err := (&PlanShowCmd{ID: short}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Next up: day 2") {
		t.Errorf("show output missing next day:\n%s", out.String())
	}

	if err := (&PlanUndoCmd{ID: short, Day: 1}).Run(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if err := (&PlanDoneCmd{ID: short, Day: 9}).Run(ctx); err == nil {
		t.Error("marking a missing day should fail")
	}

	if err := (&PlanDeleteCmd{ID: short}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&PlanShowCmd{ID: short}).Run(ctx); err == nil {
		t.Error("show of a deleted plan should fail")
	}

	out.Reset()
	if err := (&PlanListCmd{Deleted: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "deleted") {
		t.Errorf("list --deleted output missing status:\n%s", out.String())
	}

	if err := (&PlanRestoreCmd{ID: short}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	progress, err := ctx.Services.Plans.Progress(context.Background(), id)
	if err != nil {
		t.Fatalf("progress after restore failed: %v", err)
	}
	if progress.CompletedDays != 0 || progress.NextDay != 1 {
		t.Errorf("progress = %+v, want nothing completed", progress)
	}
}

func TestPlanListCmd_Empty(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&PlanListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No saved plans") {
		t.Errorf("output = %q", out.String())
	}
}
