package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexdoe/folio/internal/domain"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T, dir string) *ContentRepository {
	t.Helper()
	kv, err := NewFileKV(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	return NewContentRepository(kv, zap.NewNop())
}

func TestLoadAllDefaultsOnEmptyStore(t *testing.T) {
	repo := newTestRepository(t, t.TempDir())

	content, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if content.Profile.Name != "Alex Doe" {
		t.Errorf("expected default profile, got %q", content.Profile.Name)
	}
	if len(content.Projects) != 4 || len(content.Skills) != 3 {
		t.Errorf("expected default projects/skills, got %d/%d",
			len(content.Projects), len(content.Skills))
	}
	if !repo.Loaded() {
		t.Error("repository should report loaded after LoadAll")
	}
}

func TestWritesSuppressedBeforeLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// Seed a saved profile through one repository generation.
	first := newTestRepository(t, dir)
	if _, err := first.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	saved := domain.DefaultProfile()
	saved.Name = "Jane Smith"
	if err := first.SaveProfile(ctx, saved); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	// A fresh repository that has not loaded yet must not clobber it.
	second := newTestRepository(t, dir)
	if err := second.SaveProfile(ctx, domain.DefaultProfile()); err != nil {
		t.Fatalf("pre-load SaveProfile failed: %v", err)
	}

	content, err := second.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if content.Profile.Name != "Jane Smith" {
		t.Errorf("pre-load write clobbered saved profile: got %q", content.Profile.Name)
	}
}

func TestEditSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := newTestRepository(t, dir)
	content, err := first.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	content.Profile.Name = "Jane Smith"
	if err := first.SaveProfile(ctx, content.Profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	// Reload through a fresh repository, as a process restart would.
	second := newTestRepository(t, dir)
	reloaded, err := second.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if reloaded.Profile.Name != "Jane Smith" {
		t.Errorf("expected edited name after reload, got %q", reloaded.Profile.Name)
	}
	if reloaded.Projects[0].Title != content.Projects[0].Title {
		t.Errorf("untouched category changed across reload")
	}
}

func TestLoadAllCorruptCategoryFallsBack(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := newTestRepository(t, dir)
	if _, err := first.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	saved := domain.DefaultProfile()
	saved.Name = "Jane Smith"
	if err := first.SaveProfile(ctx, saved); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	// Corrupt the skills category only.
	if err := os.WriteFile(filepath.Join(dir, "folio_skills.json"), []byte("{{{"), 0644); err != nil {
		t.Fatalf("corrupt skills file: %v", err)
	}

	second := newTestRepository(t, dir)
	content, err := second.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll should tolerate a corrupt category: %v", err)
	}

	if content.Profile.Name != "Jane Smith" {
		t.Errorf("intact category lost: got %q", content.Profile.Name)
	}
	if len(content.Skills) != 3 {
		t.Errorf("corrupt category should fall back to defaults, got %d categories", len(content.Skills))
	}
}

func TestLoadAllTypeMismatchFallsBackWhole(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// Syntactically valid JSON with a wrong-typed field. Decoding must not
	// leave a merge of the stored value and the default behind.
	bad := []byte(`{"name":"Evil Partial","title":123}`)
	if err := os.WriteFile(filepath.Join(dir, "folio_profile.json"), bad, 0644); err != nil {
		t.Fatalf("seed profile file: %v", err)
	}

	repo := newTestRepository(t, dir)
	content, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll should tolerate a mistyped category: %v", err)
	}

	want := domain.DefaultProfile()
	if content.Profile.Name != want.Name {
		t.Errorf("profile name = %q, want default %q", content.Profile.Name, want.Name)
	}
	if content.Profile.Title != want.Title || content.Profile.Bio != want.Bio {
		t.Errorf("mistyped category produced a partial record: %+v", content.Profile)
	}
}

func TestSyncIDLifecycle(t *testing.T) {
	repo := newTestRepository(t, t.TempDir())
	ctx := context.Background()

	if _, err := repo.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	id, err := repo.SyncID(ctx)
	if err != nil {
		t.Fatalf("SyncID failed: %v", err)
	}
	if id != "" {
		t.Errorf("expected unset sync id, got %q", id)
	}

	if err := repo.SetSyncID(ctx, "blob-42"); err != nil {
		t.Fatalf("SetSyncID failed: %v", err)
	}

	id, err = repo.SyncID(ctx)
	if err != nil {
		t.Fatalf("SyncID failed: %v", err)
	}
	if id != "blob-42" {
		t.Errorf("expected stored sync id, got %q", id)
	}
}
