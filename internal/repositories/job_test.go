package repositories

import (
	"database/sql"
	"testing"

	"github.com/glowstack/reel/internal/models"
	"github.com/glowstack/reel/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	shared.ConfigureDatabase(db, 1, 1)
	return db
}

func TestJobRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := testDB(t)
		repo, err := NewJobRepository(db)
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		job := models.NewGenerationJob("glam-ai-1", "ltx-2", "a glam makeover", "videos/abc.mp4")
		if err := repo.Create(job); err != nil {
			t.Fatalf("Failed to create job: %v", err)
		}

		if job.ID() == "" {
			t.Error("Expected generated ID, got empty string")
		}
		if job.Sequence() != 1 {
			t.Errorf("Expected sequence 1, got %d", job.Sequence())
		}

		t.Run("Assigns Increasing Sequences", func(t *testing.T) {
			second := models.NewGenerationJob("", "veo3", "", "videos/def.mp4")
			if err := repo.Create(second); err != nil {
				t.Fatalf("Failed to create job: %v", err)
			}

			if second.Sequence() != 2 {
				t.Errorf("Expected sequence 2, got %d", second.Sequence())
			}
		})

		t.Run("Rejects Invalid Job", func(t *testing.T) {
			invalid := models.NewGenerationJob("glam-ai-1", "", "", "videos/abc.mp4")
			if err := repo.Create(invalid); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		db := testDB(t)
		repo, err := NewJobRepository(db)
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		job := models.NewGenerationJob("dance-1", "wan-25", "dance moves", "videos/dance.mp4")
		if err := repo.Create(job); err != nil {
			t.Fatalf("Failed to create job: %v", err)
		}

		got, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}

		if got.FilterID() != "dance-1" {
			t.Errorf("Expected filter dance-1, got %s", got.FilterID())
		}
		if got.Model() != "wan-25" {
			t.Errorf("Expected model wan-25, got %s", got.Model())
		}
		if got.VideoPath() != "videos/dance.mp4" {
			t.Errorf("Expected video path videos/dance.mp4, got %s", got.VideoPath())
		}

		t.Run("Returns Error For Missing Job", func(t *testing.T) {
			if _, err := repo.Get("no-such-id"); err == nil {
				t.Error("Expected error for missing job, got nil")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		db := testDB(t)
		repo, err := NewJobRepository(db)
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		job := models.NewGenerationJob("glam-ai-1", "ltx-2", "", "videos/a.mp4")
		if err := repo.Create(job); err != nil {
			t.Fatalf("Failed to create job: %v", err)
		}

		job.SetVideoPath("videos/b.mp4")
		if err := repo.Update(job); err != nil {
			t.Fatalf("Failed to update job: %v", err)
		}

		got, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if got.VideoPath() != "videos/b.mp4" {
			t.Errorf("Expected updated video path, got %s", got.VideoPath())
		}

		t.Run("Returns Error For Missing Job", func(t *testing.T) {
			ghost := models.NewGenerationJob("", "ltx-2", "", "videos/x.mp4")
			ghost.SetID("no-such-id")
			if err := repo.Update(ghost); err == nil {
				t.Error("Expected error for missing job, got nil")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		db := testDB(t)
		repo, err := NewJobRepository(db)
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		job := models.NewGenerationJob("", "veo3", "", "videos/gone.mp4")
		if err := repo.Create(job); err != nil {
			t.Fatalf("Failed to create job: %v", err)
		}

		if err := repo.Delete(job.ID()); err != nil {
			t.Fatalf("Failed to delete job: %v", err)
		}

		if _, err := repo.Get(job.ID()); err == nil {
			t.Error("Expected deleted job to be hidden, got nil error")
		}

		t.Run("Returns Error When Already Deleted", func(t *testing.T) {
			if err := repo.Delete(job.ID()); err == nil {
				t.Error("Expected error for already deleted job, got nil")
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		db := testDB(t)
		repo, err := NewJobRepository(db)
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		seed := []*models.GenerationJob{
			models.NewGenerationJob("glam-ai-1", "ltx-2", "", "videos/1.mp4"),
			models.NewGenerationJob("dance-1", "ltx-2", "", "videos/2.mp4"),
			models.NewGenerationJob("glam-ai-1", "veo3", "", "videos/3.mp4"),
		}
		for _, job := range seed {
			if err := repo.Create(job); err != nil {
				t.Fatalf("Failed to create job: %v", err)
			}
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("Failed to list jobs: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("Expected 3 jobs, got %d", len(all))
		}
		if all[0].VideoPath() != "videos/3.mp4" {
			t.Errorf("Expected newest job first, got %s", all[0].VideoPath())
		}

		t.Run("Filters By Filter ID", func(t *testing.T) {
			jobs, err := repo.List(map[string]any{"filter_id": "glam-ai-1"})
			if err != nil {
				t.Fatalf("Failed to list jobs: %v", err)
			}
			if len(jobs) != 2 {
				t.Errorf("Expected 2 jobs, got %d", len(jobs))
			}
		})

		t.Run("Filters By Model", func(t *testing.T) {
			jobs, err := repo.List(map[string]any{"model": "veo3"})
			if err != nil {
				t.Fatalf("Failed to list jobs: %v", err)
			}
			if len(jobs) != 1 {
				t.Errorf("Expected 1 job, got %d", len(jobs))
			}
		})

		t.Run("Excludes Deleted Jobs", func(t *testing.T) {
			if err := repo.Delete(seed[0].ID()); err != nil {
				t.Fatalf("Failed to delete job: %v", err)
			}

			jobs, err := repo.List(nil)
			if err != nil {
				t.Fatalf("Failed to list jobs: %v", err)
			}
			if len(jobs) != 2 {
				t.Errorf("Expected 2 jobs after delete, got %d", len(jobs))
			}
		})
	})
}
