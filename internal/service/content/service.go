package content

import (
	"context"
	"sync"

	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/internal/store"
	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

// Change categories reported to listeners.
const (
	CategoryProfile  = "profile"
	CategoryAbout    = "about"
	CategoryProjects = "projects"
	CategorySkills   = "skills"
	CategoryAll      = "all"
)

// ChangeListener is invoked after a mutation has been applied and persisted.
type ChangeListener func(category string)

// Service owns the in-memory content aggregate. Every mutation replaces a
// whole record under the lock and writes back through the repository, the
// same save-after-every-edit flow the original client ran against local
// storage.
type Service struct {
	repo   *store.ContentRepository
	logger *zap.Logger

	mu        sync.RWMutex
	content   *domain.Content
	listeners []ChangeListener
}

func NewService(repo *store.ContentRepository, initial *domain.Content, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		content: initial,
	}
}

// OnChange registers a listener. Registration happens during wiring, before
// the HTTP surface is up, so no lock is taken around the slice.
func (s *Service) OnChange(fn ChangeListener) {
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a deep copy of the current aggregate.
func (s *Service) Snapshot() *domain.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

func (s *Service) SetProfile(ctx context.Context, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content.Profile = p
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return err
	}

	s.notify(CategoryProfile)
	return nil
}

func (s *Service) SetAbout(ctx context.Context, about domain.AboutContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content.About = about
	if err := s.repo.SaveAbout(ctx, about); err != nil {
		return err
	}

	s.notify(CategoryAbout)
	return nil
}

func (s *Service) AddProject(ctx context.Context, p domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content.Projects = append(s.content.Projects, p.Clone())
	return s.saveProjects(ctx)
}

func (s *Service) UpdateProject(ctx context.Context, index int, p domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkProjectIndex(index); err != nil {
		return err
	}

	s.content.Projects[index] = p.Clone()
	return s.saveProjects(ctx)
}

// DeleteProject removes exactly one entry, preserving the relative order of
// the rest.
func (s *Service) DeleteProject(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkProjectIndex(index); err != nil {
		return err
	}

	s.content.Projects = append(s.content.Projects[:index], s.content.Projects[index+1:]...)
	return s.saveProjects(ctx)
}

// MoveProject relocates the entry at from so it sits at position to.
func (s *Service) MoveProject(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkProjectIndex(from); err != nil {
		return err
	}
	if err := s.checkProjectIndex(to); err != nil {
		return err
	}

	p := s.content.Projects[from]
	rest := append(s.content.Projects[:from], s.content.Projects[from+1:]...)
	s.content.Projects = append(rest[:to], append([]domain.Project{p}, rest[to:]...)...)
	return s.saveProjects(ctx)
}

func (s *Service) AddSkillCategory(ctx context.Context, c domain.SkillCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content.Skills = append(s.content.Skills, c.Clone())
	return s.saveSkills(ctx)
}

func (s *Service) UpdateSkillCategory(ctx context.Context, index int, c domain.SkillCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSkillIndex(index); err != nil {
		return err
	}

	s.content.Skills[index] = c.Clone()
	return s.saveSkills(ctx)
}

func (s *Service) DeleteSkillCategory(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSkillIndex(index); err != nil {
		return err
	}

	s.content.Skills = append(s.content.Skills[:index], s.content.Skills[index+1:]...)
	return s.saveSkills(ctx)
}

func (s *Service) AddSkill(ctx context.Context, catIndex int, skill string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSkillIndex(catIndex); err != nil {
		return err
	}

	s.content.Skills[catIndex].Skills = append(s.content.Skills[catIndex].Skills, skill)
	return s.saveSkills(ctx)
}

func (s *Service) DeleteSkill(ctx context.Context, catIndex, skillIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSkillIndex(catIndex); err != nil {
		return err
	}

	skills := s.content.Skills[catIndex].Skills
	if skillIndex < 0 || skillIndex >= len(skills) {
		return errors.NewValidationError("skill index out of range", "skillIndex", skillIndex)
	}

	s.content.Skills[catIndex].Skills = append(skills[:skillIndex], skills[skillIndex+1:]...)
	return s.saveSkills(ctx)
}

// Export produces the downloadable content document.
func (s *Service) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Encode()
}

// Import validates and applies a previously exported document. A document
// missing any required field is rejected without touching current state.
func (s *Service) Import(ctx context.Context, data []byte) error {
	imported, err := domain.DecodeContent(data)
	if err != nil {
		return err
	}
	return s.Replace(ctx, imported)
}

// Replace swaps the entire aggregate, persisting every category. Used by
// import and by shared-link loads.
func (s *Service) Replace(ctx context.Context, next *domain.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content = next.Clone()
	if err := s.repo.ReplaceAll(ctx, s.content); err != nil {
		return err
	}

	s.logger.Info("Content replaced",
		zap.Int("projects", len(next.Projects)),
		zap.Int("skill_categories", len(next.Skills)),
	)

	s.notify(CategoryAll)
	return nil
}

func (s *Service) saveProjects(ctx context.Context) error {
	if err := s.repo.SaveProjects(ctx, s.content.Projects); err != nil {
		return err
	}
	s.notify(CategoryProjects)
	return nil
}

func (s *Service) saveSkills(ctx context.Context) error {
	if err := s.repo.SaveSkills(ctx, s.content.Skills); err != nil {
		return err
	}
	s.notify(CategorySkills)
	return nil
}

func (s *Service) checkProjectIndex(index int) error {
	if index < 0 || index >= len(s.content.Projects) {
		return errors.NewValidationError("project index out of range", "index", index)
	}
	return nil
}

func (s *Service) checkSkillIndex(index int) error {
	if index < 0 || index >= len(s.content.Skills) {
		return errors.NewValidationError("skill category index out of range", "index", index)
	}
	return nil
}

func (s *Service) notify(category string) {
	for _, fn := range s.listeners {
		fn(category)
	}
}
