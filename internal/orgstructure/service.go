package orgstructure

import (
	"context"

	"erp/internal/logger"
	"erp/internal/metrics"
)

// Store is the persistence surface used by Service.
type Store interface {
	Seed(ctx context.Context, c Catalog) error
	ActiveGoverningBodies(ctx context.Context) ([]GoverningBody, error)
	ActiveSchools(ctx context.Context) ([]School, error)
	ActiveDepartments(ctx context.Context) ([]Department, error)
	ActivePrograms(ctx context.Context) ([]Program, error)
	ActiveSections(ctx context.Context) ([]AcademicSection, error)
	ActiveCells(ctx context.Context) ([]SupportCell, error)
	SetSchoolActive(ctx context.Context, id string, active bool) error
	SetDepartmentActive(ctx context.Context, id string, active bool) error
	SetProgramActive(ctx context.Context, id string, active bool) error
	Counts(ctx context.Context) (Counts, error)
	SchoolCounts(ctx context.Context) ([]SchoolCount, error)
}

// Unit names a soft-deletable level of the tree.
type Unit string

const (
	UnitSchool     Unit = "school"
	UnitDepartment Unit = "department"
	UnitProgram    Unit = "program"
)

// Service seeds and serves the university structure.
type Service struct {
	repo    Store
	catalog Catalog
	log     logger.Logger
}

// NewService creates a service that seeds from catalog.
func NewService(repo Store, catalog Catalog, log logger.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, log: log}
}

// Seed populates the structure from the catalog and returns the resulting table counts.
func (s *Service) Seed(ctx context.Context) (Counts, error) {
	if err := s.repo.Seed(ctx, s.catalog); err != nil {
		return Counts{}, err
	}
	metrics.SeedRuns.Inc()
	c, err := s.repo.Counts(ctx)
	if err != nil {
		return Counts{}, err
	}
	s.log.Info("org structure seeded", "schools", c.Schools, "departments", c.Departments, "programs", c.Programs)
	return c, nil
}

// Counts returns the number of stored units of each kind.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	return s.repo.Counts(ctx)
}

// SchoolCounts returns per-school active department and program counts.
func (s *Service) SchoolCounts(ctx context.Context) ([]SchoolCount, error) {
	out, err := s.repo.SchoolCounts(ctx)
	if out == nil {
		out = []SchoolCount{}
	}
	return out, err
}

// SetActive soft-deletes or restores a school, department or program.
func (s *Service) SetActive(ctx context.Context, unit Unit, id string, active bool) error {
	switch unit {
	case UnitSchool:
		return s.repo.SetSchoolActive(ctx, id, active)
	case UnitDepartment:
		return s.repo.SetDepartmentActive(ctx, id, active)
	case UnitProgram:
		return s.repo.SetProgramActive(ctx, id, active)
	}
	return ErrNotFound
}

// Structure returns the active tree. A failing store yields an empty structure.
func (s *Service) Structure(ctx context.Context) Structure {
	out := Structure{
		GoverningBodies:  []GoverningBody{},
		Schools:          []SchoolNode{},
		AcademicSections: []AcademicSection{},
		SupportCells:     []SupportCell{},
	}
	bodies, err := s.repo.ActiveGoverningBodies(ctx)
	if err != nil {
		s.degrade(err)
		return out
	}
	schools, err := s.repo.ActiveSchools(ctx)
	if err != nil {
		s.degrade(err)
		return out
	}
	depts, err := s.repo.ActiveDepartments(ctx)
	if err != nil {
		s.degrade(err)
		return out
	}
	programs, err := s.repo.ActivePrograms(ctx)
	if err != nil {
		s.degrade(err)
		return out
	}
	sections, err := s.repo.ActiveSections(ctx)
	if err != nil {
		s.degrade(err)
		return out
	}
	cells, err := s.repo.ActiveCells(ctx)
	if err != nil {
		s.degrade(err)
		return out
	}

	out.Schools = buildTree(schools, depts, programs)
	if bodies != nil {
		out.GoverningBodies = bodies
	}
	if sections != nil {
		out.AcademicSections = sections
	}
	if cells != nil {
		out.SupportCells = cells
	}
	return out
}

// buildTree nests programs under departments and departments under schools,
// keeping the order of each input slice.
func buildTree(schools []School, depts []Department, programs []Program) []SchoolNode {
	byDept := make(map[string][]ProgramNode)
	for _, p := range programs {
		byDept[p.DepartmentID] = append(byDept[p.DepartmentID], ProgramNode{ID: p.ID, Name: p.Name, DegreeType: p.DegreeType})
	}
	bySchool := make(map[string][]DepartmentNode)
	for _, d := range depts {
		progs := byDept[d.ID]
		if progs == nil {
			progs = []ProgramNode{}
		}
		bySchool[d.SchoolID] = append(bySchool[d.SchoolID], DepartmentNode{
			ID:        d.ID,
			Name:      d.Name,
			ShortName: d.ShortName,
			HODID:     d.HODID,
			Programs:  progs,
		})
	}
	out := make([]SchoolNode, 0, len(schools))
	for _, sc := range schools {
		ds := bySchool[sc.ID]
		if ds == nil {
			ds = []DepartmentNode{}
		}
		out = append(out, SchoolNode{
			ID:          sc.ID,
			Name:        sc.Name,
			ShortName:   sc.ShortName,
			Icon:        sc.Icon,
			Color:       sc.Color,
			Departments: ds,
		})
	}
	return out
}

func (s *Service) degrade(err error) {
	metrics.ReportFallbacks.WithLabelValues("university_structure").Inc()
	s.log.Warn("org store unavailable, returning empty structure", err)
}
