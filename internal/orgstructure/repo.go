package orgstructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"erp/internal/store"
)

// defaultDurationYears is stored for every seeded program.
const defaultDurationYears = 4

// Repository persists the org-structure tables.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a repo.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Seed inserts every unit of c that is not stored yet. Existing rows, including their
// active flags, are left untouched, so running it again changes nothing.
func (r *Repository) Seed(ctx context.Context, c Catalog) error {
	return store.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, b := range c.GoverningBodies {
			_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO governing_bodies
				(id, body_type, name, designation, description, icon, color, is_active)
				VALUES (?, ?, ?, ?, ?, ?, ?, TRUE) ON CONFLICT (body_type) DO NOTHING`),
				uuid.NewString(), b.Type, b.Name, b.Designation, b.Description, b.Icon, b.Color)
			if err != nil {
				return errors.Wrapf(err, "seed governing body %s", b.Type)
			}
		}

		for _, s := range c.Schools {
			schoolID, err := upsertID(ctx, tx,
				`INSERT INTO schools (id, name, short_name, icon, color, is_active)
				VALUES (?, ?, ?, ?, ?, TRUE) ON CONFLICT (name) DO NOTHING`,
				`SELECT id FROM schools WHERE name = ?`,
				[]interface{}{s.Name, s.ShortName, s.Icon, s.Color}, s.Name)
			if err != nil {
				return errors.Wrapf(err, "seed school %s", s.Name)
			}
			for _, d := range s.Departments {
				deptID, err := upsertID(ctx, tx,
					`INSERT INTO departments (id, school_id, name, is_active)
					VALUES (?, ?, ?, TRUE) ON CONFLICT (school_id, name) DO NOTHING`,
					`SELECT id FROM departments WHERE school_id = ? AND name = ?`,
					[]interface{}{schoolID, d}, schoolID, d)
				if err != nil {
					return errors.Wrapf(err, "seed department %s", d)
				}
				for _, p := range s.Programs {
					_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO programs
						(id, department_id, name, degree_type, duration_years, is_active)
						VALUES (?, ?, ?, ?, ?, TRUE) ON CONFLICT (department_id, name) DO NOTHING`),
						uuid.NewString(), deptID, p, string(ClassifyDegree(p)), defaultDurationYears)
					if err != nil {
						return errors.Wrapf(err, "seed program %s", p)
					}
				}
			}
		}

		for _, a := range c.Sections {
			_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO academic_sections
				(id, section_type, name, description, is_active)
				VALUES (?, ?, ?, ?, TRUE) ON CONFLICT (section_type) DO NOTHING`),
				uuid.NewString(), a.Type, a.Name, a.Description)
			if err != nil {
				return errors.Wrapf(err, "seed academic section %s", a.Type)
			}
		}
		for _, sc := range c.Cells {
			_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO support_cells
				(id, cell_type, name, description, is_active)
				VALUES (?, ?, ?, ?, TRUE) ON CONFLICT (cell_type) DO NOTHING`),
				uuid.NewString(), sc.Type, sc.Name, sc.Description)
			if err != nil {
				return errors.Wrapf(err, "seed support cell %s", sc.Type)
			}
		}
		return nil
	})
}

// upsertID inserts a row under a fresh id unless its natural key exists, then returns the stored id.
func upsertID(ctx context.Context, tx *sqlx.Tx, insert, selectID string, values []interface{}, key ...interface{}) (string, error) {
	args := append([]interface{}{uuid.NewString()}, values...)
	if _, err := tx.ExecContext(ctx, tx.Rebind(insert), args...); err != nil {
		return "", err
	}
	var id string
	err := tx.GetContext(ctx, &id, tx.Rebind(selectID), key...)
	return id, err
}

// ActiveGoverningBodies lists active governing bodies by type.
func (r *Repository) ActiveGoverningBodies(ctx context.Context) ([]GoverningBody, error) {
	var out []GoverningBody
	err := r.db.SelectContext(ctx, &out, `SELECT id, body_type, name, designation, description, icon, color, is_active
		FROM governing_bodies WHERE is_active = TRUE ORDER BY body_type`)
	return out, errors.Wrap(err, "list governing bodies")
}

// ActiveSchools lists active schools by name.
func (r *Repository) ActiveSchools(ctx context.Context) ([]School, error) {
	var out []School
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, short_name, icon, color, description, dean_id, is_active
		FROM schools WHERE is_active = TRUE ORDER BY name`)
	return out, errors.Wrap(err, "list schools")
}

// ActiveDepartments lists active departments of active schools by name.
func (r *Repository) ActiveDepartments(ctx context.Context) ([]Department, error) {
	var out []Department
	err := r.db.SelectContext(ctx, &out, `SELECT d.id, d.school_id, d.name, d.short_name, d.description, d.hod_id, d.is_active
		FROM departments d JOIN schools s ON s.id = d.school_id
		WHERE d.is_active = TRUE AND s.is_active = TRUE ORDER BY d.name`)
	return out, errors.Wrap(err, "list departments")
}

// ActivePrograms lists active programs whose department and school are active, by name.
func (r *Repository) ActivePrograms(ctx context.Context) ([]Program, error) {
	var out []Program
	err := r.db.SelectContext(ctx, &out, `SELECT p.id, p.department_id, p.name, p.degree_type, p.duration_years, p.is_active
		FROM programs p
		JOIN departments d ON d.id = p.department_id
		JOIN schools s ON s.id = d.school_id
		WHERE p.is_active = TRUE AND d.is_active = TRUE AND s.is_active = TRUE ORDER BY p.name`)
	return out, errors.Wrap(err, "list programs")
}

// ActiveSections lists active academic sections by name.
func (r *Repository) ActiveSections(ctx context.Context) ([]AcademicSection, error) {
	var out []AcademicSection
	err := r.db.SelectContext(ctx, &out, `SELECT id, section_type, name, description, incharge_id, is_active
		FROM academic_sections WHERE is_active = TRUE ORDER BY name`)
	return out, errors.Wrap(err, "list academic sections")
}

// ActiveCells lists active support cells by name.
func (r *Repository) ActiveCells(ctx context.Context) ([]SupportCell, error) {
	var out []SupportCell
	err := r.db.SelectContext(ctx, &out, `SELECT id, cell_type, name, description, coordinator_id, is_active
		FROM support_cells WHERE is_active = TRUE ORDER BY name`)
	return out, errors.Wrap(err, "list support cells")
}

// SetSchoolActive flips the active flag of a school.
func (r *Repository) SetSchoolActive(ctx context.Context, id string, active bool) error {
	return r.setActive(ctx, "schools", id, active)
}

// SetDepartmentActive flips the active flag of a department.
func (r *Repository) SetDepartmentActive(ctx context.Context, id string, active bool) error {
	return r.setActive(ctx, "departments", id, active)
}

// SetProgramActive flips the active flag of a program.
func (r *Repository) SetProgramActive(ctx context.Context, id string, active bool) error {
	return r.setActive(ctx, "programs", id, active)
}

// table is one of the fixed names above, never user input.
func (r *Repository) setActive(ctx context.Context, table, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE `+table+` SET is_active = ? WHERE id = ?`), active, id)
	if err != nil {
		return errors.Wrapf(err, "update %s", table)
	}
	return expectOne(res)
}

// Counts returns the row count of every org-structure table, active or not.
func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.GetContext(ctx, &c, `SELECT
		(SELECT COUNT(*) FROM governing_bodies) AS governing_bodies,
		(SELECT COUNT(*) FROM schools) AS schools,
		(SELECT COUNT(*) FROM departments) AS departments,
		(SELECT COUNT(*) FROM programs) AS programs,
		(SELECT COUNT(*) FROM academic_sections) AS academic_sections,
		(SELECT COUNT(*) FROM support_cells) AS support_cells`)
	return c, errors.Wrap(err, "count org units")
}

// SchoolCounts returns the active department and program counts of every active school, by name.
func (r *Repository) SchoolCounts(ctx context.Context) ([]SchoolCount, error) {
	var out []SchoolCount
	err := r.db.SelectContext(ctx, &out, `SELECT s.name AS school,
		(SELECT COUNT(*) FROM departments d WHERE d.school_id = s.id AND d.is_active = TRUE) AS departments,
		(SELECT COUNT(*) FROM programs p JOIN departments d ON d.id = p.department_id
			WHERE d.school_id = s.id AND d.is_active = TRUE AND p.is_active = TRUE) AS programs
		FROM schools s WHERE s.is_active = TRUE ORDER BY s.name`)
	return out, errors.Wrap(err, "count school units")
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
