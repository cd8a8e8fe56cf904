package attendance

import (
	"math"
	"sort"
	"time"
)

// ShortageThreshold is the attendance percentage below which a student is flagged.
const ShortageThreshold = 75.0

// Dimension is a grouping key for attendance rollups.
type Dimension string

const (
	BySchool     Dimension = "school"
	ByDepartment Dimension = "department"
	ByYear       Dimension = "year"
	BySection    Dimension = "section" // year + section
	ByCourse     Dimension = "course"
	ByFaculty    Dimension = "faculty"
)

// GroupKey holds the values of the dimension a group was built on. Unused fields are empty.
type GroupKey struct {
	School      string `json:"school,omitempty"`
	Department  string `json:"department,omitempty"`
	Year        int    `json:"year,omitempty"`
	Section     string `json:"section,omitempty"`
	Course      string `json:"course,omitempty"`
	FacultyID   string `json:"faculty_id,omitempty"`
	FacultyName string `json:"faculty_name,omitempty"`
}

// GroupStat is the rollup of one group.
type GroupStat struct {
	GroupKey
	TotalStudents int     `json:"total_students"`
	TotalClasses  int     `json:"total_classes"`
	TotalPresent  int     `json:"total_present"`
	TotalAbsent   int     `json:"total_absent"`
	Percentage    float64 `json:"percentage"`
}

// Summary counts records by status over a record set.
type Summary struct {
	TotalRecords int     `json:"total_records"`
	TotalPresent int     `json:"total_present"`
	TotalAbsent  int     `json:"total_absent"`
	Percentage   float64 `json:"percentage"`
}

// ShortageScope selects the key shortages are computed within.
type ShortageScope int

const (
	ScopeDepartment ShortageScope = iota
	ScopeSection
)

// Shortage is a student whose attendance is below ShortageThreshold within a scope.
type Shortage struct {
	StudentID    string  `json:"student_id"`
	EnrollmentNo string  `json:"enrollment_no"`
	StudentName  string  `json:"student_name"`
	Department   string  `json:"department,omitempty"`
	Year         int     `json:"year,omitempty"`
	Section      string  `json:"section,omitempty"`
	Present      int     `json:"present"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
}

// Windows holds the daily, weekly and monthly summaries relative to a day.
type Windows struct {
	Daily   Summary `json:"daily"`
	Weekly  Summary `json:"weekly"`
	Monthly Summary `json:"monthly"`
}

// Percentage returns present/total*100, or 0 when total is 0.
func Percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(present) * 100 / float64(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func keyFor(rec Record, dim Dimension) GroupKey {
	switch dim {
	case BySchool:
		return GroupKey{School: rec.School}
	case ByDepartment:
		return GroupKey{Department: rec.Department}
	case ByYear:
		return GroupKey{Year: rec.Year}
	case BySection:
		return GroupKey{Year: rec.Year, Section: rec.Section}
	case ByCourse:
		return GroupKey{Course: rec.Course}
	case ByFaculty:
		return GroupKey{FacultyID: rec.FacultyID.String, FacultyName: rec.FacultyName}
	}
	return GroupKey{}
}

func (k GroupKey) less(o GroupKey) bool {
	switch {
	case k.School != o.School:
		return k.School < o.School
	case k.Department != o.Department:
		return k.Department < o.Department
	case k.Year != o.Year:
		return k.Year < o.Year
	case k.Section != o.Section:
		return k.Section < o.Section
	case k.Course != o.Course:
		return k.Course < o.Course
	case k.FacultyName != o.FacultyName:
		return k.FacultyName < o.FacultyName
	}
	return k.FacultyID < o.FacultyID
}

type tally struct {
	students map[string]struct{}
	total    int
	present  int
	absent   int
}

func (t *tally) add(rec Record) {
	if t.students == nil {
		t.students = make(map[string]struct{})
	}
	t.students[rec.StudentID] = struct{}{}
	t.total++
	switch rec.Status {
	case StatusPresent:
		t.present++
	case StatusAbsent:
		t.absent++
	}
}

// Group rolls records up along dim. Groups are ordered by key.
func Group(records []Record, dim Dimension) []GroupStat {
	tallies := make(map[GroupKey]*tally)
	for _, rec := range records {
		k := keyFor(rec, dim)
		t, ok := tallies[k]
		if !ok {
			t = &tally{}
			tallies[k] = t
		}
		t.add(rec)
	}
	out := make([]GroupStat, 0, len(tallies))
	for k, t := range tallies {
		out = append(out, GroupStat{
			GroupKey:      k,
			TotalStudents: len(t.students),
			TotalClasses:  t.total,
			TotalPresent:  t.present,
			TotalAbsent:   t.absent,
			Percentage:    round2(Percentage(t.present, t.total)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupKey.less(out[j].GroupKey) })
	return out
}

// Summarize counts present and absent records. Late records count toward the total only.
func Summarize(records []Record) Summary {
	var t tally
	for _, rec := range records {
		t.add(rec)
	}
	return Summary{
		TotalRecords: t.total,
		TotalPresent: t.present,
		TotalAbsent:  t.absent,
		Percentage:   round2(Percentage(t.present, t.total)),
	}
}

type shortageKey struct {
	department string
	year       int
	section    string
	studentID  string
}

// Shortages returns students below ShortageThreshold within scope,
// sorted by scope key then student id.
func Shortages(records []Record, scope ShortageScope) []Shortage {
	accs := make(map[shortageKey]*Shortage)
	for _, rec := range records {
		k := shortageKey{studentID: rec.StudentID}
		if scope == ScopeDepartment {
			k.department = rec.Department
		} else {
			k.year, k.section = rec.Year, rec.Section
		}
		a, ok := accs[k]
		if !ok {
			a = &Shortage{
				StudentID:    rec.StudentID,
				EnrollmentNo: rec.EnrollmentNo,
				StudentName:  rec.StudentName,
				Department:   k.department,
				Year:         k.year,
				Section:      k.section,
			}
			accs[k] = a
		}
		a.Total++
		if rec.Status == StatusPresent {
			a.Present++
		}
	}

	out := make([]Shortage, 0)
	for _, a := range accs {
		if a.Total == 0 {
			continue
		}
		pct := Percentage(a.Present, a.Total)
		if pct >= ShortageThreshold {
			continue
		}
		a.Percentage = round2(pct)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Department != b.Department:
			return a.Department < b.Department
		case a.Year != b.Year:
			return a.Year < b.Year
		case a.Section != b.Section:
			return a.Section < b.Section
		}
		return a.StudentID < b.StudentID
	})
	return out
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day time.Time) time.Time {
	day = Day(day)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of the month containing day.
func MonthStart(day time.Time) time.Time {
	day = Day(day)
	return day.AddDate(0, 0, 1-day.Day())
}

// Window summarizes records dated within [from, to].
func Window(records []Record, from, to time.Time) Summary {
	from, to = Day(from), Day(to)
	var in []Record
	for _, rec := range records {
		d := Day(rec.Date)
		if !d.Before(from) && !d.After(to) {
			in = append(in, rec)
		}
	}
	return Summarize(in)
}

// WindowsFor returns today, week-to-date and month-to-date summaries.
func WindowsFor(records []Record, today time.Time) Windows {
	today = Day(today)
	return Windows{
		Daily:   Window(records, today, today),
		Weekly:  Window(records, WeekStart(today), today),
		Monthly: Window(records, MonthStart(today), today),
	}
}
