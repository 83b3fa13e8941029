// Package cache reads the task manager's local SQLite database. All
// access is read-only; mutations go through the automation bridge.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thingsctl/thingsctl/thingsctl"
)

const groupContainer = "Library/Group Containers/JLMPQHK86H.com.culturedcode.ThingsMac"

// FindDatabasePath locates the task database inside the application's
// group container. The data directory carries a per-account suffix, so
// the container is scanned for it.
func FindDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", thingsctl.ConfigError("could not resolve home directory", err)
	}

	container := filepath.Join(home, groupContainer)
	entries, err := os.ReadDir(container)
	if err != nil {
		return "", thingsctl.ConfigError(fmt.Sprintf("could not read %s", container), err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "ThingsData-") {
			continue
		}
		path := filepath.Join(container, entry.Name(), "Things Database.thingsdatabase", "main.sqlite")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", thingsctl.ConfigError("could not find the task database", nil)
}

// Store is a read-only handle on the task database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path read-only. An empty path triggers
// automatic discovery.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = FindDatabasePath()
		if err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, thingsctl.DatabaseError("could not open the task database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, thingsctl.DatabaseError("could not open the task database", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const taskColumns = `uuid, title, notes, status, stopDate, deadline, creationDate,
	userModificationDate, project, area`

// List returns the open tasks in a built-in list view.
func (s *Store) List(ctx context.Context, view thingsctl.ListView) ([]thingsctl.Task, error) {
	today := daysSinceReference(nowFunc())

	switch view {
	case thingsctl.ListInbox:
		return s.queryTasks(ctx,
			"status = 0 AND trashed = 0 AND type = 0 AND start = 0 AND project IS NULL AND startDate IS NULL")
	case thingsctl.ListToday:
		return s.queryTasks(ctx,
			"status = 0 AND trashed = 0 AND type = 0 AND (start = 1 OR startDate = ?)", today)
	case thingsctl.ListUpcoming:
		return s.queryTasks(ctx,
			"status = 0 AND trashed = 0 AND type = 0 AND startDate > ?", today)
	case thingsctl.ListAnytime:
		return s.queryTasks(ctx,
			"status = 0 AND trashed = 0 AND type = 0 AND start = 1 AND (startDate IS NULL OR startDate <= ?)", today)
	case thingsctl.ListSomeday:
		return s.queryTasks(ctx,
			"status = 0 AND trashed = 0 AND type = 0 AND start = 2")
	case thingsctl.ListLogbook:
		query := fmt.Sprintf(
			"SELECT %s FROM TMTask WHERE status = 3 AND trashed = 0 AND type = 0 ORDER BY stopDate DESC LIMIT 500",
			taskColumns)
		return s.queryTasksSQL(ctx, query)
	case thingsctl.ListTrash:
		return s.queryTasks(ctx, "trashed = 1 AND type = 0")
	}

	return nil, thingsctl.New(thingsctl.ErrDatabase, fmt.Sprintf("unknown list view %q", view))
}

// Task fetches one task by ID, with tags and checklist items.
func (s *Store) Task(ctx context.Context, id string) (thingsctl.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM TMTask WHERE uuid = ? AND type = 0", taskColumns)

	row := s.db.QueryRowContext(ctx, query, id)
	task, err := s.scanTask(ctx, row)
	if err == sql.ErrNoRows {
		return thingsctl.Task{}, thingsctl.NotFoundError(fmt.Sprintf("no task with id %s", id))
	}
	if err != nil {
		return thingsctl.Task{}, thingsctl.DatabaseError("could not fetch task", err)
	}

	task.Checklist, err = s.checklistItems(ctx, id)
	if err != nil {
		return thingsctl.Task{}, err
	}
	return task, nil
}

// AllTasks returns every task that is not in the trash, whatever its
// status. Callers narrow by status themselves, typically with a
// filter query.
func (s *Store) AllTasks(ctx context.Context) ([]thingsctl.Task, error) {
	return s.queryTasks(ctx, "type = 0 AND trashed = 0")
}

// Search returns open tasks whose title or notes contain the query,
// case-insensitively.
func (s *Store) Search(ctx context.Context, q string) ([]thingsctl.Task, error) {
	pattern := "%" + q + "%"
	return s.queryTasks(ctx,
		"type = 0 AND trashed = 0 AND (title LIKE ? OR notes LIKE ?)", pattern, pattern)
}

// Projects returns the active projects.
func (s *Store) Projects(ctx context.Context) ([]thingsctl.Project, error) {
	query := `SELECT uuid, title, notes, status, deadline, area FROM TMTask
		WHERE type = 1 AND trashed = 0 AND status = 0 ORDER BY "index"`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, thingsctl.DatabaseError("could not fetch projects", err)
	}
	defer rows.Close()

	var projects []thingsctl.Project
	for rows.Next() {
		var p thingsctl.Project
		var notes, areaUUID sql.NullString
		var statusInt int
		var deadline sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &notes, &statusInt, &deadline, &areaUUID); err != nil {
			return nil, thingsctl.DatabaseError("could not read project row", err)
		}
		p.Notes = notes.String
		p.Status = intToStatus(statusInt)
		if deadline.Valid {
			d := referenceDateToTime(deadline.Int64)
			p.Due = &d
		}
		if areaUUID.Valid {
			p.Area, _ = s.areaName(ctx, areaUUID.String)
		}
		p.Tags, err = s.taskTags(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ProjectTasks returns the open tasks belonging to a project.
func (s *Store) ProjectTasks(ctx context.Context, projectID string) ([]thingsctl.Task, error) {
	return s.queryTasks(ctx, "type = 0 AND trashed = 0 AND project = ?", projectID)
}

// ProjectIDByName resolves an active project's UUID from its title.
func (s *Store) ProjectIDByName(ctx context.Context, name string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT uuid FROM TMTask WHERE title = ? AND type = 1 AND trashed = 0 AND status = 0", name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", thingsctl.NotFoundError(fmt.Sprintf("no project named %q", name))
	}
	if err != nil {
		return "", thingsctl.DatabaseError("could not look up project", err)
	}
	return id, nil
}

// Areas returns all areas with their tags.
func (s *Store) Areas(ctx context.Context) ([]thingsctl.Area, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uuid, title FROM TMArea ORDER BY "index"`)
	if err != nil {
		return nil, thingsctl.DatabaseError("could not fetch areas", err)
	}
	defer rows.Close()

	var areas []thingsctl.Area
	for rows.Next() {
		var a thingsctl.Area
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, thingsctl.DatabaseError("could not read area row", err)
		}
		a.Tags, err = s.areaTags(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// Tags returns all defined tags sorted by title.
func (s *Store) Tags(ctx context.Context) ([]thingsctl.Tag, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT uuid, title FROM TMTag ORDER BY title")
	if err != nil {
		return nil, thingsctl.DatabaseError("could not fetch tags", err)
	}
	defer rows.Close()

	var tags []thingsctl.Tag
	for rows.Next() {
		var t thingsctl.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, thingsctl.DatabaseError("could not read tag row", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Stats summarizes the database: per-list counts plus completions
// from the last 90 days.
type Stats struct {
	Inbox     int `json:"inbox"`
	Today     int `json:"today"`
	Upcoming  int `json:"upcoming"`
	Anytime   int `json:"anytime"`
	Someday   int `json:"someday"`
	Completed int `json:"completedLast90Days"`
	Projects  int `json:"projects"`
	Areas     int `json:"areas"`
}

// Stats gathers summary counts across the database.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	today := daysSinceReference(nowFunc())
	cutoff := nowFunc().AddDate(0, 0, -90).Unix() - coreDataEpochOffset

	var stats Stats
	counts := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.Inbox, "SELECT COUNT(*) FROM TMTask WHERE status = 0 AND trashed = 0 AND type = 0 AND start = 0 AND project IS NULL AND startDate IS NULL", nil},
		{&stats.Today, "SELECT COUNT(*) FROM TMTask WHERE status = 0 AND trashed = 0 AND type = 0 AND (start = 1 OR startDate = ?)", []any{today}},
		{&stats.Upcoming, "SELECT COUNT(*) FROM TMTask WHERE status = 0 AND trashed = 0 AND type = 0 AND startDate > ?", []any{today}},
		{&stats.Anytime, "SELECT COUNT(*) FROM TMTask WHERE status = 0 AND trashed = 0 AND type = 0 AND start = 0 AND project IS NOT NULL", nil},
		{&stats.Someday, "SELECT COUNT(*) FROM TMTask WHERE status = 0 AND trashed = 0 AND type = 0 AND start = 2", nil},
		{&stats.Completed, "SELECT COUNT(*) FROM TMTask WHERE status = 3 AND trashed = 0 AND type = 0 AND stopDate >= ?", []any{float64(cutoff)}},
		{&stats.Projects, "SELECT COUNT(*) FROM TMTask WHERE type = 1 AND trashed = 0 AND status = 0", nil},
		{&stats.Areas, "SELECT COUNT(*) FROM TMArea", nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return Stats{}, thingsctl.DatabaseError("could not gather stats", err)
		}
	}
	return stats, nil
}

func (s *Store) queryTasks(ctx context.Context, where string, args ...any) ([]thingsctl.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM TMTask WHERE %s ORDER BY "index"`, taskColumns, where)
	return s.queryTasksSQL(ctx, query, args...)
}

func (s *Store) queryTasksSQL(ctx context.Context, query string, args ...any) ([]thingsctl.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, thingsctl.DatabaseError("could not fetch tasks", err)
	}
	defer rows.Close()

	var tasks []thingsctl.Task
	for rows.Next() {
		task, err := s.scanTask(ctx, rows)
		if err != nil {
			return nil, thingsctl.DatabaseError("could not read task row", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanTask(ctx context.Context, row scanner) (thingsctl.Task, error) {
	var t thingsctl.Task
	var notes, projectUUID, areaUUID sql.NullString
	var statusInt int
	var stopDate, creationDate, modificationDate sql.NullFloat64
	var deadline sql.NullInt64

	err := row.Scan(&t.ID, &t.Name, &notes, &statusInt, &stopDate, &deadline,
		&creationDate, &modificationDate, &projectUUID, &areaUUID)
	if err != nil {
		return thingsctl.Task{}, err
	}

	t.Notes = notes.String
	t.Status = intToStatus(statusInt)
	if deadline.Valid {
		d := referenceDateToTime(deadline.Int64)
		t.Due = &d
	}
	if creationDate.Valid {
		c := timestampToTime(creationDate.Float64)
		t.Created = &c
	}
	// Completed tasks may carry only a stop date.
	if modificationDate.Valid {
		m := timestampToTime(modificationDate.Float64)
		t.Modified = &m
	} else if stopDate.Valid {
		m := timestampToTime(stopDate.Float64)
		t.Modified = &m
	}

	if projectUUID.Valid {
		t.Project, _ = s.projectName(ctx, projectUUID.String)
	}
	if areaUUID.Valid {
		t.Area, _ = s.areaName(ctx, areaUUID.String)
	}

	t.Tags, err = s.taskTags(ctx, t.ID)
	if err != nil {
		return thingsctl.Task{}, err
	}
	return t, nil
}

func (s *Store) taskTags(ctx context.Context, taskID string) ([]string, error) {
	query := `SELECT tag.title FROM TMTaskTag AS tt
		JOIN TMTag AS tag ON tt.tags = tag.uuid WHERE tt.tasks = ?`
	return s.queryTitles(ctx, query, taskID)
}

func (s *Store) areaTags(ctx context.Context, areaID string) ([]string, error) {
	query := `SELECT tag.title FROM TMAreaTag AS at
		JOIN TMTag AS tag ON at.tags = tag.uuid WHERE at.areas = ?`
	return s.queryTitles(ctx, query, areaID)
}

func (s *Store) queryTitles(ctx context.Context, query string, arg string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, thingsctl.DatabaseError("could not fetch tag names", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, thingsctl.DatabaseError("could not read tag row", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func (s *Store) checklistItems(ctx context.Context, taskID string) ([]thingsctl.ChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, status FROM TMChecklistItem WHERE task = ? ORDER BY "index"`, taskID)
	if err != nil {
		return nil, thingsctl.DatabaseError("could not fetch checklist", err)
	}
	defer rows.Close()

	var items []thingsctl.ChecklistItem
	for rows.Next() {
		var item thingsctl.ChecklistItem
		var statusInt int
		if err := rows.Scan(&item.Name, &statusInt); err != nil {
			return nil, thingsctl.DatabaseError("could not read checklist row", err)
		}
		item.Completed = statusInt == 3
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) projectName(ctx context.Context, uuid string) (string, bool) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT title FROM TMTask WHERE uuid = ? AND type = 1", uuid).Scan(&name)
	return name, err == nil
}

func (s *Store) areaName(ctx context.Context, uuid string) (string, bool) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT title FROM TMArea WHERE uuid = ?", uuid).Scan(&name)
	return name, err == nil
}
