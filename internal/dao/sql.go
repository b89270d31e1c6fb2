package dao

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pagegrid/pagegrid/internal/model1"
)

var identRX = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Dialect represents a sql flavor.
type Dialect int

const (
	// Postgres uses $n placeholders and double quoted identifiers.
	Postgres Dialect = iota
	// MySQL uses ? placeholders and back quoted identifiers.
	MySQL
)

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) quote(ident string) string {
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		if d == Postgres {
			parts[i] = `"` + p + `"`
		} else {
			parts[i] = "`" + p + "`"
		}
	}
	return strings.Join(parts, ".")
}

func (d Dialect) like(col string, n int) string {
	if d == Postgres {
		return fmt.Sprintf("CAST(%s AS TEXT) ILIKE %s ESCAPE '!'", col, d.placeholder(n))
	}
	return fmt.Sprintf("CAST(%s AS CHAR) LIKE %s ESCAPE '!'", col, d.placeholder(n))
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern matches q literally anywhere in a column.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// SQLSource pushes paging, sorting and filtering down to a database.
type SQLSource struct {
	db      *sql.DB
	dialect Dialect
	spec    SourceSpec
}

// OpenSQLSource opens a postgres:// or mysql:// source.
func OpenSQLSource(spec SourceSpec) (*SQLSource, error) {
	u, err := url.Parse(spec.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		cfg, err := pgx.ParseConfig(spec.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres url: %w", err)
		}
		return NewSQLSource(stdlib.OpenDB(*cfg), Postgres, spec)
	case "mysql":
		db, err := sql.Open("mysql", mysqlDSN(u))
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql: %w", err)
		}
		return NewSQLSource(db, MySQL, spec)
	default:
		return nil, fmt.Errorf("%w: %q is not a database url", ErrUnknownSource, spec.URL)
	}
}

func mysqlDSN(u *url.URL) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}

	return cfg.FormatDSN()
}

// NewSQLSource returns a source over an opened database.
func NewSQLSource(db *sql.DB, d Dialect, spec SourceSpec) (*SQLSource, error) {
	if !identRX.MatchString(spec.Table) {
		return nil, fmt.Errorf("invalid table name %q", spec.Table)
	}
	for _, f := range append(append([]string{}, spec.Fields...), spec.FilterFields...) {
		if !identRX.MatchString(f) {
			return nil, fmt.Errorf("invalid column name %q", f)
		}
	}
	for k, f := range spec.SortKeys {
		if f == "" {
			f = k
		}
		if !identRX.MatchString(f) {
			return nil, fmt.Errorf("invalid sort column %q", f)
		}
	}

	return &SQLSource{db: db, dialect: d, spec: spec}, nil
}

// Name returns the source name.
func (s *SQLSource) Name() string {
	return s.spec.Table
}

// Close closes the database.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

// Query builds the page query and its arguments.
func (s *SQLSource) Query(req Request) (string, []any, error) {
	var (
		b    strings.Builder
		args []any
	)

	b.WriteString("SELECT ")
	if len(s.spec.Fields) == 0 {
		b.WriteString("*")
	} else {
		cols := make([]string, 0, len(s.spec.Fields))
		for _, f := range s.spec.Fields {
			cols = append(cols, s.dialect.quote(f))
		}
		b.WriteString(strings.Join(cols, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(s.dialect.quote(s.spec.Table))

	if req.Filter.Query != "" {
		fields := s.spec.FilterFields
		if len(fields) == 0 {
			fields = s.spec.Fields
		}
		if len(fields) > 0 {
			cc := make([]string, 0, len(fields))
			pat := containsPattern(req.Filter.Query)
			for _, f := range fields {
				args = append(args, pat)
				cc = append(cc, s.dialect.like(s.dialect.quote(f), len(args)))
			}
			b.WriteString(" WHERE ")
			b.WriteString(strings.Join(cc, " OR "))
		}
	}

	if !req.Sort.IsBlank() {
		col, err := s.spec.SortField(req.Sort.Key())
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q", err, req.Sort.Key())
		}
		if !identRX.MatchString(col) {
			return "", nil, fmt.Errorf("%w: %q", ErrUnsortableKey, req.Sort.Key())
		}
		dir := "ASC"
		if req.Sort.Direction() == model1.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", s.dialect.quote(col), dir)
	}

	args = append(args, req.Limit)
	fmt.Fprintf(&b, " LIMIT %s", s.dialect.placeholder(len(args)))
	args = append(args, req.Offset)
	fmt.Fprintf(&b, " OFFSET %s", s.dialect.placeholder(len(args)))

	return b.String(), args, nil
}

// Fetch runs the page query.
func (s *SQLSource) Fetch(ctx context.Context, req Request) (model1.Rows, error) {
	q, args, err := s.Query(req)
	if err != nil {
		return nil, err
	}
	if s.spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.spec.Timeout)
		defer cancel()
	}

	slog.Debug("Page query", slog.String("query", q), slog.Int("offset", req.Offset), slog.Int("limit", req.Limit))
	rr, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", s.spec.Table, err)
	}
	defer rr.Close()

	cols, err := rr.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var rows model1.Rows
	for rr.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rr.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := model1.NewRow("", len(cols))
		for i, c := range cols {
			row.Set(c, vals[i].String)
		}
		row.ID = rowID(row, s.spec.IDField, req.Offset+len(rows))
		rows = append(rows, row)
	}
	if err := rr.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return rows, nil
}
