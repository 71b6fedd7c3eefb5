package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: el registro sigue referenciado (o la referencia no existe).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// escapeLike escapa los comodines de LIKE: %, _ y \.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// where arma cláusulas WHERE parametrizadas ($1, $2, ...). Siempre arranca filtrando por user_id.
type where struct {
	conds []string
	args  []interface{}
}

func newWhere(userID string) *where {
	w := &where{}
	w.eq("user_id", userID)
	return w
}

func (w *where) arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) eq(col string, v interface{}) {
	w.conds = append(w.conds, col+" = "+w.arg(v))
}

// eqIf agrega la condición solo si v no está vacío.
func (w *where) eqIf(col, v string) {
	if v != "" {
		w.eq(col, v)
	}
}

func (w *where) cond(c string) {
	w.conds = append(w.conds, c)
}

// search coincidencia parcial sin distinguir mayúsculas en cualquiera de las columnas.
func (w *where) search(term string, cols ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return
	}
	p := w.arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + ` ILIKE ` + p + ` ESCAPE '\'`
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET; limit <= 0 no limita.
func (w *where) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	return " LIMIT " + w.arg(limit) + " OFFSET " + w.arg(offset)
}

// count ejecuta SELECT COUNT(*) con las condiciones acumuladas (antes de paginar).
func count(ctx context.Context, q Querier, table string, w *where) (int, error) {
	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// rowScanner común a pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// orEmpty evita devolver nil en listados.
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
