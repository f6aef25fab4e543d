package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
)

// ErrApply возвращается, если не удалось применить схему
var ErrApply = errors.New("schema: failed to apply")

//go:embed schema.sql
var ddl string

// Statements возвращает DDL по одному выражению, без комментариев
func Statements() []string {
	var (
		stmts []string
		b     strings.Builder
	)

	for _, line := range strings.Split(ddl, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')

		if strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, strings.TrimSpace(b.String()))
			b.Reset()
		}
	}
	if rest := strings.TrimSpace(b.String()); rest != "" {
		stmts = append(stmts, rest)
	}

	return stmts
}

// Apply создает таблицы и индексы, если их еще нет
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	for _, stmt := range Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: Apply - %q: %v", ErrApply, firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
