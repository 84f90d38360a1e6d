package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var allowedTables = map[string]bool{
	"product": true,
}

var allowedColumns = map[string]bool{
	"product_link":  true,
	"title":         true,
	"brand":         true,
	"price":         true,
	"discount":      true,
	"avg_rating":    true,
	"total_ratings": true,
}

// SQL keywords and functions permitted inside a SELECT clause.
var reservedTokens = map[string]bool{
	"select": true, "distinct": true, "from": true, "where": true,
	"and": true, "or": true, "group": true, "by": true, "order": true,
	"asc": true, "desc": true, "limit": true, "as": true, "like": true,
	"lower": true, "upper": true, "count": true, "avg": true, "sum": true,
	"min": true, "max": true, "case": true, "when": true, "then": true,
	"end": true, "in": true, "on": true, "not": true, "between": true,
}

var forbiddenKeywords = []string{
	"UPDATE", "INSERT", "DELETE", "DROP", "ALTER", "CREATE", "REPLACE", "ATTACH", "DETACH",
}

var (
	fromTableRe  = regexp.MustCompile(`\bFROM\s+([a-zA-Z_][\w]*)`)
	joinTableRe  = regexp.MustCompile(`\bJOIN\s+([a-zA-Z_][\w]*)`)
	selectExprRe = regexp.MustCompile(`(?is)SELECT\s+(.*?)\s+FROM`)
	identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	limitRe      = regexp.MustCompile(`(?i)\blimit\b`)
)

// ValidateQuery enforces read-only access and the table/column whitelist.
func ValidateQuery(query string) error {
	upper := strings.ToUpper(query)
	if !strings.HasPrefix(strings.TrimSpace(upper), "SELECT") {
		return fmt.Errorf("Only SELECT statements are allowed.")
	}
	for _, keyword := range forbiddenKeywords {
		if strings.Contains(upper, keyword) {
			return fmt.Errorf("Only read-only SELECT statements are permitted.")
		}
	}

	tables := fromTableRe.FindAllStringSubmatch(upper, -1)
	tables = append(tables, joinTableRe.FindAllStringSubmatch(upper, -1)...)
	for _, m := range tables {
		table := strings.ToLower(m[1])
		if !allowedTables[table] {
			return fmt.Errorf("Table '%s' is not allowed.", m[1])
		}
	}

	m := selectExprRe.FindStringSubmatch(query)
	if m == nil {
		return fmt.Errorf("Malformed SELECT statement.")
	}
	columnExpr := strings.TrimSpace(m[1])
	if columnExpr == "*" {
		return nil
	}

	for _, token := range identifierRe.FindAllString(columnExpr, -1) {
		lower := strings.ToLower(token)
		if reservedTokens[lower] || allowedTables[lower] || allowedColumns[lower] {
			continue
		}
		return fmt.Errorf("Column '%s' is not allowed.", token)
	}
	return nil
}

// EnsureLimit appends LIMIT 50 if the query carries no limit of its own.
func EnsureLimit(query string) string {
	if limitRe.MatchString(query) {
		return query
	}
	trimmed := strings.TrimSpace(query)
	suffix := ""
	if strings.HasSuffix(trimmed, ";") {
		suffix = ";"
	}
	stripped := strings.TrimRight(trimmed, ";")
	return fmt.Sprintf("%s LIMIT 50%s", stripped, suffix)
}
