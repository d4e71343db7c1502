// Command demo is a command-line REPL exercising every mode of the editor:
// multi-line input terminated by a trailing semicolon, history search, tab
// completion of SQL keywords, and the kill ring.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/go-lineedit/lineedit"
)

func init() {
	sort.Strings(sqlKeywords)
}

func completer(text []rune, wordStart, wordEnd int) []string {
	word := strings.ToUpper(string(text[wordStart:wordEnd]))
	i := sort.Search(len(sqlKeywords), func(i int) bool {
		return sqlKeywords[i] >= word
	})
	if i >= len(sqlKeywords) {
		return nil
	}
	word += "\xff"
	j := sort.Search(len(sqlKeywords), func(i int) bool {
		return sqlKeywords[i] >= word
	})
	return sqlKeywords[i:j]
}

func inputFinished(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasSuffix(text, ";")
}

type cliOptions struct {
	ConfigPath  string `short:"c" long:"config" description:"path to a YAML options file"`
	HistoryFile string `long:"history-file" description:"path to a history file to load/save"`
}

func main() {
	var cli cliOptions
	if _, err := flags.Parse(&cli); err != nil {
		os.Exit(1)
	}

	fmt.Printf(`# command line demo
# - multi-line input terminated by a trailing semicolon
# - standard navigation and editing commands
# - history browsing and search
# - kill ring
# - tab completion of SQL keywords
`)

	opts := lineedit.DefaultOptions()
	if cli.ConfigPath != "" {
		loaded, err := lineedit.LoadOptionsYAML(cli.ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		opts = loaded
	}

	history := lineedit.NewMemoryHistory(1000)
	if cli.HistoryFile != "" {
		if err := history.LoadFile(cli.HistoryFile); err != nil {
			log.Fatal(err)
		}
		defer history.SaveFile(cli.HistoryFile)
	}

	ed, err := lineedit.New(
		lineedit.WithOptions(opts),
		lineedit.WithHistory(history),
		lineedit.WithCompleter(completer),
		lineedit.WithInputFinished(inputFinished),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for {
		line, err := ed.ReadLine(ctx, "demo> ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("-> %s\n", line)
	}
}

// NB: adapted from github.com/cockroachdb/cockroach/pkg/sql/lexbase/keywords.go:KeywordNames.
var sqlKeywords = []string{
	"ABORT", "ACCESS", "ACTION", "ADD", "ADMIN", "AFTER", "AGGREGATE", "ALL",
	"ALTER", "ALWAYS", "ANALYSE", "ANALYZE", "AND", "ANNOTATE_TYPE", "ANY",
	"ARRAY", "AS", "ASC", "ASYMMETRIC", "AT", "ATTRIBUTE", "AUTHORIZATION",
	"AUTOMATIC", "AVAILABILITY", "BACKUP", "BACKUPS", "BEFORE", "BEGIN",
	"BETWEEN", "BIGINT", "BINARY", "BIT", "BOOLEAN", "BOTH", "BY", "CACHE",
	"CANCEL", "CASCADE", "CASE", "CAST", "CHANGEFEED", "CHAR", "CHARACTER",
	"CHECK", "CLOSE", "CLUSTER", "COALESCE", "COLLATE", "COLUMN", "COLUMNS",
	"COMMENT", "COMMIT", "COMMITTED", "COMPACT", "CONCURRENTLY",
	"CONFIGURATION", "CONFIGURE", "CONFLICT", "CONNECTION", "CONSTRAINT",
	"CONVERSION", "CONVERT", "COPY", "COVERING", "CREATE", "CREATEDB",
	"CREATELOGIN", "CREATEROLE", "CROSS", "CSV", "CUBE", "CURRENT",
	"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER",
	"CURSOR", "CYCLE", "DATA", "DATABASE", "DATABASES", "DAY", "DEALLOCATE",
	"DEC", "DECIMAL", "DECLARE", "DEFAULT", "DEFAULTS", "DEFERRABLE",
	"DEFERRED", "DELETE", "DELIMITER", "DESC", "DISCARD", "DISTINCT", "DO",
	"DOMAIN", "DOUBLE", "DROP", "ELSE", "ENCODING", "END", "ENUM", "ESCAPE",
	"EXCEPT", "EXCLUDE", "EXCLUDING", "EXECUTE", "EXISTS", "EXPLAIN",
	"EXPORT", "EXTENSION", "EXTRACT", "FALSE", "FAMILY", "FETCH", "FILTER",
	"FIRST", "FLOAT", "FOLLOWING", "FOR", "FORCE", "FOREIGN", "FROM", "FULL",
	"FUNCTION", "FUNCTIONS", "GENERATED", "GLOBAL", "GRANT", "GRANTS",
	"GREATEST", "GROUP", "GROUPING", "GROUPS", "HASH", "HAVING", "HOUR",
	"IDENTITY", "IF", "ILIKE", "IMMEDIATE", "IMPORT", "IN", "INCLUDE",
	"INCLUDING", "INCREMENT", "INDEX", "INDEXES", "INHERITS", "INITIALLY",
	"INNER", "INSERT", "INT", "INTEGER", "INTERSECT", "INTERVAL", "INTO",
	"INVERTED", "IS", "ISOLATION", "JOB", "JOBS", "JOIN", "JSON", "KEY",
	"KEYS", "LANGUAGE", "LAST", "LATERAL", "LEADING", "LEAST", "LEFT",
	"LEVEL", "LIKE", "LIMIT", "LIST", "LOCAL", "LOCALTIME", "LOCALTIMESTAMP",
	"LOGIN", "LOOKUP", "MATCH", "MATERIALIZED", "MERGE", "MINUTE", "MONTH",
	"NAMES", "NATURAL", "NEXT", "NO", "NONE", "NORMAL", "NOT", "NOTHING",
	"NULL", "NULLIF", "NULLS", "NUMERIC", "OF", "OFF", "OFFSET", "ON",
	"ONLY", "OPERATOR", "OPTION", "OPTIONS", "OR", "ORDER", "OUT", "OUTER",
	"OVER", "OVERLAPS", "OWNED", "OWNER", "PARTIAL", "PARTITION",
	"PASSWORD", "PLACING", "PRECEDING", "PRECISION", "PREPARE", "PRESERVE",
	"PRIMARY", "PRIORITY", "PRIVILEGES", "PUBLIC", "QUERIES", "QUERY",
	"RANGE", "READ", "REAL", "RECURSIVE", "REFERENCES", "REFRESH",
	"REINDEX", "RELEASE", "RENAME", "REPEATABLE", "REPLACE", "RESET",
	"RESTRICT", "RETURNING", "REVOKE", "RIGHT", "ROLE", "ROLES", "ROLLBACK",
	"ROLLUP", "ROW", "ROWS", "RULE", "SAVEPOINT", "SCHEMA", "SCHEMAS",
	"SEARCH", "SECOND", "SELECT", "SEQUENCE", "SEQUENCES", "SERIALIZABLE",
	"SERVER", "SESSION", "SET", "SETS", "SETTING", "SETTINGS", "SHARE",
	"SHOW", "SIMILAR", "SIMPLE", "SMALLINT", "SNAPSHOT", "SOME", "SPLIT",
	"SQL", "START", "STATISTICS", "STATUS", "STDIN", "STORAGE", "STORE",
	"STORED", "STORING", "STRICT", "STRING", "SUBSCRIPTION", "SUBSTRING",
	"SYMMETRIC", "SYSTEM", "TABLE", "TABLES", "TABLESPACE", "TEMP",
	"TEMPLATE", "TEMPORARY", "TEXT", "THEN", "TIME", "TIMESTAMP", "TO",
	"TRAILING", "TRANSACTION", "TREAT", "TRIGGER", "TRIM", "TRUE",
	"TRUNCATE", "TRUSTED", "TYPE", "TYPES", "UNBOUNDED", "UNCOMMITTED",
	"UNION", "UNIQUE", "UNKNOWN", "UNLOGGED", "UNTIL", "UPDATE", "UPSERT",
	"USE", "USER", "USERS", "USING", "VALID", "VALIDATE", "VALUE", "VALUES",
	"VARCHAR", "VARIADIC", "VARYING", "VIEW", "VIRTUAL", "VISIBLE", "WHEN",
	"WHERE", "WINDOW", "WITH", "WITHIN", "WITHOUT", "WORK", "WRITE", "YEAR",
	"ZONE",
}
