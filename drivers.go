package sqlframe

// Engine dialects register themselves at init time.
import (
	_ "github.com/koustreak/sqlframe/internal/dialect/duckdb"
	_ "github.com/koustreak/sqlframe/internal/dialect/mysql"
	_ "github.com/koustreak/sqlframe/internal/dialect/postgres"
	_ "github.com/koustreak/sqlframe/internal/dialect/sqlite"
)
