//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const dbCasesCSV = `date,cases
2021-03-01,10
2021-03-02,12
2021-03-03,8
2021-03-04,15
2021-03-05,11
`

// TestSircastWithMySQL tests the sircast CLI with a MySQL run store.
func TestSircastWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "sircast",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/sircast?parseTime=true", host, port.Port())
	runStoreLifecycle(t, "mysql", connStr)
}

// TestSircastWithPostgres tests the sircast CLI with a PostgreSQL run store.
func TestSircastWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runStoreLifecycle(t, "postgresql", connStr)
}

// runStoreLifecycle exercises compose with run tracking plus the store
// subcommands against the given backend.
func runStoreLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("SIRCAST_STORE_BACKEND", backend)
	_ = os.Setenv("SIRCAST_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SIRCAST_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("SIRCAST_STORE_DB_CONNECT") }()

	dir := t.TempDir()
	cases := writeDataset(t, dir, "cases.csv", dbCasesCSV)

	// Run sircast store clear
	_, err := runSircastCommand(t, dir, "store", "clear")
	require.NoError(t, err)

	// Run sircast compose (records a run)
	_, err = runSircastCommand(t, dir, "compose", "--cases", cases, "--infection-window", "2")
	require.NoError(t, err)

	// Run sircast store status
	output, err := runSircastCommand(t, dir, "store", "status")
	require.NoError(t, err)
	require.Contains(t, output, "Total Runs: 1")

	// Run sircast store export
	_, err = runSircastCommand(t, dir, "store", "export", "--output-file", dir+"/runs.parquet")
	require.NoError(t, err)
}
