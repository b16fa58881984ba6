package logic

import (
	"context"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/redis/go-redis/v9"
)

type MockConn struct {
	driver.Conn
	QueryFunc    func(ctx context.Context, query string, args ...interface{}) (driver.Rows, error)
	QueryRowFunc func(ctx context.Context, query string, args ...interface{}) driver.Row
}

func (m *MockConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	return m.QueryFunc(ctx, query, args...)
}

func (m *MockConn) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	return m.QueryRowFunc(ctx, query, args...)
}

// MockRows replays fixed scan values, one slice per row.
type MockRows struct {
	driver.Rows
	Values [][]interface{}
	row    int
}

func (m *MockRows) Next() bool {
	m.row++
	return m.row <= len(m.Values)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	for i, v := range m.Values[m.row-1] {
		assign(dest[i], v)
	}
	return nil
}

func (m *MockRows) Close() error { return nil }
func (m *MockRows) Err() error   { return nil }

type MockRow struct {
	driver.Row
	Values []interface{}
	Error  error
}

func (m *MockRow) Scan(dest ...interface{}) error {
	if m.Error != nil {
		return m.Error
	}
	for i, v := range m.Values {
		assign(dest[i], v)
	}
	return nil
}

func assign(dest, value interface{}) {
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(value))
}

// MockRedis is an in-memory stand-in for the insights cache.
type MockRedis struct {
	store map[string]string
}

func NewMockRedis() *MockRedis {
	return &MockRedis{store: make(map[string]string)}
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if v, ok := m.store[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case string:
		m.store[key] = v
	case []byte:
		m.store[key] = string(v)
	}
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}
