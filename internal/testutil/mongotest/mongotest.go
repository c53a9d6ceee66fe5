// Package mongotest поднимает MongoDB в контейнере для интеграционных тестов.
//
// Контейнер запускается как replica set из одного узла, чтобы работали транзакции.
// Тесты пропускаются с -short или при SKIP_MONGO_TESTS=1; TEST_MONGO_URI позволяет
// использовать внешний сервер (например, сервис в CI).
package mongotest

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// SkipEnv значение переменной SKIP_MONGO_TESTS, отключающее тесты.
const SkipEnv = "1"

// URI возвращает строку подключения к тестовому серверу MongoDB.
func URI(t *testing.T) string {
	t.Helper()

	if testing.Short() || os.Getenv("SKIP_MONGO_TESTS") == SkipEnv {
		t.Skip("skipping MongoDB integration test")
	}
	if uri := os.Getenv("TEST_MONGO_URI"); uri != "" {
		t.Logf("Using external MongoDB: %s", uri)
		return uri
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	require.NoError(t, err, "failed to start mongo container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

// Database возвращает уникальное имя базы, чтобы тесты не делили данные.
func Database() string {
	return "vigor_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
