package common

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testPostgresImage = "docker.io/postgres:14.11-bookworm"
	testRabbitMQImage = "rabbitmq:3.12.11-management-alpine"
)

// TestRabbitMQ starts a rabbitmq container and returns its AMQP URL.
func TestRabbitMQ(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := rabbitmq.Run(ctx, testRabbitMQImage, rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	t.Cleanup(func() {
		if err := c.Terminate(ctx); err != nil {
			t.Errorf("could not terminate rabbitmq container: %v", err)
		}
	})

	uri, err := c.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	return uri
}

// TestBroker connects to a fresh rabbitmq container with the user and site
// exchanges declared.
func TestBroker(t *testing.T) *MessageBroker {
	t.Helper()

	mb, err := NewMessageBroker(TestRabbitMQ(t))
	if err != nil {
		t.Fatalf("could not connect to the broker: %v", err)
	}
	t.Cleanup(func() { mb.Close() })

	if err := SetupUserExchange(mb); err != nil {
		t.Fatalf("could not declare the user exchange: %v", err)
	}
	if err := SetupSiteExchange(mb); err != nil {
		t.Fatalf("could not declare the site exchange: %v", err)
	}

	return mb
}

// TestDB starts a postgres container and applies the migrations. The source
// is relative to the caller, e.g. "file://../../migrations".
func TestDB(source string, t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	c, err := postgres.Run(ctx,
		testPostgresImage,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(30*time.Second)))
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		c.Terminate(ctx)
		t.Fatalf("could not get postgres connection string: %v", err)
	}

	m, err := Migrate(source, dsn)
	if err != nil {
		c.Terminate(ctx)
		t.Fatalf("could not run migrations from %s: %v", source, err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		c.Terminate(ctx)
		t.Fatalf("could not open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		m.Close()
		c.Terminate(ctx)
	})

	return db
}
