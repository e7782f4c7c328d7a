package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/storage"
	_ "github.com/go-sql-driver/mysql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const readyTimeout = 2 * time.Second

// containerSpec describes a throwaway dependency. ready is retried with the
// mapped "localhost:<port>" until it stops failing.
type containerSpec struct {
	name  string
	image string
	tag   string
	port  string
	env   []string
	cmd   []string
	ready func(hostPort string) error
}

// startContainer runs spec and returns the host address of its port together
// with a purge function.
func startContainer(spec containerSpec) (string, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: spec.image,
		Tag:        spec.tag,
		Env:        spec.env,
		Cmd:        spec.cmd,
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return "", nil, fmt.Errorf("could not start %s container: %w", spec.name, err)
	}

	purge := func() {
		if err := pool.Purge(resource); err != nil {
			logger.Warnf(context.Background(), "could not purge %s container: %s", spec.name, err)
		}
	}

	hostPort := "localhost:" + resource.GetPort(spec.port)
	if err := pool.Retry(func() error { return spec.ready(hostPort) }); err != nil {
		purge()
		return "", nil, fmt.Errorf("%s did not become ready: %w", spec.name, err)
	}
	return hostPort, purge, nil
}

type RedisContainerInfo struct {
	Addr    string
	Cleanup func()
}

func StartRedisContainer() (*RedisContainerInfo, error) {
	addr, purge, err := startContainer(containerSpec{
		name:  "redis",
		image: "redis",
		tag:   "7",
		port:  "6379/tcp",
		ready: func(hostPort string) error {
			rdb := redis.NewClient(&redis.Options{Addr: hostPort})
			defer func() { _ = rdb.Close() }()
			ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
			defer cancel()
			return rdb.Ping(ctx).Err()
		},
	})
	if err != nil {
		return nil, err
	}
	return &RedisContainerInfo{Addr: addr, Cleanup: purge}, nil
}

type MariaDBContainerInfo struct {
	DSN     string
	Cleanup func()
}

func StartMariaDBContainer() (*MariaDBContainerInfo, error) {
	const password = "root"

	dsnFor := func(hostPort string) string {
		return fmt.Sprintf("root:%s@(%s)/mysql?parseTime=true", password, hostPort)
	}
	hostPort, purge, err := startContainer(containerSpec{
		name:  "mariadb",
		image: "mariadb",
		tag:   "10.11",
		port:  "3306/tcp",
		env:   []string{"MARIADB_ROOT_PASSWORD=" + password},
		ready: func(hostPort string) error {
			db, err := sql.Open("mysql", dsnFor(hostPort))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			return db.Ping()
		},
	})
	if err != nil {
		return nil, err
	}
	return &MariaDBContainerInfo{DSN: dsnFor(hostPort), Cleanup: purge}, nil
}

type MinIOContainerInfo struct {
	Endpoint string
	// Client is the raw client, used to set buckets up and inspect objects.
	Client  *minio.Client
	Strg    *storage.MinioStorage
	Cleanup func()
}

func StartMinIOContainer() (*MinIOContainerInfo, error) {
	const user, password = "minioadmin", "minioadmin"

	var client *minio.Client
	endpoint, purge, err := startContainer(containerSpec{
		name:  "minio",
		image: "minio/minio",
		tag:   "latest",
		port:  "9000/tcp",
		env:   []string{"MINIO_ROOT_USER=" + user, "MINIO_ROOT_PASSWORD=" + password},
		cmd:   []string{"server", "/data"},
		ready: func(hostPort string) error {
			c, err := minio.New(hostPort, &minio.Options{Creds: credentials.NewStaticV4(user, password, "")})
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
			defer cancel()
			if _, err := c.ListBuckets(ctx); err != nil {
				return err
			}
			client = c
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	strg, err := storage.NewStorage(endpoint, user, password, false)
	if err != nil {
		purge()
		return nil, fmt.Errorf("could not create minio storage: %w", err)
	}
	return &MinIOContainerInfo{Endpoint: endpoint, Client: client, Strg: strg, Cleanup: purge}, nil
}
