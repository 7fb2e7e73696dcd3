package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_FILE", "testdb.json")
	os.Setenv("S3_BUCKET_NAME", "test-bucket")
	os.Setenv("AWS_REGION", "eu-west-1")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Assertions
	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "testdb.json", cfg.DBFile)
	assert.Equal(t, "test-bucket", cfg.S3BucketName)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)

	// Cleanup
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_FILE")
	os.Unsetenv("S3_BUCKET_NAME")
	os.Unsetenv("AWS_REGION")
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("REDIS_PORT")
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Setenv("S3_BUCKET_NAME", "test-bucket")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_FILE")
	os.Unsetenv("REDIS_HOST")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "db.json", cfg.DBFile)
	assert.Equal(t, "", cfg.RedisHost)
	assert.Equal(t, 100, cfg.RateLimitRequests)

	os.Unsetenv("S3_BUCKET_NAME")
}

func TestLoadConfig_MissingBucket(t *testing.T) {
	os.Unsetenv("S3_BUCKET_NAME")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
