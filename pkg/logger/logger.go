package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	appConfig "owqueue/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// CycleLogger accumulates the log of the queue update cycles on a temporary
// file, which can be shipped to a S3 bucket after each cycle.
type CycleLogger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
	bucket   appConfig.BucketConfiguration
}

// CreateLogger creates the log instance with a temporary file.
func CreateLogger(bucket appConfig.BucketConfiguration) (*CycleLogger, error) {
	f, err := os.CreateTemp("", "queue-cycle-*.log")
	if err != nil {
		return nil, err
	}

	return &CycleLogger{
		logFile:  f,
		filePath: f.Name(),
		bucket:   bucket,
	}, nil
}

// Infof logs a simple info.
func (l *CycleLogger) Infof(format string, args ...any) {
	l.write("[INFO]", format, args...)
}

// Warnf logs a warning.
func (l *CycleLogger) Warnf(format string, args ...any) {
	l.write("[WARN]", format, args...)
}

// Errorf logs a error.
func (l *CycleLogger) Errorf(format string, args ...any) {
	l.write("[ERROR]", format, args...)
}

// EmptyLine writes a empty line.
func (l *CycleLogger) EmptyLine() {
	l.logFile.WriteString("\n")
}

// Write something to the logger.
func (l *CycleLogger) write(infoType string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	l.logFile.WriteString(line)
}

// CleanFile cleans the file contents.
func (l *CycleLogger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// CanUpload tells whether a log bucket was configured.
func (l *CycleLogger) CanUpload() bool {
	return l.bucket.LogBucket != ""
}

// UploadToS3Bucket ships the current log file to the configured bucket and
// cleans the file afterwards.
func (l *CycleLogger) UploadToS3Bucket(objectKey string) error {
	if !l.CanUpload() {
		return nil
	}

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %v", err)
	}

	// Get the config.
	cfg := aws.Config{
		Region: l.bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				l.bucket.AccessKey,
				l.bucket.AccessSecret,
				"",
			),
		),
	}

	// Create the client.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(l.bucket.Endpoint)
	})

	// Run the put.
	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(l.bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %v", objectKey, err)
	}

	// Clean the file after sending.
	l.CleanFile()

	return nil
}

// Close closes and removes the temporary log file.
func (l *CycleLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.logFile.Close(); err != nil {
		return err
	}
	return os.Remove(l.filePath)
}
