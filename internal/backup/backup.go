package backup

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"pharma-backend/internal/config"
)

// Scheduler dumps the database with pg_dump on a fixed interval and
// uploads the result to S3-compatible storage.
type Scheduler struct {
	cfg *config.Config
}

func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{cfg: cfg}
}

// Run blocks; call it in a goroutine. A dump runs immediately at
// startup, then every interval.
func (s *Scheduler) Run() {
	interval := time.Duration(s.cfg.Backup.IntervalH) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	log.Printf("[Backup] Scheduler started, interval %s", interval)
	for {
		if err := s.runOnce(); err != nil {
			log.Printf("[Backup] Failed: %v", err)
		}
		time.Sleep(interval)
	}
}

func (s *Scheduler) runOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dump, err := s.dump(ctx)
	if err != nil {
		return fmt.Errorf("pg_dump: %w", err)
	}

	key := fmt.Sprintf("pharma/%s.sql", time.Now().Format("2006-01-02_15-04-05"))
	if err := s.upload(ctx, key, dump); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes)", key, len(dump))
	return nil
}

func (s *Scheduler) dump(ctx context.Context) ([]byte, error) {
	db := s.cfg.Database
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", db.Host,
		"-p", fmt.Sprintf("%d", db.Port),
		"-U", db.User,
		"-d", db.Name,
		"--no-password",
	)
	cmd.Env = append(cmd.Environ(), "PGPASSWORD="+db.Password)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (s *Scheduler) upload(ctx context.Context, key string, data []byte) error {
	b := s.cfg.Backup

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.AccessKey,
			b.SecretKey,
			"",
		)),
		awsconfig.WithRegion(b.Region),
	)
	if err != nil {
		return err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if b.Endpoint != "" {
			o.BaseEndpoint = aws.String(b.Endpoint)
		}
	})

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}
