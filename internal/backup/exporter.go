package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/models"
)

// Exporter uploads a JSON snapshot of the catalog and revenue history to S3.
// Appointments are deliberately absent: the sweep deletes them nightly and
// revenue is the durable record. A nil Exporter (no bucket) is a no-op.
type Exporter struct {
	db     *gorm.DB
	client *s3.Client
	bucket string
}

type snapshot struct {
	ExportedAt     time.Time               `json:"exported_at"`
	Barbers        []models.Barber         `json:"barbers"`
	Services       []models.Service        `json:"services"`
	DailyRevenue   []models.DailyRevenue   `json:"daily_revenue"`
	MonthlyRevenue []models.MonthlyRevenue `json:"monthly_revenue"`
}

func NewExporter(db *gorm.DB, bucket, region, accessKey, secretKey string) *Exporter {
	if bucket == "" {
		return nil
	}

	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})

	return &Exporter{
		db:     db,
		client: client,
		bucket: bucket,
	}
}

// Export writes exports/snapshot-YYYY-MM-DD.json and returns the object key.
func (e *Exporter) Export(ctx context.Context, now time.Time) (string, error) {
	if e == nil {
		return "", nil
	}

	snap := snapshot{ExportedAt: now}

	if err := e.db.WithContext(ctx).Order("id ASC").Find(&snap.Barbers).Error; err != nil {
		return "", err
	}
	if err := e.db.WithContext(ctx).Order("id ASC").Find(&snap.Services).Error; err != nil {
		return "", err
	}
	if err := e.db.WithContext(ctx).Order("date ASC").Find(&snap.DailyRevenue).Error; err != nil {
		return "", err
	}
	if err := e.db.WithContext(ctx).Order("year ASC, month ASC").Find(&snap.MonthlyRevenue).Error; err != nil {
		return "", err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/snapshot-%s.json", now.Format("2006-01-02"))

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}
