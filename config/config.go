package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read once at process start and treated as immutable for the
// process lifetime.
type Config struct {
	Debug              bool   `envconfig:"debug"`
	Port               int    `envconfig:"port" default:"5000"`
	Env                string `envconfig:"env"`
	PostgresHost       string `envconfig:"postgres_host"`
	PostgresUser       string `envconfig:"postgres_user"`
	PostgresDB         string `envconfig:"postgres_db"`
	PostgresPort       int    `envconfig:"postgres_port"`
	PostgresPassword   string `envconfig:"postgres_password"`
	JWTSecret          string `envconfig:"jwt_secret"`
	AwsRegion          string `envconfig:"aws_region"`
	AwsAccessKeyID     string `envconfig:"aws_access_key_id"`
	AwsSecretAccessKey string `envconfig:"aws_secret_access_key"`
	S3Bucket           string `envconfig:"s3_bucket"`
	UploadDir          string `envconfig:"upload_dir" default:"./uploads"`
	MailgunApiKey      string `envconfig:"mg_api_key"`
	MgDomain           string `envconfig:"mg_domain"`
	MgEmailFrom        string `envconfig:"email_from"`

	// Points constants for the ledger. The verified bonus is
	// PointsPerVerifiedReport - PointsPerReport.
	PointsPerReport         int `envconfig:"points_per_report" default:"10"`
	PointsPerVerifiedReport int `envconfig:"points_per_verified_report" default:"25"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("ecosense", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
